package numerology_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

func TestParseDate(t *testing.T) {
	d, err := numerology.ParseDate("07.03.2001")
	require.NoError(t, err)
	assert.Equal(t, numerology.CalendarDate{Day: 7, Month: 3, Year: 2001}, d)
	assert.Equal(t, "07.03.2001", d.String())

	_, err = numerology.ParseDate("7.3.2001")
	assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))

	// Full-width digits are not ASCII digits.
	_, err = numerology.ParseDate("０７.03.2001")
	assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))
}

func TestFromTime(t *testing.T) {
	d := numerology.FromTime(time.Date(2025, time.August, 17, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "17.08.2025", d.String())
}

func TestCalendarDate_JSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Date numerology.CalendarDate `json:"date"`
	}{numerology.CalendarDate{Day: 1, Month: 2, Year: 1990}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"01.02.1990"}`, string(out))
}

func TestCalendarDate_UnmarshalJSON(t *testing.T) {
	var v struct {
		Date numerology.CalendarDate `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"31.02.1999"}`), &v))
	assert.Equal(t, numerology.CalendarDate{Day: 31, Month: 2, Year: 1999}, v.Date)

	err := json.Unmarshal([]byte(`{"date":"1999-02-31"}`), &v)
	assert.True(t, errors.Is(err, numerology.ErrInvalidDateFormat))
}

func TestCalendarDate_Time(t *testing.T) {
	d := numerology.CalendarDate{Day: 20, Month: 8, Year: 2025}
	assert.Equal(t, time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC), d.Time(time.UTC))

	rolled := numerology.CalendarDate{Day: 31, Month: 2, Year: 1999}.Time(time.UTC)
	assert.Equal(t, time.Date(1999, 3, 3, 0, 0, 0, 0, time.UTC), rolled)
}
