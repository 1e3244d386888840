package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/report"
	"gopkg.in/yaml.v3"
)

func sampleChart(t *testing.T) numerology.Result {
	t.Helper()
	res, err := numerology.Compute("10.01.1982", "17.08.2025")
	require.NoError(t, err)
	return res
}

func sampleWeek() favorability.Week {
	return favorability.GenerateWeek(time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC))
}

func TestChart_Table(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf, config.OutputTable, locale.New("en"))

	require.NoError(t, r.Chart(sampleChart(t)))
	out := buf.String()

	assert.Contains(t, out, "Life path: 6")
	assert.Contains(t, out, "Ruling number")
	assert.Contains(t, out, "101")
	assert.Contains(t, out, "10.01.1982")
	assert.Contains(t, out, "Planetary square")
	assert.Contains(t, out, "22222", "slot 2 appears five times")
	assert.Contains(t, out, "Character lines")
	assert.NotContains(t, out, "\x1b[", "buffers never get colors")
}

func TestChart_Structured(t *testing.T) {
	res := sampleChart(t)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.New(&buf, config.OutputJSON, locale.New("en")).Chart(res))

		var got numerology.Result
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, res, got)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.New(&buf, config.OutputYAML, locale.New("en")).Chart(res))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 6, got["life_path"])
		assert.Equal(t, 101, got["ruling"])
		assert.Equal(t, "10.01.1982", got["birth_date"])

		strengths, ok := got["strengths"].([]any)
		require.True(t, ok)
		require.Len(t, strengths, numerology.SlotCount)
		for i, v := range strengths {
			n, ok := v.(int)
			require.True(t, ok)
			assert.True(t, n >= 1 && n <= 10, "strength of slot %d = %d", i+1, n)
		}
	})
}

func TestWeek_Table(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf, config.OutputTable, locale.New("fr"))

	require.NoError(t, r.Week(sampleWeek()))
	out := buf.String()

	assert.Contains(t, out, "17.08.2025")
	assert.Contains(t, out, "23.08.2025")
	assert.Contains(t, out, "Soleil")
	assert.Contains(t, out, "9/10")
}

func TestWeek_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.New(&buf, config.OutputJSON, locale.New("en")).Week(sampleWeek()))

	var got report.WeekView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Days, 7)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, numerology.CalendarDate{Day: 17, Month: 8, Year: 2025}, got.Days[0].Date)
	assert.Equal(t, "Sun day, favorability 9/10", got.Days[0].Summary)
	assert.True(t, got.Days[0].Favorable)
}

func TestNewWeekView(t *testing.T) {
	view := report.NewWeekView(sampleWeek(), locale.New("en"))
	require.Len(t, view.Days, 7)

	for i, d := range view.Days {
		assert.Equal(t, d.Favorability > 7, d.Favorable, "day %d", i)
		assert.NotEmpty(t, d.Activities, "day %d", i)
		assert.Equal(t, d.Planet, locale.New("en").Msg(d.PlanetKey))
	}
	assert.Equal(t, "Sunday", view.Days[0].Weekday)
	assert.Equal(t, "Saturday", view.Days[6].Weekday)
}

func TestNewWeekView_NilTranslator(t *testing.T) {
	view := report.NewWeekView(sampleWeek(), nil)
	assert.Equal(t, config.DefaultLanguage, view.Language)
	require.Len(t, view.Days, 7)
	for i, d := range view.Days {
		assert.NotEmpty(t, d.Summary, "day %d", i)
		assert.NotEmpty(t, d.Activities, "day %d", i)
	}
}

func TestContacts(t *testing.T) {
	contacts := []engine.ContactChart{{
		UID:          "abc",
		Name:         "Ada",
		BirthDate:    numerology.CalendarDate{Day: 10, Month: 12, Year: 1815},
		NextBirthday: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC),
		AgeNext:      210,
		Chart:        sampleChart(t),
	}}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.New(&buf, config.OutputTable, locale.New("en")).Contacts(contacts))
		assert.Contains(t, buf.String(), "Ada")
		assert.Contains(t, buf.String(), "10.12.2025")
		assert.Contains(t, buf.String(), "210")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.New(&buf, config.OutputYAML, locale.New("en")).Contacts(contacts))

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Ada", got[0]["name"])
		assert.Equal(t, 210, got[0]["age_next"])
	})

	t.Run("empty json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.New(&buf, config.OutputJSON, locale.New("en")).Contacts(nil))
		assert.Equal(t, "[]\n", buf.String())
	})
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	r := report.New(&buf, "xml", locale.New("en"))

	err := r.Chart(sampleChart(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrOutputFormat)
	assert.Empty(t, buf.String())
}
