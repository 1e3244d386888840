package numerology

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/tartampluch/go-numerology/internal/config"
)

// ErrInvalidDateFormat is returned when a date does not match DD.MM.YYYY.
// It is the only error kind of the derivation core.
var ErrInvalidDateFormat = errors.New(config.ErrDateFormat)

// datePattern is the boundary contract for every date entering the core.
var datePattern = regexp.MustCompile(config.DatePattern)

// CalendarDate is a day/month/year triple as typed by the user.
// Calendar plausibility is not checked: 31.02.1999 is a valid CalendarDate.
type CalendarDate struct {
	Day   int
	Month int
	Year  int
}

// ValidDateText reports whether text matches the DD.MM.YYYY pattern.
func ValidDateText(text string) bool {
	return datePattern.MatchString(text)
}

// ParseDate validates text and splits it into its fields.
func ParseDate(text string) (CalendarDate, error) {
	if !ValidDateText(text) {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
	}

	// The pattern guarantees fixed offsets and digits only.
	day, _ := strconv.Atoi(text[0:2])
	month, _ := strconv.Atoi(text[3:5])
	year, _ := strconv.Atoi(text[6:10])

	return CalendarDate{Day: day, Month: month, Year: year}, nil
}

// FromTime converts a calendar time into a CalendarDate using its own location.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Day: d, Month: int(m), Year: y}
}

// String renders the date back into its DD.MM.YYYY form.
func (d CalendarDate) String() string {
	return fmt.Sprintf(config.FormatDateText, d.Day, d.Month, d.Year)
}

// MarshalText encodes the date in its DD.MM.YYYY form.
func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a DD.MM.YYYY value.
func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Time returns midnight of the date in loc. Out of range fields roll over the
// way time.Date normalizes them, so 31.02.1999 becomes 3 March.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}
