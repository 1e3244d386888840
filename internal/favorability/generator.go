// Package favorability derives a seven-day forecast from a reference date and
// the fixed weekday to planet table.
package favorability

import "time"

const (
	// SlotCount is the number of weekday planet slots.
	SlotCount = 7

	// MinRating and MaxRating bound every favorability rating.
	MinRating = 3
	MaxRating = 10

	// FavorableThreshold selects the "high" activity list when exceeded.
	FavorableThreshold = 7
)

// DayForecast is the forecast for one calendar day.
type DayForecast struct {
	Date         time.Time  `json:"date" yaml:"date"`
	Slot         int        `json:"slot" yaml:"slot"`
	Planet       string     `json:"planet" yaml:"planet"`
	Favorability int        `json:"favorability" yaml:"favorability"`
	Activities   []Activity `json:"activities" yaml:"activities"`
}

// Favorable reports whether the day uses the high activity list.
func (d DayForecast) Favorable() bool {
	return d.Favorability > FavorableThreshold
}

// Week holds seven consecutive days starting on Sunday.
type Week [7]DayForecast

// StartOfWeek returns midnight of the Sunday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// GenerateWeek builds the forecast of the week containing reference.
// It is deterministic in the calendar date of reference and always succeeds.
func GenerateWeek(reference time.Time) Week {
	var w Week
	start := StartOfWeek(reference)

	for offset := range w {
		// AddDate crosses month and year ends; calendar days survive DST.
		date := start.AddDate(0, 0, offset)
		slot := slotFor(offset)
		rating := Rating(date.Day(), int(date.Month()), slot)

		w[offset] = DayForecast{
			Date:         date,
			Slot:         slot,
			Planet:       Planets[slot].Key,
			Favorability: rating,
			Activities:   Planets[slot].Activities(rating > FavorableThreshold),
		}
	}
	return w
}

// slotFor maps a week offset to its planet slot: Sunday=1 ... Saturday=7.
func slotFor(offset int) int {
	if offset == 6 {
		return 7
	}
	return offset + 1
}

// Rating computes the bounded favorability of a day.
func Rating(dayOfMonth, month, slot int) int {
	// raw already lies in [3,12]; the clamp caps the top of the range.
	raw := (dayOfMonth+month+slot)%10 + MinRating
	return min(max(raw, MinRating), MaxRating)
}
