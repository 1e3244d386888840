package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalculateNextOccurrence covers year boundaries and leap days.
func TestCalculateNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		expectedDate time.Time
		expectedAge  int
	}{
		{
			name:         "Birthday in the past (this year)",
			birthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
		},
		{
			name:         "Birthday in the future (this year)",
			birthDate:    time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "Birthday is Today",
			birthDate:    time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "Leapling - Non-Leap Year (Feb 29 -> Mar 1)",
			birthDate:    time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC),
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, age := calculateNextOccurrence(now, tt.birthDate)
			assert.Equal(t, tt.expectedDate, next)
			assert.Equal(t, tt.expectedAge, age, "Age calculation mismatch")
		})
	}
}

// TestCalculateNextOccurrence_LeapYearContext verifies behavior when *current* year is a leap year.
func TestCalculateNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	birthDate := time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)

	next, _ := calculateNextOccurrence(now, birthDate)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), next, "In a leap year, the birthday should be Feb 29, not Mar 1")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		value     string
		wantYear  bool
		wantMonth time.Month
		wantDay   int
	}{
		{"1990-10-25", true, time.October, 25},
		{"19901025", true, time.October, 25},
		{"1990-10-25T00:00:00Z", true, time.October, 25},
		{"--10-25", false, time.October, 25},
		{"--1025", false, time.October, 25},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, yearKnown, err := parseDate(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, yearKnown)
			assert.Equal(t, tt.wantMonth, got.Month())
			assert.Equal(t, tt.wantDay, got.Day())
		})
	}

	_, _, err := parseDate("25/10/1990")
	assert.Error(t, err)
}

func TestGeneratorWorkers_Default(t *testing.T) {
	assert.Equal(t, 4, (&Generator{}).workers())
	assert.Equal(t, 2, (&Generator{Workers: 2}).workers())
}
