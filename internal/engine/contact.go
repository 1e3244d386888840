package engine

import (
	"time"

	"github.com/tartampluch/go-numerology/internal/numerology"
)

// ContactChart is a contact with a birthday together with its computed chart.
type ContactChart struct {
	// UID is a deterministic hash of name and birth date, stable across refreshes.
	UID string `json:"uid" yaml:"uid"`

	Name      string                  `json:"name" yaml:"name"`
	BirthDate numerology.CalendarDate `json:"birth_date" yaml:"birth_date"`

	// NextBirthday is the next occurrence relative to the reference date.
	NextBirthday time.Time `json:"next_birthday" yaml:"next_birthday"`

	// AgeNext is the age the contact turns at NextBirthday.
	AgeNext int `json:"age_next" yaml:"age_next"`

	Chart numerology.Result `json:"chart" yaml:"chart"`
}
