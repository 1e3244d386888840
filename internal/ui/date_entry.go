package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-numerology/internal/validation"
)

// DateEntry is an Entry that only accepts the characters of a DD.MM.YYYY
// date. Pasted text is not filtered; the attached validator flags it.
type DateEntry struct {
	widget.Entry
}

// NewDateEntry creates a DateEntry checked by v. An empty field is valid so
// the form does not flag it before the user types.
func NewDateEntry(v *validation.Validator) *DateEntry {
	entry := &DateEntry{}
	entry.ExtendBaseWidget(entry)
	entry.Validator = func(text string) error {
		if text == "" {
			return nil
		}
		return v.Date(text)
	}
	return entry
}

// TypedRune filters keystrokes to digits and the '.' separator.
func (e *DateEntry) TypedRune(r rune) {
	if (r >= '0' && r <= '9') || r == '.' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard requests the numeric keypad on mobile devices.
func (e *DateEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
