package report

import (
	"fmt"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
)

// DayView is one localized forecast day.
type DayView struct {
	Date         numerology.CalendarDate `json:"date" yaml:"date"`
	Weekday      string                  `json:"weekday" yaml:"weekday"`
	PlanetKey    string                  `json:"planet_key" yaml:"planet_key"`
	Planet       string                  `json:"planet" yaml:"planet"`
	Favorability int                     `json:"favorability" yaml:"favorability"`
	Favorable    bool                    `json:"favorable" yaml:"favorable"`
	Summary      string                  `json:"summary" yaml:"summary"`
	Activities   []string                `json:"activities" yaml:"activities"`
}

// WeekView is the localized form of a favorability.Week, shared by the CLI
// and the JSON API.
type WeekView struct {
	Language string    `json:"language" yaml:"language"`
	Days     []DayView `json:"days" yaml:"days"`
}

// NewWeekView resolves planet names, summaries and activities in the
// translator's language.
func NewWeekView(week favorability.Week, tr *locale.Translator) WeekView {
	view := WeekView{Language: tr.Language(), Days: make([]DayView, 0, len(week))}

	for _, day := range week {
		planet := tr.Msg(day.Planet)
		view.Days = append(view.Days, DayView{
			Date:         numerology.FromTime(day.Date),
			Weekday:      day.Date.Weekday().String(),
			PlanetKey:    day.Planet,
			Planet:       planet,
			Favorability: day.Favorability,
			Favorable:    day.Favorable(),
			Summary:      DaySummary(tr, day),
			Activities:   tr.Activities(day.Activities),
		})
	}

	return view
}

// DaySummary is the one-line localized label of a forecast day, also used as
// the calendar event summary.
func DaySummary(tr *locale.Translator, day favorability.DayForecast) string {
	// The planet key doubles as its untranslated name.
	planet := tr.MsgOr(day.Planet, day.Planet)
	fallback := fmt.Sprintf(config.FallbackDaySummary, planet, day.Favorability)
	return tr.Format(config.TKeyDaySummary, fallback, map[string]any{
		"Planet": planet,
		"Rating": day.Favorability,
	})
}
