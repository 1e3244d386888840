package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"github.com/tartampluch/go-numerology/internal/report"
	"github.com/tartampluch/go-numerology/internal/wizard"
)

// welcomeScreen offers the language choice before anything else.
func (app *NumerologyApp) welcomeScreen() fyne.CanvasObject {
	tr := app.Translator

	langSelect := widget.NewSelect(tr.Languages, nil)
	langSelect.SetSelected(tr.Language())
	langSelect.OnChanged = app.SetLanguage

	return container.NewVBox(
		widget.NewLabel(tr.Msg(config.TKeyWelcomeText)),
		langSelect,
	)
}

// registrationScreen builds the name and birth date form. The entries are
// kept on the app so Next can read them back.
func (app *NumerologyApp) registrationScreen() fyne.CanvasObject {
	tr := app.Translator
	s := app.session

	app.nameEntry = widget.NewEntry()
	app.birthEntry = NewDateEntry(app.Validator)
	app.birthEntry.SetPlaceHolder(tr.Msg(config.TKeyPlaceholderDate))

	// Prefill from the session, then from the last successful registration.
	name, birth := s.Name, s.BirthDate
	if name == "" && birth == "" {
		name = app.Preferences.String(config.PrefName)
		birth = app.Preferences.String(config.PrefBirthDate)
	}
	app.nameEntry.SetText(name)
	app.birthEntry.SetText(birth)

	return widget.NewForm(
		widget.NewFormItem(tr.Msg(config.TKeyLblName), app.nameEntry),
		widget.NewFormItem(tr.Msg(config.TKeyLblBirthDate), app.birthEntry),
	)
}

// subscriptionScreen lists the tiers. Radio labels are localized, so the
// selection is mapped back to a tier through tierByText.
func (app *NumerologyApp) subscriptionScreen() fyne.CanvasObject {
	app.tierByText = make(map[string]wizard.Tier, len(wizard.Plans))

	options := make([]string, 0, len(wizard.Plans))
	selected := ""
	for _, p := range wizard.Plans {
		text := app.planLabel(p)
		options = append(options, text)
		app.tierByText[text] = p.Tier
		if p.Tier == app.session.Tier {
			selected = text
		}
	}

	app.tierGroup = widget.NewRadioGroup(options, nil)
	app.tierGroup.SetSelected(selected)
	return app.tierGroup
}

// paymentScreen only confirms the amount; nothing is charged.
func (app *NumerologyApp) paymentScreen() fyne.CanvasObject {
	plan, _ := wizard.LookupTier(app.session.Tier)
	text := app.Translator.Format(config.TKeyPaymentText, "", map[string]any{
		"Tier":  app.Translator.Msg(plan.Key),
		"Price": app.price(plan.PriceCents),
	})
	return widget.NewLabel(text)
}

// profileScreen shows the chart of the registered birth date against today.
func (app *NumerologyApp) profileScreen() fyne.CanvasObject {
	tr := app.Translator

	greeting := widget.NewLabelWithStyle(
		tr.Format(config.TKeyProfileGreeting, app.session.Name, map[string]any{"Name": app.session.Name}),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true},
	)

	ref := numerology.FromTime(app.Clock.Now()).String()
	res, err := numerology.Compute(app.session.BirthDate, ref)
	if err != nil {
		// The registration guard makes this unreachable.
		return container.NewVBox(greeting, widget.NewLabel(tr.Error(err)))
	}

	return container.NewVBox(
		greeting,
		app.numbersGrid(res),
		widget.NewLabelWithStyle(tr.Msg(config.TKeyLblSquare), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		squareGrid(res),
	)
}

// journeyScreen lists the forecast of the current week when the chosen plan
// includes it.
func (app *NumerologyApp) journeyScreen() fyne.CanvasObject {
	tr := app.Translator
	if plan, ok := wizard.LookupTier(app.session.Tier); !ok || !plan.WeeklyChart {
		return widget.NewLabel(tr.Msg(config.TKeyJourneyLocked))
	}

	view := report.NewWeekView(favorability.GenerateWeek(app.Clock.Now()), tr)

	rows := container.NewVBox()
	for _, d := range view.Days {
		style := fyne.TextStyle{Bold: d.Favorable}
		rows.Add(widget.NewLabelWithStyle(d.Date.String()+"  "+d.Summary, fyne.TextAlignLeading, style))
		rows.Add(widget.NewLabel(strings.Join(d.Activities, config.ActivitySeparator)))
	}
	return rows
}

// numbersGrid is a two-column label/value listing of the principal numbers.
func (app *NumerologyApp) numbersGrid(res numerology.Result) fyne.CanvasObject {
	tr := app.Translator
	items := []struct {
		key   string
		value int
	}{
		{config.TKeyNumLifePath, res.LifePath},
		{config.TKeyNumSoul, res.Soul},
		{config.TKeyNumMind, res.Mind},
		{config.TKeyNumDestiny, res.Destiny},
		{config.TKeyNumWisdom, res.Wisdom},
		{config.TKeyNumRuling, res.Ruling},
		{config.TKeyNumProblem, res.Problem},
	}

	grid := container.NewGridWithColumns(config.LayoutColumnsDouble)
	for _, it := range items {
		grid.Add(widget.NewLabel(tr.Msg(it.key)))
		grid.Add(widget.NewLabel(strconv.Itoa(it.value)))
	}
	return grid
}

// squareGrid draws the 3x3 square, one digit per occurrence, "-" when empty.
func squareGrid(res numerology.Result) fyne.CanvasObject {
	counts := res.Histogram.Grid()
	grid := container.NewGridWithColumns(config.LayoutColumnsSquare)
	for r, line := range numerology.GridLayout {
		for c, slot := range line {
			text := strings.Repeat(strconv.Itoa(slot), counts[r][c])
			if text == "" {
				text = "-"
			}
			grid.Add(widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Monospace: true}))
		}
	}
	return grid
}

// planLabel is the radio text of a plan: name and price.
func (app *NumerologyApp) planLabel(p wizard.Plan) string {
	return app.Translator.Msg(p.Key) + " (" + app.price(p.PriceCents) + ")"
}

// price formats cents as euros, or the localized "free".
func (app *NumerologyApp) price(cents int) string {
	if cents == 0 {
		return app.Translator.Msg(config.TKeyPriceFree)
	}
	return fmt.Sprintf(config.FormatPrice, cents/config.PriceDivisor, cents%config.PriceDivisor)
}
