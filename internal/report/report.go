// Package report renders charts, forecasts and contact lists for the terminal
// as tables, or as JSON or YAML documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"gopkg.in/yaml.v3"
)

// Renderer writes values in one output format.
type Renderer struct {
	out    io.Writer
	format string             // config.OutputTable, OutputJSON or OutputYAML
	tr     *locale.Translator // Labels and planet names; nil falls back to keys
	colors bool               // ANSI styling, decided once at construction
}

// New creates a renderer. Colors are used for tables only, and only when the
// environment allows them.
func New(out io.Writer, format string, tr *locale.Translator) *Renderer {
	return &Renderer{
		out:    out,
		format: format,
		tr:     tr,
		colors: useColors(out),
	}
}

// useColors honours NO_COLOR and never colors buffers or redirected output.
func useColors(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := out.(*os.File)
	return ok && f == os.Stdout && !color.NoColor
}

// Chart renders a full chart.
func (r *Renderer) Chart(res numerology.Result) error {
	if done, err := r.structured(res); done {
		return err
	}

	// 1. Principal numbers
	r.header(r.tr.MsgOr(config.TKeyNumLifePath, "Life path") + ": " + strconv.Itoa(res.LifePath))

	w := res.Working
	rows := [][]string{
		{r.tr.Msg(config.TKeyLblBirthDate), res.BirthDate.String()},
		{r.tr.Msg(config.TKeyLblReferenceDate), res.ReferenceDate.String()},
		{r.tr.Msg(config.TKeyNumWorking), joinInts(", ", w.First, w.Second, w.Third, w.Fourth)},
		{r.tr.Msg(config.TKeyNumSoul), strconv.Itoa(res.Soul)},
		{r.tr.Msg(config.TKeyNumMind), strconv.Itoa(res.Mind)},
		{r.tr.Msg(config.TKeyNumDestiny), strconv.Itoa(res.Destiny)},
		{r.tr.Msg(config.TKeyNumMind2), strconv.Itoa(res.Mind2)},
		{r.tr.Msg(config.TKeyNumWisdom), strconv.Itoa(res.Wisdom)},
		{r.tr.Msg(config.TKeyNumLifePath), strconv.Itoa(res.LifePath)},
		{r.tr.Msg(config.TKeyNumRuling), strconv.Itoa(res.Ruling)},
		{r.tr.Msg(config.TKeyNumProblem), strconv.Itoa(res.Problem)},
		{r.tr.Msg(config.TKeyNumIndividual), joinInts(" / ", res.Individual.Year, res.Individual.Month, res.Individual.Day)},
		{r.tr.Msg(config.TKeyNumProblemCycle), joinInts(" / ", res.ProblemCycle.Year, res.ProblemCycle.Month, res.ProblemCycle.Day)},
	}
	if err := r.table(nil, rows); err != nil {
		return err
	}

	// 2. Planet square, laid out as drawn on paper
	r.header(r.tr.Msg(config.TKeyLblSquare))
	counts := res.Histogram.Grid()
	grid := make([][]string, 0, len(numerology.GridLayout))
	for i, line := range numerology.GridLayout {
		row := make([]string, len(line))
		for j, slot := range line {
			row[j] = squareCell(slot, counts[i][j])
		}
		grid = append(grid, row)
	}
	if err := r.table(nil, grid); err != nil {
		return err
	}

	// 3. Per-slot strengths
	r.header(r.tr.Msg(config.TKeyLblStrength))
	strengths := make([][]string, 0, numerology.SlotCount)
	for _, p := range numerology.SquarePlanets[1:] {
		strengths = append(strengths, []string{
			strconv.Itoa(p.Slot),
			r.tr.Msg(p.Key),
			strconv.Itoa(res.Histogram[p.Slot]),
			strconv.Itoa(res.Strengths[p.Slot]),
		})
	}
	if err := r.table([]string{
		r.tr.Msg(config.TKeyLblSlot),
		r.tr.Msg(config.TKeyLblPlanet),
		r.tr.Msg(config.TKeyLblCount),
		r.tr.Msg(config.TKeyLblStrength),
	}, strengths); err != nil {
		return err
	}

	// 4. Line sums
	lines := [][]string{
		{r.tr.Msg(config.TKeyLblCharacter), joinInts(" ", res.Lines.Character[:]...)},
		{r.tr.Msg(config.TKeyLblStability), joinInts(" ", res.Lines.Stability[:]...)},
		{r.tr.Msg(config.TKeyLblSpiritual), joinInts(" ", res.Lines.Spiritual[:]...)},
	}
	return r.table(nil, lines)
}

// Week renders a seven-day forecast.
func (r *Renderer) Week(week favorability.Week) error {
	view := NewWeekView(week, r.tr)
	if done, err := r.structured(view); done {
		return err
	}

	rows := make([][]string, 0, len(view.Days))
	for _, d := range view.Days {
		// Favorable days stand out in green, the others are dimmed.
		rating := strconv.Itoa(d.Favorability) + "/10"
		if r.colors {
			if d.Favorable {
				rating = color.GreenString(rating)
			} else {
				rating = color.New(color.Faint).Sprint(rating)
			}
		}
		rows = append(rows, []string{
			d.Date.String(),
			d.Planet,
			rating,
			strings.Join(d.Activities, config.ActivitySeparator),
		})
	}

	return r.table([]string{
		r.tr.Msg(config.TKeyLblDate),
		r.tr.Msg(config.TKeyLblPlanet),
		r.tr.Msg(config.TKeyLblFavorability),
		r.tr.Msg(config.TKeyLblActivities),
	}, rows)
}

// Contacts renders the contact charts as one summary row each.
func (r *Renderer) Contacts(list []engine.ContactChart) error {
	// Encode an empty source as [] rather than null.
	if list == nil {
		list = []engine.ContactChart{}
	}
	if done, err := r.structured(list); done {
		return err
	}

	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			c.Name,
			c.BirthDate.String(),
			c.NextBirthday.Format(config.DateLayout),
			strconv.Itoa(c.AgeNext),
			strconv.Itoa(c.Chart.LifePath),
			strconv.Itoa(c.Chart.Soul),
			strconv.Itoa(c.Chart.Destiny),
		})
	}

	return r.table([]string{
		r.tr.Msg(config.TKeyLblContact),
		r.tr.Msg(config.TKeyLblBirthDate),
		r.tr.Msg(config.TKeyLblNextBirthday),
		r.tr.Msg(config.TKeyLblAge),
		r.tr.Msg(config.TKeyNumLifePath),
		r.tr.Msg(config.TKeyNumSoul),
		r.tr.Msg(config.TKeyNumDestiny),
	}, rows)
}

// structured handles the json and yaml formats. It reports false for tables.
func (r *Renderer) structured(v any) (bool, error) {
	switch r.format {
	case config.OutputJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("%s: %w", config.ErrRender, err)
		}
		return true, nil
	case config.OutputYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("%s: %w", config.ErrRender, err)
		}
		if err := enc.Close(); err != nil {
			return true, fmt.Errorf("%s: %w", config.ErrRender, err)
		}
		return true, nil
	case config.OutputTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%s: %q", config.ErrOutputFormat, r.format)
	}
}

// header prints a section title, underlined when colors are off.
func (r *Renderer) header(title string) {
	if r.colors {
		color.New(color.FgWhite, color.Bold).Fprintf(r.out, "\n%s\n", title)
		return
	}
	fmt.Fprintf(r.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
}

// table renders borderless, left-aligned rows. A nil headers slice gives a
// key/value listing.
func (r *Renderer) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(r.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	if len(headers) > 0 {
		table.Header(headers)
	}
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	return nil
}

// squareCell repeats the slot digit once per occurrence, the way the square
// is traditionally drawn.
func squareCell(slot, count int) string {
	if count == 0 {
		return "-"
	}
	return strings.Repeat(strconv.Itoa(slot), count)
}

// joinInts formats values with sep.
func joinInts(sep string, values ...int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
