package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/numerology"
	"golang.org/x/sync/errgroup"
)

// SourceConfig locates the vCard stream used for contact charts.
type SourceConfig struct {
	Mode      string // config.SourceModeNone, config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Generator builds the forecast feed and the contact charts.
type Generator struct {
	Clock   Clock        // Reference date source.
	Fetcher VCardFetcher // Used in web mode only.

	// Workers bounds parallel chart computation. Zero means config.DefaultWorkers.
	Workers int

	// FormatSummary and FormatActivities let the caller inject localized text.
	FormatSummary    func(day favorability.DayForecast) string
	FormatActivities func(list []favorability.Activity) []string
}

// contactEntry is a decoded card that passed the birthday checks.
type contactEntry struct {
	name  string
	birth time.Time
}

// RunSync rebuilds the forecast of the current week and, when a source is
// configured, the contact charts. The feed is returned even if contacts fail.
func (g *Generator) RunSync(ctx context.Context, cfg SourceConfig) ([]byte, []ContactChart, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	// 1. Forecast feed (never depends on the contact source)
	ics, err := g.BuildWeekCalendar(g.Clock.Now())
	if err != nil {
		return nil, nil, err
	}

	if cfg.Mode == config.SourceModeNone {
		log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
		return ics, nil, nil
	}

	// 2. Contact charts
	charts, err := g.LoadCharts(ctx, cfg)
	if err != nil {
		// The caller still publishes the feed.
		return ics, nil, err
	}

	log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, charts, nil
}

// BuildWeekCalendar renders the week containing now as an iCalendar feed with
// one all-day event per day. Favorable days carry a DISPLAY alarm.
func (g *Generator) BuildWeekCalendar(now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()

	// Set standard iCalendar headers
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: suggest a refresh interval so clients pick up the next week
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// One DTSTAMP shared by every event of this rendering.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	// Sunday-first week containing now, one all-day event per day.
	week := favorability.GenerateWeek(now)
	favorable := 0

	for _, day := range week {
		event := g.createEvent(day)
		event.Props.Set(dtStampProp)
		if day.Favorable() {
			favorable++
		}
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyWeek, week[0].Date.Format(config.DateFormatFullDash),
		config.LogKeyFavorable, favorable,
	)
	return buf.Bytes(), nil
}

// createEvent turns one forecast day into an all-day event. Favorable days
// get a reminder.
func (g *Generator) createEvent(day favorability.DayForecast) *ical.Event {
	dateKey := day.Date.Format(config.DateFormatFullDash)

	// Same day, same UID: clients update the event instead of duplicating it.
	input := fmt.Sprintf(config.FormatHashInput, dateKey, day.Planet, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain))

	summary := g.summary(day)
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropDescription, strings.Join(g.activities(day.Activities), config.ActivitySeparator))

	// VALUE=DATE: the forecast belongs to the calendar day, not to an instant.
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(day.Date)
	event.Props.Set(dtStartProp)

	if day.Favorable() {
		addAlarm(event, config.AlarmTrigger, summary)
	}
	return event
}

// summary falls back to untranslated text when no formatter is injected.
func (g *Generator) summary(day favorability.DayForecast) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(day)
	}
	return fmt.Sprintf(config.FallbackDaySummary, day.Planet, day.Favorability)
}

// activities falls back to the English defaults of the planet table.
func (g *Generator) activities(list []favorability.Activity) []string {
	if g.FormatActivities != nil {
		return g.FormatActivities(list)
	}
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.Default
	}
	return out
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set the raw value to avoid a VALUE=TEXT parameter.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// LoadCharts decodes every contact with a dated birthday and computes its
// chart against the clock's current date. Malformed cards and birthdays
// without a year are skipped. The result is ordered by name.
func (g *Generator) LoadCharts(ctx context.Context, cfg SourceConfig) ([]ContactChart, error) {
	start := time.Now()

	// 1. Acquire Data Stream
	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	// 2. Decode cards (sequential)
	entries, err := decodeContacts(ctx, reader)
	if err != nil {
		return nil, err
	}

	// 3. Compute charts (parallel, bounded by Workers). Every goroutine
	// writes its own index, so charts needs no lock.
	now := g.Clock.Now()
	ref := numerology.FromTime(now).String()
	charts := make([]ContactChart, len(entries))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.workers())

	for i, e := range entries {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			birth := numerology.FromTime(e.birth)
			chart, err := numerology.Compute(birth.String(), ref)
			if err != nil {
				return fmt.Errorf("%s: %s: %w", config.ErrChart, e.name, err)
			}

			next, age := calculateNextOccurrence(now, e.birth)
			charts[i] = ContactChart{
				UID:          contactUID(e),
				Name:         e.name,
				BirthDate:    birth,
				NextBirthday: next,
				AgeNext:      age,
				Chart:        chart,
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	// 4. Stable order: name, then UID for homonyms
	slices.SortStableFunc(charts, func(a, b ContactChart) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.UID, b.UID)
	})

	slog.Info(config.MsgChartsReady,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCharts, len(charts),
		config.LogKeyWorkers, g.workers(),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return charts, nil
}

// workers returns the effective parallelism.
func (g *Generator) workers() int {
	if g.Workers <= 0 {
		return config.DefaultWorkers
	}
	return g.Workers
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	case config.SourceModeNone:
		return nil, errors.New(config.ErrNoSource)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// decodeContacts reads the vCard stream sequentially; the decoder is not
// safe for concurrent use.
func decodeContacts(ctx context.Context, r io.Reader) ([]contactEntry, error) {
	src := &stickyReader{r: r}
	decoder := vcard.NewDecoder(src)
	stats := struct{ processed, skipped int }{}
	var entries []contactEntry

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if src.err != nil && !errors.Is(src.err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, src.err)
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			stats.skipped++
			continue
		}

		stats.processed++

		// Cards without a birthday are not an error, just not charted.
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birth, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			stats.skipped++
			continue
		}
		if !yearKnown {
			slog.Debug(config.MsgSkippedNoYear,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			stats.skipped++
			continue
		}

		// FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		entries = append(entries, contactEntry{name: name, birth: birth})
	}

	slog.Debug(config.MsgSyncFinished,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeySkipped, stats.skipped),
		),
	)
	return entries, nil
}

// stickyReader remembers the first read error so that a broken stream is
// told apart from a malformed card.
type stickyReader struct {
	r   io.Reader
	err error
}

func (s *stickyReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && s.err == nil {
		s.err = err
	}
	return n, err
}

// contactUID is stable across refreshes so consumers can diff contact lists.
func contactUID(e contactEntry) string {
	input := fmt.Sprintf(config.FormatHashInput, e.name, e.birth.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// calculateNextOccurrence returns the next birthday on or after the start of
// now's day, and the age reached on it. Feb 29 falls on Mar 1 in common years.
func calculateNextOccurrence(now time.Time, birthDate time.Time) (time.Time, int) {
	loc := now.Location()
	currentYear := now.Year()

	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	return candidate, candidate.Year() - birthDate.Year()
}

// parseDate handles the vCard BDAY shapes seen in the wild.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates are vCard 4 specific.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
