// Package ui is the Fyne front end. The window content is rebuilt from the
// wizard session every time the state changes.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/validation"
	"github.com/tartampluch/go-numerology/internal/wizard"
)

// NumerologyApp holds the window, the wizard session and the collaborators.
type NumerologyApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Ctx         context.Context

	Translator *locale.Translator
	Validator  *validation.Validator
	Clock      engine.Clock // Injected clock for testability

	// session is replaced wholesale on every transition, never mutated.
	session wizard.Session

	// Form widgets of the current screen, read back by Next.
	nameEntry  *widget.Entry
	birthEntry *DateEntry
	tierGroup  *widget.RadioGroup
	tierByText map[string]wizard.Tier
}

// NewNumerologyApp constructs the application. The translator language is
// taken from the stored preference when one exists.
func NewNumerologyApp(a fyne.App, ctx context.Context, tr *locale.Translator) *NumerologyApp {
	prefs := a.Preferences()
	if lang := prefs.String(config.PrefLanguage); lang != "" {
		tr.SetLanguage(lang)
	}

	return &NumerologyApp{
		App:         a,
		Preferences: prefs,
		Ctx:         ctx,
		Translator:  tr,
		Validator:   validation.New(),
		Clock:       engine.RealClock{},
		session:     wizard.Restart(),
	}
}

// Run shows the window and blocks in the Fyne event loop.
func (app *NumerologyApp) Run() {
	app.Setup()
	app.Window.ShowAndRun()
}

// Setup creates the main window and renders the first step.
func (app *NumerologyApp) Setup() {
	app.Window = app.App.NewWindow(app.Translator.MsgOr(config.TKeyAppTitle, config.AppName))
	app.Window.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))
	app.render()
}

// Session returns the current wizard session.
func (app *NumerologyApp) Session() wizard.Session {
	return app.session
}

// Next collects the form of the current step and advances the wizard. A
// rejected transition shows a blocking error dialog and keeps the step.
func (app *NumerologyApp) Next() error {
	s := app.collect(app.session)

	// 1. Field validation, so the dialog can name the bad field
	if s.State == wizard.Registration {
		if err := app.validateRegistration(s); err != nil {
			app.reject(s, err)
			return err
		}
	}

	// 2. Wizard guards
	next, err := wizard.Next(s)
	if err != nil {
		app.reject(s, err)
		return err
	}

	// 3. Remember the last accepted registration for the next launch
	if s.State == wizard.Registration {
		app.Preferences.SetString(config.PrefName, next.Name)
		app.Preferences.SetString(config.PrefBirthDate, next.BirthDate)
	}

	app.moveTo(next)
	return nil
}

// Back returns to the previous step.
func (app *NumerologyApp) Back() {
	app.moveTo(wizard.Back(app.collect(app.session)))
}

// Restart drops the session and shows the welcome step.
func (app *NumerologyApp) Restart() {
	app.moveTo(wizard.Restart())
}

// SetLanguage switches the translator, stores the choice and redraws.
func (app *NumerologyApp) SetLanguage(lang string) {
	app.Translator.SetLanguage(lang)
	app.Preferences.SetString(config.PrefLanguage, app.Translator.Language())
	app.Window.SetTitle(app.Translator.MsgOr(config.TKeyAppTitle, config.AppName))
	app.render()
}

func (app *NumerologyApp) moveTo(s wizard.Session) {
	if s.State != app.session.State {
		slog.Debug(config.MsgWizardStep,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyState, s.State.String(),
		)
	}
	app.session = s
	app.render()
}

func (app *NumerologyApp) reject(s wizard.Session, err error) {
	slog.Debug(config.MsgWizardReject,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyState, s.State.String(),
		config.LogKeyError, err,
	)
	// Keep what the user typed.
	app.session = s
	dialog.ShowError(errors.New(app.Translator.Error(err)), app.Window)
}

// collect copies the values of the visible form into s.
func (app *NumerologyApp) collect(s wizard.Session) wizard.Session {
	switch s.State {
	case wizard.Registration:
		if app.nameEntry != nil && app.birthEntry != nil {
			s = s.WithRegistration(app.nameEntry.Text, app.birthEntry.Text)
		}
	case wizard.Subscription:
		if app.tierGroup != nil {
			s = s.WithTier(app.tierByText[app.tierGroup.Selected])
		}
	}
	return s
}

// validateRegistration checks the form fields. A missing name is left to the
// wizard guard.
func (app *NumerologyApp) validateRegistration(s wizard.Session) error {
	return app.Validator.Struct(registrationForm{Name: s.Name, BirthDate: s.BirthDate})
}

type registrationForm struct {
	Name      string `json:"name" validate:"max=64"`
	BirthDate string `json:"birth_date" validate:"numdate"`
}

// render replaces the window content with the screen of the current state.
func (app *NumerologyApp) render() {
	if app.Window == nil {
		return
	}

	// Forget the widgets of the previous screen; collect ignores nil ones.
	app.nameEntry, app.birthEntry, app.tierGroup = nil, nil, nil

	var body fyne.CanvasObject
	switch app.session.State {
	case wizard.Welcome:
		body = app.welcomeScreen()
	case wizard.Registration:
		body = app.registrationScreen()
	case wizard.Subscription:
		body = app.subscriptionScreen()
	case wizard.Payment:
		body = app.paymentScreen()
	case wizard.Profile:
		body = app.profileScreen()
	default:
		body = app.journeyScreen()
	}

	title := widget.NewLabelWithStyle(app.Translator.Msg(stepKeys[app.session.State]),
		fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	app.Window.SetContent(container.NewBorder(
		title,
		app.navigation(),
		nil, nil,
		container.NewVScroll(body),
	))
}

var stepKeys = map[wizard.State]string{
	wizard.Welcome:      config.TKeyStepWelcome,
	wizard.Registration: config.TKeyStepRegistration,
	wizard.Subscription: config.TKeyStepSubscription,
	wizard.Payment:      config.TKeyStepPayment,
	wizard.Profile:      config.TKeyStepProfile,
	wizard.Journey:      config.TKeyStepJourney,
}

// navigation builds the button bar of the current step.
func (app *NumerologyApp) navigation() fyne.CanvasObject {
	tr := app.Translator
	next := func() { _ = app.Next() }

	switch app.session.State {
	case wizard.Welcome:
		return container.NewHBox(widget.NewButton(tr.Msg(config.TKeyBtnNext), next))
	case wizard.Payment:
		return container.NewHBox(
			widget.NewButton(tr.Msg(config.TKeyBtnBack), app.Back),
			widget.NewButton(tr.Msg(config.TKeyBtnPay), next),
		)
	case wizard.Journey:
		return container.NewHBox(
			widget.NewButton(tr.Msg(config.TKeyBtnBack), app.Back),
			widget.NewButton(tr.Msg(config.TKeyBtnRestart), app.Restart),
		)
	default:
		return container.NewHBox(
			widget.NewButton(tr.Msg(config.TKeyBtnBack), app.Back),
			widget.NewButton(tr.Msg(config.TKeyBtnNext), next),
		)
	}
}
