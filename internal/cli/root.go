// Package cli implements the numerology command line on top of cobra and
// viper. Every command shares one App holding the settings, the translator
// and the injected collaborators.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/credentials"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/favorability"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/report"
	"github.com/tartampluch/go-numerology/internal/validation"
)

// GUIFunc opens the desktop wizard and blocks until it is closed.
type GUIFunc func(ctx context.Context, a *App) error

// Options carries the collaborators of the command tree. Zero values are
// replaced by the production implementations.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LogWriter replaces stderr and the log file when set.
	LogWriter io.Writer

	Clock       engine.Clock        // Interface for time mocking
	Fetcher     engine.VCardFetcher // Interface for network abstraction
	Credentials *credentials.Store  // Keyring access for the CardDAV password
	GUI         GUIFunc             // Nil in builds without a desktop driver
}

// App is the state shared by the commands once the configuration is loaded.
type App struct {
	Settings    *config.Settings
	Translator  *locale.Translator
	Validator   *validation.Validator
	Clock       engine.Clock
	Fetcher     engine.VCardFetcher
	Credentials *credentials.Store

	// Flag targets and process resources, set up by initConfig.
	opts      Options
	cfgFile   string
	debug     bool
	logCloser io.Closer
}

// NewRootCommand builds the full command tree.
func NewRootCommand(opts Options) *cobra.Command {
	root, _ := newRootCommand(opts)
	return root
}

// newRootCommand also returns the App so Execute can release its resources.
func newRootCommand(opts Options) (*cobra.Command, *App) {
	a := newApp(opts)

	root := &cobra.Command{
		Use:           config.BinaryName,
		Short:         config.CmdShortRoot,
		Long:          config.CmdLongRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.initConfig(cmd)
		},
	}

	root.SetIn(a.opts.Stdin)
	root.SetOut(a.opts.Stdout)
	root.SetErr(a.opts.Stderr)

	// --lang and --output have no Go target: viper reads them through
	// BindPFlag, so config file and environment keep working underneath.
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, config.FlagConfig, "", config.FlagDescConfig)
	flags.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.String(config.FlagLang, "", config.FlagDescLang)
	flags.StringP(config.FlagOutput, config.FlagShortOutput, "", config.FlagDescOutput)

	root.AddCommand(
		a.newChartCommand(),
		a.newWeekCommand(),
		a.newContactsCommand(),
		a.newServeCommand(),
		a.newGUICommand(),
		a.newCredentialsCommand(),
		newVersionCommand(),
	)

	return root, a
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	root, a := newRootCommand(opts)
	defer a.close()
	root.SetArgs(args)

	// The log file is closed by the deferred close, after the failure is logged.
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompCLI,
			config.LogKeyError, err,
		)
		fmt.Fprintf(root.ErrOrStderr(), config.MsgCLIError, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// newApp fills in the production collaborators for every nil option.
func newApp(opts Options) *App {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = engine.RealClock{}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = engine.NewHTTPFetcher()
	}
	if opts.Credentials == nil {
		opts.Credentials = credentials.New()
	}

	return &App{
		Validator:   validation.New(),
		Clock:       opts.Clock,
		Fetcher:     opts.Fetcher,
		Credentials: opts.Credentials,
		opts:        opts,
	}
}

// initConfig loads the settings with flag overrides, then sets up logging
// and the translator.
func (a *App) initConfig(cmd *cobra.Command) error {
	// 1. Bind flags over file and environment
	v := config.NewViper(a.cfgFile)

	root := cmd.Root().PersistentFlags()
	_ = v.BindPFlag(config.KeyLanguage, root.Lookup(config.FlagLang))
	_ = v.BindPFlag(config.KeyOutput, root.Lookup(config.FlagOutput))
	if f := cmd.Flags().Lookup(config.FlagPort); f != nil {
		_ = v.BindPFlag(config.KeyServerPort, f)
	}
	if f := cmd.Flags().Lookup(config.FlagUser); f != nil {
		_ = v.BindPFlag(config.KeySourceUser, f)
	}

	// 2. Logging first, so configuration errors reach the log file too
	daemon := cmd.Annotations[config.AnnotationDaemon] != ""
	a.logCloser = a.setupLogging(daemon)

	// 3. Settings and translator
	settings, err := config.Load(v)
	if err != nil {
		return err
	}
	a.Settings = settings
	a.Translator = locale.New(settings.Language)

	if daemon {
		logStartupInfo()
	}
	return nil
}

// close releases the log file. Safe to call twice.
func (a *App) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

// sourceConfig maps the settings to the engine source, with the password
// taken from the keyring.
func (a *App) sourceConfig() engine.SourceConfig {
	src := a.Settings.Source
	cfg := engine.SourceConfig{
		Mode:      src.Mode,
		LocalPath: src.LocalPath,
		WebURL:    src.WebURL,
		WebUser:   src.WebUser,
	}
	if cfg.Mode == config.SourceModeWeb {
		cfg.WebPass = a.Credentials.Lookup(cfg.WebUser)
	}
	return cfg
}

// Generator returns an engine generator localized with the app translator.
func (a *App) Generator() *engine.Generator {
	return a.GeneratorFor(a.Translator)
}

// GeneratorFor returns an engine generator localized with tr.
func (a *App) GeneratorFor(tr *locale.Translator) *engine.Generator {
	return &engine.Generator{
		Clock:   a.Clock,
		Fetcher: a.Fetcher,
		Workers: a.Settings.Workers,
		FormatSummary: func(day favorability.DayForecast) string {
			return report.DaySummary(tr, day)
		},
		FormatActivities: tr.Activities,
	}
}
