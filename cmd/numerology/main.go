package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-numerology/internal/cli"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/ui"
)

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain creates the root context that cancels on SIGINT or SIGTERM and
// hands over to the command line.
func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return cli.Execute(ctx, os.Args[1:], cli.Options{GUI: runGUI})
}

// runGUI initializes the Fyne application and blocks until the window closes.
func runGUI(ctx context.Context, a *cli.App) error {
	fa := app.NewWithID(config.AppID)

	// Record the version for potential migration logic in future updates.
	fa.Preferences().SetString(config.PrefLastRun, config.Version)

	gui := ui.NewNumerologyApp(fa, ctx, a.Translator)
	gui.Clock = a.Clock

	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fa.Quit()
	}()

	gui.Run()

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return nil
}
