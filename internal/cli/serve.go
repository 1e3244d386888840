package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/server"
	"golang.org/x/sync/errgroup"
)

// newServeCommand runs the feed server. The daemon annotation switches
// logging to Info and adds the log file.
func (a *App) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         config.CmdUseServe,
		Short:       config.CmdShortServe,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{config.AnnotationDaemon: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String(config.FlagPort, "", config.FlagDescPort)
	return cmd
}

// serve runs the HTTP server and the refresh worker until ctx is cancelled
// or the server fails.
func (a *App) serve(ctx context.Context) error {
	srv := server.NewCalendarServer(a.Settings.Server.Port, a.Translator)
	srv.Clock = a.Clock

	// A server failure cancels the worker, and vice versa.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(ctx)
	})
	g.Go(func() error {
		a.backgroundWorker(ctx, srv)
		return nil
	})

	err := g.Wait()
	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return err
}

// backgroundWorker rebuilds the feed and the contact charts right away, then
// on every tick of the refresh interval.
func (a *App) backgroundWorker(ctx context.Context, srv *server.CalendarServer) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	gen := a.Generator()

	// Initial sync, so the feed is ready without waiting for a tick.
	a.performSync(ctx, gen, srv)

	interval := time.Duration(a.Settings.Server.RefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = config.DefaultRefreshMin * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			a.performSync(ctx, gen, srv)
		}
	}
}

// performSync publishes whatever RunSync produced. A contact failure keeps the
// previous contact list and still refreshes the feed.
func (a *App) performSync(ctx context.Context, gen *engine.Generator, srv *server.CalendarServer) {
	ics, charts, err := gen.RunSync(ctx, a.sourceConfig())
	if ics != nil {
		srv.Update(ics)
	}
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompWorker,
			config.LogKeyError, err,
		)
		return
	}
	srv.UpdateContacts(charts)
}
