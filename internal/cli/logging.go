package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-numerology/internal/config"
)

// setupLogging configures the default slog logger. Logs go to stderr so that
// stdout only carries command output. Daemon commands log at info level and
// also to a file in the user's cache directory.
func (a *App) setupLogging(daemon bool) io.Closer {
	// 1. Level: quiet for one-shot commands, verbose when asked
	level := slog.LevelWarn
	if daemon {
		level = slog.LevelInfo
	}
	if a.debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: a.debug,
	}

	// 2. Tests capture or discard everything through LogWriter.
	if a.opts.LogWriter != nil {
		slog.SetDefault(slog.New(slog.NewJSONHandler(a.opts.LogWriter, opts)))
		return nil
	}

	// 3. Stderr always, plus the cache file for long-running commands
	writers := []io.Writer{a.opts.Stderr}
	var logFile *os.File

	if daemon {
		if logPath, err := getLogFilePath(); err == nil {
			// O_TRUNC resets logs on restart to prevent indefinite growth.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(a.opts.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	// A typed nil inside the interface would make the caller close nothing.
	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
