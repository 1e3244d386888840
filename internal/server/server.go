// Package server exposes the forecast feed and the JSON API on localhost.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/tartampluch/go-numerology/internal/engine"
	"github.com/tartampluch/go-numerology/internal/locale"
	"github.com/tartampluch/go-numerology/internal/validation"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// CalendarServer serves the cached forecast feed, the contact charts and the
// on-demand chart and week endpoints.
type CalendarServer struct {
	// Reads vastly outnumber updates; atomic pointers keep the hot path lock-free.
	cache    atomic.Pointer[cacheItem]
	contacts atomic.Pointer[[]engine.ContactChart]

	Port       string                // Listening port, bound to localhost only
	Clock      engine.Clock          // "Today" for requests without a date
	Translator *locale.Translator    // Default language; ?lang= overrides per request
	Validator  *validation.Validator // Query parameter checks
}

// NewCalendarServer creates a server answering in tr's language by default.
func NewCalendarServer(port string, tr *locale.Translator) *CalendarServer {
	return &CalendarServer{
		Port:       port,
		Clock:      engine.RealClock{},
		Translator: tr,
		Validator:  validation.New(),
	}
}

// Handler returns the chi router with every route mounted.
func (s *CalendarServer) Handler() http.Handler {
	r := chi.NewRouter()

	// Request IDs are echoed in error bodies to correlate with the logs.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// The feed handler enforces its own method list.
	r.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)

	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteChart, s.handleChart)
		r.Get(config.RouteWeek, s.handleWeek)
		r.Get(config.RouteContacts, s.handleContacts)
	})

	r.Get(config.RouteHealth, s.handleHealth)
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	// Hardened server with explicit timeouts
	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	// Buffered so the listener goroutine never blocks after Start returned.
	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	// Block until cancellation or a listener failure (port taken, etc.)
	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *CalendarServer) Update(data []byte) {
	// Strong ETag: the feed only changes when its bytes change.
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// UpdateContacts atomically replaces the served contact charts.
func (s *CalendarServer) UpdateContacts(charts []engine.ContactChart) {
	if charts == nil {
		charts = []engine.ContactChart{}
	}
	s.contacts.Store(&charts)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 1. Not ready until the worker's first sync
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	// 2. Headers shared by 200 and 304
	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	// 3. Conditional requests: ETag first, then Last-Modified
	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	// 4. Body (HEAD stops at the headers)
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// handleContacts serves the charts of the last successful sync.
func (s *CalendarServer) handleContacts(w http.ResponseWriter, r *http.Request) {
	charts := s.contacts.Load()
	if charts == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		respondError(w, r, http.StatusServiceUnavailable, config.HTTPMsgInitializing)
		return
	}
	respondJSON(w, http.StatusOK, *charts)
}

// handleHealth reports liveness and whether the feed is ready.
func (s *CalendarServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Status:  config.HTTPStatusOK,
		Version: config.Version,
		Feed:    s.cache.Load() != nil,
	})
}

// translator picks the request language, falling back to the server default.
func (s *CalendarServer) translator(r *http.Request) *locale.Translator {
	// For clones the catalogues, so concurrent requests never share a language switch.
	if lang := r.URL.Query().Get(config.QueryLang); lang != "" && s.Translator != nil {
		return s.Translator.For(lang)
	}
	return s.Translator
}

// respondJSON writes data with status. Encoding errors can only be logged
// since the header is already sent.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// respondError writes an errorResponse carrying the chi request id.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug(config.MsgRequestBad,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyStatus, status,
		config.LogKeyPath, r.URL.Path,
	)
	respondJSON(w, status, errorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
