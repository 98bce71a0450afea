// Package cli wires the costlens terminal client: configuration, the local
// session cache, the authority client, and the interactive dashboard
// browser with its authorization gate.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mkraev/costlens/internal/client/admin"
	"github.com/mkraev/costlens/internal/client/authority"
	"github.com/mkraev/costlens/internal/client/config"
	"github.com/mkraev/costlens/internal/client/costs"
	"github.com/mkraev/costlens/internal/client/session"
	"github.com/mkraev/costlens/internal/client/store"
	"github.com/mkraev/costlens/internal/logging"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	client   authority.Client
	session  *session.Controller
	activity *admin.Activity
	costs    *costs.Client
	reader   *bufio.Reader

	// current single-account filter chosen in the UI; 0 means none.
	accountFilter int64
	// user id filter on the admin activity view; 0 means all users.
	activityFilter int64
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := newLogger(cfg.LogLevel)

	db, err := store.InitDatabase(ctx, cfg.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to init session cache: %w", err)
	}

	sessionStore := store.NewSessionStore(db)
	clientID, err := sessionStore.ClientID(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to resolve client id: %w", err)
	}

	userAgent := fmt.Sprintf("costlens/%s (%s)", Version, clientID)
	apiClient := authority.NewHTTPClient(cfg.ServerURL, userAgent, cfg.RequestTimeout)

	ctrl := session.NewController(apiClient, sessionStore, log)

	return &App{
		config:   cfg,
		log:      log,
		db:       db,
		client:   apiClient,
		session:  ctrl,
		activity: admin.NewActivity(apiClient, log),
		costs:    costs.NewClient(cfg.ServerURL, ctrl, cfg.RequestTimeout),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	if err := a.client.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

func newLogger(level string) logging.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return logging.NewSlogLogger(slog.New(h))
}
