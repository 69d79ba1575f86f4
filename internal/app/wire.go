package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"bookit/internal/api"
	"bookit/internal/chat"
	"bookit/internal/domain"
	"bookit/internal/logger"
	"bookit/internal/realtime"
	"bookit/internal/services/auth"
	"bookit/internal/services/booking"
	"bookit/internal/services/catalog"
	"bookit/internal/services/favorite"
	"bookit/internal/services/payment"
	"bookit/internal/services/provider"
	"bookit/internal/services/review"
	"bookit/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Config *Config
	Log    *zap.Logger
	Store  *store.SessionStore
	API    *api.Client

	Auth      *auth.Service
	Catalog   *catalog.Service
	Bookings  *booking.Service
	Payments  *payment.Service
	Providers *provider.Service
	Reviews   *review.Service
	Favorites *favorite.Service
}

// NewWire constructs the dependency graph from cfg and restores any cached
// session.
func NewWire(cfg *Config) (*Wire, error) {
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, err
	}

	opts := []store.SessionOption{store.WithLogger(log)}
	if cfg.Passphrase != "" {
		opts = append(opts, store.WithPassphrase(cfg.Passphrase))
	}
	sessions := store.NewSessionStore(cfg.Home, opts...)

	// The REST client reads its token from the auth service, which is built
	// from the client; the TokenFunc breaks the cycle.
	var authSvc *auth.Service
	tokens := domain.TokenFunc(func() string { return authSvc.Token() })

	client, err := api.New(api.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		Tokens:            tokens,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
		UserAgent:         "bookit-cli",
		Logger:            log,
	})
	if err != nil {
		return nil, err
	}
	authSvc = auth.New(client, client, sessions, log)
	if _, _, err := authSvc.Restore(); err != nil {
		// An unreadable cache only means signing in again.
		log.Warn("cached session not restored", zap.Error(err))
	}

	return &Wire{
		Config:    cfg,
		Log:       log,
		Store:     sessions,
		API:       client,
		Auth:      authSvc,
		Catalog:   catalog.New(client),
		Bookings:  booking.New(client),
		Payments:  payment.New(client),
		Providers: provider.New(client),
		Reviews:   review.New(client),
		Favorites: favorite.New(client),
	}, nil
}

// Chat builds a chat sync for the signed-in user over a fresh socket. The
// caller starts and closes it.
func (w *Wire) Chat(onChange func(chat.Snapshot)) (*chat.Sync, error) {
	me, ok := w.Auth.Current()
	if !ok {
		return nil, domain.ErrNoToken
	}
	sock := realtime.New(realtime.Options{
		URL:                  w.Config.Socket.URL,
		Tokens:               w.Auth,
		MaxReconnectAttempts: w.Config.Socket.MaxReconnectAttempts,
		ReconnectDelay:       w.Config.Socket.ReconnectDelay,
		ReconnectDelayMax:    w.Config.Socket.ReconnectDelayMax,
		PingInterval:         w.Config.Socket.PingInterval,
		Logger:               w.Log,
	})
	return chat.New(w.API, sock, me.ID, chat.Options{
		TypingTimeout: w.Config.Chat.TypingTimeout,
		OnChange:      onChange,
		Logger:        w.Log,
	}), nil
}

// Close flushes the logger.
func (w *Wire) Close() {
	_ = w.Log.Sync()
}
