package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookit/internal/devserver"
	"bookit/internal/domain"
	"bookit/internal/logger"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	secret := flag.String("secret", "", "token signing secret (random when empty)")
	seed := flag.Bool("seed", false, "create demo accounts")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	cfg := logger.DefaultConfig()
	cfg.Level = *level
	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if *secret == "" {
		*secret = uuid.NewString()
	}
	srv, err := devserver.New(devserver.Options{Secret: []byte(*secret), Logger: log})
	if err != nil {
		log.Fatal("devserver", zap.Error(err))
	}
	if *seed {
		for _, u := range []struct {
			name, email string
			role        domain.Role
		}{
			{"Casey Customer", "customer@example.com", domain.RoleCustomer},
			{"Pat Provider", "provider@example.com", domain.RoleProvider},
		} {
			if _, err := srv.AddUser(u.name, u.email, "password1", u.role); err != nil {
				log.Fatal("seed", zap.Error(err))
			}
			log.Info("seeded account", zap.String("email", u.email))
		}
	}

	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdown)
	}()

	log.Info("devserver listening", zap.String("addr", *addr))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("listen", zap.Error(err))
	}
}
