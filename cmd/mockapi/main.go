// Mockapi serves seeded content endpoints for developing the pocket
// client without the production API.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/lucasfiiresearch/pocket/internal/mockapi"
	"github.com/lucasfiiresearch/pocket/logger"
)

type config struct {
	Port        int  `env:"PORT, default=8787"`
	RequireAuth bool `env:"REQUIRE_AUTH, default=true"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}
	logger.Setup(cfg.LoggerFormat)

	s := mockapi.NewServer(cfg.Port, cfg.RequireAuth)

	go func() {
		<-ctx.Done()

		downCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(downCtx); err != nil {
			slog.Error("error shutting down server", "err", err)
		}
	}()

	slog.Info("mock api listening", "port", cfg.Port, "require_auth", cfg.RequireAuth)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error listening", "err", err)
		os.Exit(1)
	}
}
