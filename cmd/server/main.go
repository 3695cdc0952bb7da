package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	router "github.com/example/barboard/internal/adapters/http"
	"github.com/example/barboard/internal/adapters/ws"
	"github.com/example/barboard/internal/app"
	"github.com/example/barboard/internal/config"
	"github.com/example/barboard/internal/hub"
	"github.com/example/barboard/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	st := store.NewFileStore(afero.NewOsFs(), cfg.DataDir)
	broadcast := hub.New()

	repo, err := app.NewRepository(st, broadcast, cfg.Tables)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load orders")
	}
	menu, err := app.NewMenuService(st, broadcast)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load menu")
	}
	users, err := app.NewUserService(st)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}

	handlers := &router.Handlers{
		Repo:  repo,
		Menu:  menu,
		Users: users,
		WS:    ws.NewController(broadcast, repo, cfg.ReadLimit, cfg.PingPeriod),
	}

	r := router.SetupRouter(ctx, cfg, handlers)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Barboard server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
