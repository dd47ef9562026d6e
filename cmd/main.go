// Package main runs the cash card API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/lemuel-sousa/CashCard-spring-academy/cmd/httpserver"
	"github.com/lemuel-sousa/CashCard-spring-academy/internal/middleware"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, closeStore, err := httpserver.Open(ctx, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: server,
	}

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("CASH CARD API SERVER HAS STARTED")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}

	if err := closeStore(); err != nil {
		logger.Error().Err(err).Msg("cannot close store")
	}
}
