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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"campusqa/internal/api"
	"campusqa/internal/config"
	"campusqa/internal/service"
	"campusqa/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	svc, err := service.FromConfig(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to assemble service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Load(ctx); err != nil {
		if errors.Is(err, vectorstore.ErrNotFound) {
			log.Fatal().Str("dir", cfg.IndexDir).
				Msg("no index found; run campusqa-index first")
		}
		log.Fatal().Err(err).Msg("failed to load index")
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.NewServer(svc, log),
	}
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("serving")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
