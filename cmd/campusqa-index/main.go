package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"campusqa/internal/config"
	"campusqa/internal/service"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		force   bool
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.BoolVar(&force, "force", false, "Rebuild even when an index already exists")
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

	n, err := svc.BuildIndex(ctx, force)
	if err != nil {
		log.Fatal().Err(err).Msg("index build failed")
	}
	log.Info().Int("chunks", n).Str("dir", cfg.IndexDir).Msg("index ready")
}
