package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"campusqa/internal/config"
	"campusqa/internal/format"
	"campusqa/internal/service"
	"campusqa/internal/tui"
	"campusqa/internal/vectorstore"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		lang    string
	)
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.StringVar(&lang, "lang", "en", "Reply language code")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal; keep logging silent.
	svc, err := service.FromConfig(cfg, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to assemble service: %v\n", err)
		os.Exit(1)
	}

	if err := svc.Load(context.Background()); err != nil {
		if errors.Is(err, vectorstore.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "no index found; run campusqa-index first")
		} else {
			fmt.Fprintf(os.Stderr, "failed to load index: %v\n", err)
		}
		os.Exit(1)
	}

	greeting := format.NewFormatter(cfg.Facts).Greeting()
	m := tui.New(svc, lang, greeting)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
		os.Exit(1)
	}
}
