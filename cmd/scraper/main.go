package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
	"github.com/Anishcapital/Arbitrage/internal/pkg/logging"
	"github.com/Anishcapital/Arbitrage/internal/scraper"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file (can be set via CONFIG_PATH env var)")
	linksFile := flag.String("links", "", "Override links file (one event URL per line)")
	outputRoot := flag.String("out", "", "Override output root for captured events")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("scraper: failed to load config: %v", err)
	}
	if *linksFile != "" {
		cfg.Scraper.LinksFile = *linksFile
	}
	if *outputRoot != "" {
		cfg.Scraper.OutputRoot = *outputRoot
	}

	logging.Setup("scraper")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scraper.New(cfg.Scraper)
	if err := s.Run(ctx); err != nil {
		log.Fatalf("scraper: %v", err)
	}
	slog.Info("scrape complete", "output_root", cfg.Scraper.OutputRoot)
}
