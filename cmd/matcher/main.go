package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Anishcapital/Arbitrage/internal/engine/matching"
	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
	"github.com/Anishcapital/Arbitrage/internal/pkg/logging"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file (can be set via CONFIG_PATH env var)")
	sourceRoot := flag.String("source", "", "Override source bookmaker root")
	targetRoot := flag.String("target", "", "Override target bookmaker root")
	manifestPath := flag.String("manifest", "", "Override manifest output path")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("matcher: failed to load config: %v", err)
	}
	if *sourceRoot != "" {
		cfg.Scanner.SourceRoot = *sourceRoot
	}
	if *targetRoot != "" {
		cfg.Scanner.TargetRoot = *targetRoot
	}
	if *manifestPath != "" {
		cfg.Scanner.ManifestPath = *manifestPath
	}

	logging.Setup("matcher")

	events := matching.NewEventMatcher(cfg.Scanner.EventThreshold)
	markets := matching.NewMarketMatcher(nil)

	manifest, err := matching.BuildManifest(cfg.Scanner.SourceRoot, cfg.Scanner.TargetRoot, events, markets)
	if err != nil {
		log.Fatalf("matcher: %v", err)
	}

	if err := models.SaveManifest(cfg.Scanner.ManifestPath, manifest); err != nil {
		log.Fatalf("matcher: %v", err)
	}

	totalMarkets := 0
	for _, ev := range manifest {
		totalMarkets += len(ev.Markets)
	}
	slog.Info("matching complete",
		"manifest", cfg.Scanner.ManifestPath,
		"events_matched", len(manifest),
		"markets_matched", totalMarkets)
}
