package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/Anishcapital/Arbitrage/internal/engine/calc"
	"github.com/Anishcapital/Arbitrage/internal/engine/outcomes"
	"github.com/Anishcapital/Arbitrage/internal/engine/pipeline"
	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
	"github.com/Anishcapital/Arbitrage/internal/pkg/logging"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
	"github.com/Anishcapital/Arbitrage/internal/pkg/storage"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file (can be set via CONFIG_PATH env var)")
	manifestPath := flag.String("manifest", "", "Override manifest path")
	reportPath := flag.String("report", "", "Override report output path")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("calculator: failed to load config: %v", err)
	}
	if *manifestPath != "" {
		cfg.Scanner.ManifestPath = *manifestPath
	}
	if *reportPath != "" {
		cfg.Scanner.ReportPath = *reportPath
	}

	logging.Setup("calculator")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manifest, err := models.LoadManifest(cfg.Scanner.ManifestPath)
	if err != nil {
		log.Fatalf("calculator: %v", err)
	}
	slog.Info("manifest loaded", "path", cfg.Scanner.ManifestPath, "events", len(manifest))

	normalizer := outcomes.NewNormalizer(nil)
	extractor := outcomes.NewExtractor(normalizer)
	calculator := calc.NewCalculator(extractor)
	pipe := pipeline.New(calculator, cfg.Scanner.Concurrency)

	report, err := pipe.Run(ctx, manifest)
	if err != nil {
		log.Fatalf("calculator: %v", err)
	}

	if err := writeReport(cfg.Scanner.ReportPath, report); err != nil {
		log.Fatalf("calculator: %v", err)
	}

	archiveFindings(ctx, cfg, report)

	printSummary(report)
	slog.Info("calculation complete",
		"report", cfg.Scanner.ReportPath,
		"events", len(report.Events),
		"markets", report.ComparedMarkets,
		"findings", report.TotalFindings,
		"positive", report.PositiveFindings)
	// Absence of arbitrage is not a failure: always exit 0.
}

func writeReport(path string, report *pipeline.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return report.Render(f)
}

// archiveFindings stores findings in PostgreSQL when a DSN is
// configured. No DSN means no archive; a storage failure is logged but
// never fails the run.
func archiveFindings(ctx context.Context, cfg *config.Config, report *pipeline.Report) {
	dsn := cfg.Postgres.DSN
	if envDSN := os.Getenv("POSTGRES_DSN"); envDSN != "" {
		dsn = envDSN
	}
	if dsn == "" {
		return
	}

	pgConfig := cfg.Postgres
	pgConfig.DSN = dsn
	store, err := storage.NewPostgresFindingStorage(&pgConfig)
	if err != nil {
		slog.Warn("findings archive unavailable", "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("error closing findings archive", "error", err)
		}
	}()

	saveCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, ev := range report.Events {
		var findings []models.Finding
		for _, mk := range ev.Markets {
			findings = append(findings, mk.Findings...)
		}
		if err := store.SaveFindings(saveCtx, ev.SourceEvent, ev.TargetEvent, findings); err != nil {
			slog.Warn("failed to archive findings", "event", ev.SourceEvent, "error", err)
		}
	}
}

func printSummary(report *pipeline.Report) {
	type familyStats struct {
		findings int
		positive int
		best     float64
		hasBest  bool
	}
	stats := map[models.Family]*familyStats{}
	for _, ev := range report.Events {
		for _, mk := range ev.Markets {
			for _, f := range mk.Findings {
				s := stats[f.Family]
				if s == nil {
					s = &familyStats{}
					stats[f.Family] = s
				}
				s.findings++
				if f.MarginPercent > 0 {
					s.positive++
				}
				if !s.hasBest || f.MarginPercent > s.best {
					s.best = f.MarginPercent
					s.hasBest = true
				}
			}
		}
	}

	fmt.Printf("\n%d events, %d markets compared, %d positive opportunities\n",
		len(report.Events), report.ComparedMarkets, report.PositiveFindings)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Family", "Findings", "Positive", "Best margin")
	for _, family := range []models.Family{models.FamilyTwoWay, models.FamilyThreeWay, models.FamilyHandicap, models.FamilyTotal} {
		s := stats[family]
		if s == nil {
			continue
		}
		table.Append(
			family.Label(),
			fmt.Sprintf("%d", s.findings),
			fmt.Sprintf("%d", s.positive),
			fmt.Sprintf("%.2f%%", s.best),
		)
	}
	table.Render()
}
