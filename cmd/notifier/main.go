package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Anishcapital/Arbitrage/internal/notifier"
	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
	"github.com/Anishcapital/Arbitrage/internal/pkg/logging"
)

const defaultConfigPath = "configs/scanner.yaml"

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", configPath, "Path to config file (can be set via CONFIG_PATH env var)")
	reportPath := flag.String("report", "", "Override report path")
	positive := flag.Bool("positive", false, "Send the positive findings from the report")
	document := flag.Bool("document", false, "Send the raw report file as a document")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("notifier: failed to load config: %v", err)
	}
	if *reportPath != "" {
		cfg.Scanner.ReportPath = *reportPath
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
		slog.Info("using Telegram bot token from environment")
	}
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.Telegram.ChatID = chatID
		}
	}

	logging.Setup("notifier")

	tg, err := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}
	defer tg.Stop()

	ctx := context.Background()

	switch {
	case *document:
		if err := tg.SendReportDocument(ctx, cfg.Scanner.ReportPath, "Arbitrage run report"); err != nil {
			log.Fatalf("notifier: %v", err)
		}
	case *positive:
		f, err := os.Open(cfg.Scanner.ReportPath)
		if err != nil {
			log.Fatalf("notifier: failed to open report: %v", err)
		}
		lines, err := notifier.PositiveLines(f)
		f.Close()
		if err != nil {
			log.Fatalf("notifier: failed to read report: %v", err)
		}
		slog.Info("positive findings in report", "count", len(lines))
		if err := tg.SendFindingLines(ctx, lines); err != nil {
			log.Fatalf("notifier: %v", err)
		}
	case flag.NArg() > 0:
		if err := tg.QueueAlert(ctx, strings.Join(flag.Args(), " ")); err != nil {
			log.Fatalf("notifier: %v", err)
		}
	default:
		if err := tg.QueueAlert(ctx, "Test alert from arbitrage scanner"); err != nil {
			log.Fatalf("notifier: %v", err)
		}
	}
}
