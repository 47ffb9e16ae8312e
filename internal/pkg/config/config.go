package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scanner  ScannerConfig  `yaml:"scanner"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Telegram TelegramConfig `yaml:"telegram"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type ScannerConfig struct {
	SourceRoot     string `yaml:"source_root"`
	TargetRoot     string `yaml:"target_root"`
	ManifestPath   string `yaml:"manifest_path"`
	ReportPath     string `yaml:"report_path"`
	EventThreshold int    `yaml:"event_threshold"`
	Concurrency    int    `yaml:"concurrency"` // parallel event comparisons, 0 = NumCPU
}

type ScraperConfig struct {
	LinksFile       string        `yaml:"links_file"`
	OutputRoot      string        `yaml:"output_root"`
	UserAgent       string        `yaml:"user_agent"`
	PageTimeout     time.Duration `yaml:"page_timeout"`
	SettleDelay     time.Duration `yaml:"settle_delay"`     // wait after navigation before reading markets
	GroupSelector   string        `yaml:"group_selector"`   // CSS selector of one market block
	HeadingSelector string        `yaml:"heading_selector"` // CSS selector of the market name inside a block
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Scanner.ManifestPath == "" {
		c.Scanner.ManifestPath = "matched_data.json"
	}
	if c.Scanner.ReportPath == "" {
		c.Scanner.ReportPath = "output.txt"
	}
	if c.Scanner.EventThreshold == 0 {
		c.Scanner.EventThreshold = 85
	}
	if c.Scraper.PageTimeout == 0 {
		c.Scraper.PageTimeout = 60 * time.Second
	}
	if c.Scraper.SettleDelay == 0 {
		c.Scraper.SettleDelay = 3 * time.Second
	}
}
