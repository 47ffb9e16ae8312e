package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/Anishcapital/Arbitrage/internal/pkg/config"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// FindingStorage archives calculated findings.
type FindingStorage interface {
	SaveFindings(ctx context.Context, sourceEvent, targetEvent string, findings []models.Finding) error
	Close() error
}

// Ensure PostgresFindingStorage implements FindingStorage
var _ FindingStorage = (*PostgresFindingStorage)(nil)

// PostgresFindingStorage stores findings in PostgreSQL so historical
// opportunities survive the run.
type PostgresFindingStorage struct {
	db *sql.DB
}

// NewPostgresFindingStorage opens the connection and creates the
// schema if needed.
func NewPostgresFindingStorage(cfg *config.PostgresConfig) (*PostgresFindingStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	storage := &PostgresFindingStorage{db: db}
	if err := storage.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("postgres finding storage initialized")
	return storage, nil
}

func (s *PostgresFindingStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS arb_findings (
		id SERIAL PRIMARY KEY,
		source_event VARCHAR(500) NOT NULL,
		target_event VARCHAR(500) NOT NULL,
		family VARCHAR(50) NOT NULL,
		outcomes JSONB NOT NULL,
		margin_percent DECIMAL(10, 4) NOT NULL,
		found_at TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_arb_findings_margin ON arb_findings(margin_percent DESC);
	CREATE INDEX IF NOT EXISTS idx_arb_findings_found_at ON arb_findings(found_at DESC);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveFindings inserts one row per finding inside a transaction.
func (s *PostgresFindingStorage) SaveFindings(ctx context.Context, sourceEvent, targetEvent string, findings []models.Finding) error {
	if len(findings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO arb_findings (source_event, target_event, family, outcomes, margin_percent, found_at)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range findings {
		outcomes, err := json.Marshal(f.Outcomes)
		if err != nil {
			return fmt.Errorf("failed to marshal outcomes: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, sourceEvent, targetEvent, string(f.Family), outcomes, f.MarginPercent, f.FoundAt); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit findings: %w", err)
	}
	return nil
}

func (s *PostgresFindingStorage) Close() error {
	return s.db.Close()
}
