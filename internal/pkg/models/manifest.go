package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// MarketPair is one matched market file pair inside a matched event.
// Paths are resolved at match time so the calculation stage can run
// without re-discovering the source roots.
type MarketPair struct {
	SourceMarket string `json:"source_market_id"`
	TargetMarket string `json:"target_market_id"`
	SourcePath   string `json:"source_path"`
	TargetPath   string `json:"target_path"`
}

// EventPair is one matched event with its matched market files.
type EventPair struct {
	SourceEvent string       `json:"source_event_id"`
	TargetEvent string       `json:"target_event_id"`
	Markets     []MarketPair `json:"markets"`
}

// SaveManifest writes the matched events to path as indented JSON.
// The manifest is the only artifact that crosses the stage boundary
// between matching and calculation.
func SaveManifest(path string, events []EventPair) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest produced by SaveManifest.
func LoadManifest(path string) ([]EventPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var events []EventPair
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return events, nil
}
