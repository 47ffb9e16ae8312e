package matching

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// ListEventDirs returns the event folder names directly under root, in
// name order.
func ListEventDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source root %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	return dirs, nil
}

// ListMarketFiles returns the .txt market file names in an event
// folder, in name order.
func ListMarketFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read event folder %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// BuildManifest discovers event folders under the two source roots,
// matches events then markets, and returns the ordered manifest with
// resolved file paths. It fails only when no source events exist at
// all; an event whose folders can't be listed is logged and skipped.
func BuildManifest(sourceRoot, targetRoot string, events *EventMatcher, markets *MarketMatcher) ([]models.EventPair, error) {
	sourceEvents, err := ListEventDirs(sourceRoot)
	if err != nil {
		return nil, err
	}
	if len(sourceEvents) == 0 {
		return nil, fmt.Errorf("no source events found under %s", sourceRoot)
	}
	targetEvents, err := ListEventDirs(targetRoot)
	if err != nil {
		return nil, err
	}

	eventMapping := events.Match(sourceEvents, targetEvents)
	slog.Info("matched events", "source_events", len(sourceEvents), "target_events", len(targetEvents), "matched", len(eventMapping))

	var manifest []models.EventPair
	for _, srcEvent := range sourceEvents {
		tgtEvent, ok := eventMapping[srcEvent]
		if !ok {
			continue
		}

		srcDir := filepath.Join(sourceRoot, srcEvent)
		tgtDir := filepath.Join(targetRoot, tgtEvent)

		srcFiles, err := ListMarketFiles(srcDir)
		if err != nil {
			slog.Warn("skipping event, unreadable source folder", "event", srcEvent, "error", err)
			continue
		}
		tgtFiles, err := ListMarketFiles(tgtDir)
		if err != nil {
			slog.Warn("skipping event, unreadable target folder", "event", tgtEvent, "error", err)
			continue
		}

		fileMapping := markets.Match(srcFiles, tgtFiles)
		slog.Info("matched markets", "source_event", srcEvent, "target_event", tgtEvent, "markets", len(fileMapping))

		pair := models.EventPair{
			SourceEvent: srcEvent,
			TargetEvent: tgtEvent,
		}
		for _, srcFile := range srcFiles {
			tgtFile, ok := fileMapping[srcFile]
			if !ok {
				continue
			}
			pair.Markets = append(pair.Markets, models.MarketPair{
				SourceMarket: srcFile,
				TargetMarket: tgtFile,
				SourcePath:   filepath.Join(srcDir, srcFile),
				TargetPath:   filepath.Join(tgtDir, tgtFile),
			})
		}
		manifest = append(manifest, pair)
	}
	return manifest, nil
}
