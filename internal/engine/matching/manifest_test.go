package matching

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBuildManifest(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "melbet")
	tgt := filepath.Join(root, "mostbet")

	writeFile(t, filepath.Join(src, "arsenal vs chelsea 123", "1x2.txt"), "W1\n2.10\n")
	writeFile(t, filepath.Join(src, "arsenal vs chelsea 123", "correct score.txt"), "1:0\n7.50\n")
	writeFile(t, filepath.Join(src, "some obscure fixture", "winner.txt"), "W1\n1.50\n")
	writeFile(t, filepath.Join(tgt, "chelsea vs arsenal", "winner.txt"), "1\n2.05\n")

	manifest, err := BuildManifest(src, tgt, NewEventMatcher(85), NewMarketMatcher(nil))
	if err != nil {
		t.Fatalf("BuildManifest: %v", err)
	}
	if len(manifest) != 1 {
		t.Fatalf("got %d event pairs, want 1: %+v", len(manifest), manifest)
	}

	ev := manifest[0]
	if ev.SourceEvent != "arsenal vs chelsea 123" || ev.TargetEvent != "chelsea vs arsenal" {
		t.Errorf("event pair = %q <=> %q", ev.SourceEvent, ev.TargetEvent)
	}
	if len(ev.Markets) != 1 {
		t.Fatalf("got %d market pairs, want 1 (correct score has no counterpart): %+v", len(ev.Markets), ev.Markets)
	}
	mk := ev.Markets[0]
	if mk.SourceMarket != "1x2.txt" || mk.TargetMarket != "winner.txt" {
		t.Errorf("market pair = %q <=> %q", mk.SourceMarket, mk.TargetMarket)
	}
	if _, err := os.Stat(mk.SourcePath); err != nil {
		t.Errorf("source path not resolved: %v", err)
	}
	if _, err := os.Stat(mk.TargetPath); err != nil {
		t.Errorf("target path not resolved: %v", err)
	}
}

func TestBuildManifest_NoSourceEvents(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "melbet")
	tgt := filepath.Join(root, "mostbet")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(tgt, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := BuildManifest(src, tgt, NewEventMatcher(85), NewMarketMatcher(nil)); err == nil {
		t.Fatal("expected error when no source events exist")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matched_data.json")
	manifest := []models.EventPair{{
		SourceEvent: "a vs b",
		TargetEvent: "b vs a",
		Markets: []models.MarketPair{{
			SourceMarket: "1x2.txt",
			TargetMarket: "winner.txt",
			SourcePath:   "/data/melbet/a vs b/1x2.txt",
			TargetPath:   "/data/mostbet/b vs a/winner.txt",
		}},
	}}

	if err := models.SaveManifest(path, manifest); err != nil {
		t.Fatalf("SaveManifest: %v", err)
	}
	loaded, err := models.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(loaded) != 1 || len(loaded[0].Markets) != 1 {
		t.Fatalf("round trip lost entries: %+v", loaded)
	}
	if loaded[0].Markets[0] != manifest[0].Markets[0] {
		t.Errorf("market pair changed in round trip: %+v", loaded[0].Markets[0])
	}
}
