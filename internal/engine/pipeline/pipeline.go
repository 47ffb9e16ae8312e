package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Anishcapital/Arbitrage/internal/engine/calc"
	"github.com/Anishcapital/Arbitrage/internal/engine/outcomes"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// MarketReport is the outcome of comparing one matched market pair.
type MarketReport struct {
	SourceMarket string
	TargetMarket string
	Family       models.Family
	Findings     []models.Finding
	Skipped      string // non-empty when the comparison was aborted (unreadable file, bad entry)
}

// EventReport groups the market reports of one matched event pair.
type EventReport struct {
	SourceEvent string
	TargetEvent string
	Markets     []MarketReport
}

// Report aggregates a full calculation run.
type Report struct {
	Events           []EventReport
	ComparedMarkets  int
	TotalFindings    int
	PositiveFindings int
}

// AllFindings flattens the report into one finding list, in report
// order.
func (r *Report) AllFindings() []models.Finding {
	var out []models.Finding
	for _, ev := range r.Events {
		for _, mk := range ev.Markets {
			out = append(out, mk.Findings...)
		}
	}
	return out
}

// Pipeline drives the calculator across every entry of a manifest.
// Event pairs are independent of each other, so they are compared
// concurrently; results land in a positional slice to keep report
// order deterministic.
type Pipeline struct {
	calculator  *calc.Calculator
	concurrency int
}

func New(calculator *calc.Calculator, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Pipeline{calculator: calculator, concurrency: concurrency}
}

// Run compares every market pair in the manifest and aggregates the
// findings. A failed comparison skips that market only, never the run.
func (p *Pipeline) Run(ctx context.Context, manifest []models.EventPair) (*Report, error) {
	results := make([]EventReport, len(manifest))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i := range manifest {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.compareEvent(manifest[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Events: results}
	for _, ev := range results {
		for _, mk := range ev.Markets {
			if mk.Skipped != "" {
				continue
			}
			report.ComparedMarkets++
			report.TotalFindings += len(mk.Findings)
			for _, f := range mk.Findings {
				if f.MarginPercent > 0 {
					report.PositiveFindings++
				}
			}
		}
	}
	return report, nil
}

func (p *Pipeline) compareEvent(pair models.EventPair) EventReport {
	ev := EventReport{SourceEvent: pair.SourceEvent, TargetEvent: pair.TargetEvent}
	for _, market := range pair.Markets {
		ev.Markets = append(ev.Markets, p.compareMarket(market))
	}
	return ev
}

func (p *Pipeline) compareMarket(market models.MarketPair) MarketReport {
	mk := MarketReport{
		SourceMarket: market.SourceMarket,
		TargetMarket: market.TargetMarket,
		Family:       calc.DetectFamily(market.SourceMarket),
	}

	if market.SourcePath == "" || market.TargetPath == "" {
		mk.Skipped = "manifest entry has no resolved paths"
		slog.Warn("skipping market", "source", market.SourceMarket, "reason", mk.Skipped)
		return mk
	}

	sourceLines, err := readMarketFile(market.SourcePath)
	if err != nil {
		mk.Skipped = err.Error()
		slog.Warn("skipping market", "source", market.SourceMarket, "error", err)
		return mk
	}
	targetLines, err := readMarketFile(market.TargetPath)
	if err != nil {
		mk.Skipped = err.Error()
		slog.Warn("skipping market", "target", market.TargetMarket, "error", err)
		return mk
	}

	mk.Findings = p.calculator.Compare(mk.Family, sourceLines, targetLines, market.SourceMarket, market.TargetMarket)
	return mk
}

func readMarketFile(path string) ([]string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read market file: %w", err)
	}
	return outcomes.SplitLines(string(body)), nil
}

// Render writes the human-readable run report: one section per event,
// one block per market, finding lines in the documented
// "<Family>: ... = <margin>%" shape.
func (r *Report) Render(w io.Writer) error {
	for _, ev := range r.Events {
		fmt.Fprintln(w, strings.Repeat("=", 60))
		fmt.Fprintf(w, "Event: %s <=> %s\n", ev.SourceEvent, ev.TargetEvent)
		fmt.Fprintln(w, strings.Repeat("=", 60))

		eventHasFindings := false
		for _, mk := range ev.Markets {
			fmt.Fprintf(w, "\nMarket: %s <=> %s (Type: %s)\n", mk.SourceMarket, mk.TargetMarket, mk.Family)
			if mk.Skipped != "" {
				fmt.Fprintf(w, "  Skipped: %s\n", mk.Skipped)
				continue
			}
			if len(mk.Findings) == 0 {
				fmt.Fprintln(w, "  No arbitrage opportunities found")
				continue
			}
			eventHasFindings = true
			for _, f := range mk.Findings {
				fmt.Fprintf(w, "  %s\n", f)
			}
		}
		if !eventHasFindings {
			fmt.Fprintln(w, "\nNo arbitrage found for this event")
		}
		fmt.Fprintln(w)
	}
	return nil
}
