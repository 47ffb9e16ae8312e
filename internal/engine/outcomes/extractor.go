package outcomes

import (
	"strconv"
	"strings"

	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// Extractor turns a flat label/odds line sequence into a canonical
// outcome mapping for one market family.
type Extractor struct {
	norm *Normalizer
}

func NewExtractor(norm *Normalizer) *Extractor {
	return &Extractor{norm: norm}
}

// Simple parses lines into a simple-market outcome mapping keyed by
// canonical label.
func (e *Extractor) Simple(lines []string, file string) map[string]models.OutcomeRecord {
	data := make(map[string]models.OutcomeRecord)
	scanPairs(lines, func(label string, odd float64) {
		key := e.norm.Simple(label)
		data[key] = models.OutcomeRecord{Original: label, Odd: odd, File: file}
	})
	return data
}

// Handicap parses lines into a handicap outcome mapping keyed by
// (side, line). Labels that don't yield a handicap key are skipped.
func (e *Extractor) Handicap(lines []string, file string) map[HandicapKey]models.OutcomeRecord {
	data := make(map[HandicapKey]models.OutcomeRecord)
	scanPairs(lines, func(label string, odd float64) {
		key, ok := e.norm.Handicap(label)
		if !ok {
			return
		}
		data[key] = models.OutcomeRecord{Original: label, Odd: odd, File: file}
	})
	return data
}

// Total parses lines into a total outcome mapping keyed by
// (direction, line).
func (e *Extractor) Total(lines []string, file string) map[TotalKey]models.OutcomeRecord {
	data := make(map[TotalKey]models.OutcomeRecord)
	scanPairs(lines, func(label string, odd float64) {
		key, ok := e.norm.Total(label)
		if !ok {
			return
		}
		data[key] = models.OutcomeRecord{Original: label, Odd: odd, File: file}
	})
	return data
}

// scanPairs walks lines as alternating label/odds pairs. When the
// second line of a pair doesn't parse as a number the cursor advances
// by one line only: scraped text interleaves stray lines (section
// headers, promo text) between true pairs, and resynchronizing one
// line at a time recovers the valid pairs that follow. A trailing
// unpaired line is never processed.
func scanPairs(lines []string, emit func(label string, odd float64)) {
	i := 0
	for i < len(lines)-1 {
		odd, err := parseOdd(lines[i+1])
		if err != nil {
			i++
			continue
		}
		emit(lines[i], odd)
		i += 2
	}
}

// parseOdd parses a scraped odds string, accepting comma as the
// decimal separator.
func parseOdd(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// SplitLines splits a market file body into trimmed non-blank lines,
// the form scanPairs expects.
func SplitLines(body string) []string {
	var out []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
