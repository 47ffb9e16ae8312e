package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Family identifies the market family a finding belongs to.
type Family string

const (
	FamilyTwoWay   Family = "2way"
	FamilyThreeWay Family = "3way"
	FamilyHandicap Family = "handicap"
	FamilyTotal    Family = "total"
)

// Label returns the human-readable family name used in report lines.
func (f Family) Label() string {
	switch f {
	case FamilyTwoWay:
		return "2-Way"
	case FamilyThreeWay:
		return "3-Way"
	case FamilyHandicap:
		return "Handicap"
	case FamilyTotal:
		return "Total"
	}
	return string(f)
}

// OutcomeRecord is one parsed outcome as scraped: the pre-normalization
// label for display, the decimal odds, and the market file it came from.
// Immutable once built.
type OutcomeRecord struct {
	Original string  `json:"original"`
	Odd      float64 `json:"odd"`
	File     string  `json:"file"`
}

// Finding is one arbitrage combination across the two sources.
// MarginPercent > 0 means a guaranteed-profit opportunity; negative
// margins down to -100 are still reported so callers can audit
// near-misses.
type Finding struct {
	Family        Family          `json:"family"`
	Outcomes      []OutcomeRecord `json:"outcomes"`
	MarginPercent float64         `json:"margin_percent"`
	FoundAt       time.Time       `json:"found_at"`
}

// String renders the finding as a report line:
// "<Family>: <label1> (<odds1>) + <label2> (<odds2>) [+ <label3> (<odds3>)] = <margin>%"
func (f Finding) String() string {
	parts := make([]string, 0, len(f.Outcomes))
	for _, o := range f.Outcomes {
		parts = append(parts, fmt.Sprintf("%s (%s)", o.Original, formatOdd(o.Odd)))
	}
	return fmt.Sprintf("%s: %s = %.2f%%", f.Family.Label(), strings.Join(parts, " + "), f.MarginPercent)
}

func formatOdd(odd float64) string {
	return strconv.FormatFloat(odd, 'f', -1, 64)
}
