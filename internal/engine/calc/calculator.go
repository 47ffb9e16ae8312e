package calc

import (
	"math"
	"sort"
	"time"

	"github.com/Anishcapital/Arbitrage/internal/engine/outcomes"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// handicapLineTolerance absorbs floating-point/display rounding when
// testing whether two handicap lines are numerically opposite.
const handicapLineTolerance = 0.01

// Findings below this margin are not reported at all; everything above
// is, so callers can audit near-misses. Positivity filtering is the
// caller's job.
const minReportedMargin = -100

// DefaultTwoWayPairs are the opposing-outcome pairs probed in simple
// two-way markets, expressed in post-normalization vocabulary.
func DefaultTwoWayPairs() [][2]string {
	return [][2]string{{"w1", "w2"}, {"yes", "no"}, {"1", "2"}, {"home", "away"}}
}

// DefaultThreeWaySets are the outcome triples probed in three-way
// markets.
func DefaultThreeWaySets() [][3]string {
	return [][3]string{{"w1", "x", "w2"}, {"1x", "12", "2x"}}
}

// sourceRef tags which of the two parsed markets supplies a leg.
type sourceRef int

const (
	fromA sourceRef = iota
	fromB
)

// threeWayAssignments enumerates which source supplies each of the
// three legs. Six assignments, not all eight: all-A and all-B are
// single-book combinations and carry no cross-book edge.
var threeWayAssignments = [][3]sourceRef{
	{fromA, fromB, fromB},
	{fromA, fromA, fromB},
	{fromB, fromA, fromA},
	{fromB, fromB, fromA},
	{fromB, fromA, fromB},
	{fromA, fromB, fromA},
}

// TwoWayMargin is the arbitrage margin for a two-outcome combination,
// in percent. Positive means combined implied probability below 1.
func TwoWayMargin(odd1, odd2 float64) float64 {
	return (1/(1/odd1+1/odd2) - 1) * 100
}

// ThreeWayMargin is the arbitrage margin for a three-outcome
// combination, in percent.
func ThreeWayMargin(odd1, odd2, odd3 float64) float64 {
	return (1/(1/odd1+1/odd2+1/odd3) - 1) * 100
}

// Calculator computes arbitrage findings for a matched market pair.
// Pairing tables are injected data so the policy is auditable and
// testable, not control flow.
type Calculator struct {
	extractor    *outcomes.Extractor
	twoWayPairs  [][2]string
	threeWaySets [][3]string
}

func NewCalculator(extractor *outcomes.Extractor) *Calculator {
	return &Calculator{
		extractor:    extractor,
		twoWayPairs:  DefaultTwoWayPairs(),
		threeWaySets: DefaultThreeWaySets(),
	}
}

// NewCalculatorWithTables builds a Calculator with explicit pairing
// tables (nil falls back to the defaults).
func NewCalculatorWithTables(extractor *outcomes.Extractor, pairs [][2]string, triples [][3]string) *Calculator {
	c := NewCalculator(extractor)
	if pairs != nil {
		c.twoWayPairs = pairs
	}
	if triples != nil {
		c.threeWaySets = triples
	}
	return c
}

// Compare parses both market bodies under the given family and returns
// every admissible finding with margin above the reporting floor.
func (c *Calculator) Compare(family models.Family, sourceLines, targetLines []string, sourceFile, targetFile string) []models.Finding {
	switch family {
	case models.FamilyHandicap:
		a := c.extractor.Handicap(sourceLines, sourceFile)
		b := c.extractor.Handicap(targetLines, targetFile)
		return c.Handicap(a, b)
	case models.FamilyTotal:
		a := c.extractor.Total(sourceLines, sourceFile)
		b := c.extractor.Total(targetLines, targetFile)
		return c.Total(a, b)
	case models.FamilyThreeWay:
		a := c.extractor.Simple(sourceLines, sourceFile)
		b := c.extractor.Simple(targetLines, targetFile)
		return c.ThreeWay(a, b)
	default:
		a := c.extractor.Simple(sourceLines, sourceFile)
		b := c.extractor.Simple(targetLines, targetFile)
		return c.TwoWay(a, b)
	}
}

// TwoWay probes every configured pair in both directions: either side
// may hold the stronger book for either outcome, so (x from A, y from
// B) and (y from A, x from B) are independent findings.
func (c *Calculator) TwoWay(a, b map[string]models.OutcomeRecord) []models.Finding {
	var findings []models.Finding
	for _, pair := range c.twoWayPairs {
		out1, out2 := pair[0], pair[1]
		if rec1, ok := a[out1]; ok {
			if rec2, ok := b[out2]; ok {
				findings = appendFinding(findings, models.FamilyTwoWay, TwoWayMargin(rec1.Odd, rec2.Odd), rec1, rec2)
			}
		}
		if rec1, ok := a[out2]; ok {
			if rec2, ok := b[out1]; ok {
				findings = appendFinding(findings, models.FamilyTwoWay, TwoWayMargin(rec1.Odd, rec2.Odd), rec1, rec2)
			}
		}
	}
	return findings
}

// ThreeWay probes every configured triple across the fixed source
// assignment table and emits a finding for each assignment where all
// three legs resolve.
func (c *Calculator) ThreeWay(a, b map[string]models.OutcomeRecord) []models.Finding {
	var findings []models.Finding
	for _, triple := range c.threeWaySets {
		for _, assignment := range threeWayAssignments {
			legs := make([]models.OutcomeRecord, 0, 3)
			for i, key := range triple {
				side := a
				if assignment[i] == fromB {
					side = b
				}
				rec, ok := side[key]
				if !ok {
					legs = nil
					break
				}
				legs = append(legs, rec)
			}
			if legs == nil {
				continue
			}
			margin := ThreeWayMargin(legs[0].Odd, legs[1].Odd, legs[2].Odd)
			findings = appendFinding(findings, models.FamilyThreeWay, margin, legs...)
		}
	}
	return findings
}

// Handicap pairs every A outcome with every B outcome whose team side
// differs and whose line is numerically opposite within tolerance.
func (c *Calculator) Handicap(a, b map[outcomes.HandicapKey]models.OutcomeRecord) []models.Finding {
	var findings []models.Finding
	for _, keyA := range sortedHandicapKeys(a) {
		for _, keyB := range sortedHandicapKeys(b) {
			if keyA.Side == keyB.Side {
				continue
			}
			if math.Abs(keyA.Line+keyB.Line) >= handicapLineTolerance {
				continue
			}
			recA, recB := a[keyA], b[keyB]
			findings = appendFinding(findings, models.FamilyHandicap, TwoWayMargin(recA.Odd, recB.Odd), recA, recB)
		}
	}
	return findings
}

// Total pairs each A outcome with the complementary direction at the
// exact same line in B. No line tolerance here: totals are quoted at
// discrete lines and 2.5 never hedges 2.25.
func (c *Calculator) Total(a, b map[outcomes.TotalKey]models.OutcomeRecord) []models.Finding {
	var findings []models.Finding
	for _, keyA := range sortedTotalKeys(a) {
		complement := outcomes.TotalKey{Direction: outcomes.DirUnder, Line: keyA.Line}
		if keyA.Direction == outcomes.DirUnder {
			complement.Direction = outcomes.DirOver
		}
		recB, ok := b[complement]
		if !ok {
			continue
		}
		recA := a[keyA]
		findings = appendFinding(findings, models.FamilyTotal, TwoWayMargin(recA.Odd, recB.Odd), recA, recB)
	}
	return findings
}

func appendFinding(findings []models.Finding, family models.Family, margin float64, recs ...models.OutcomeRecord) []models.Finding {
	if margin <= minReportedMargin {
		return findings
	}
	outcomes := make([]models.OutcomeRecord, len(recs))
	copy(outcomes, recs)
	return append(findings, models.Finding{
		Family:        family,
		Outcomes:      outcomes,
		MarginPercent: margin,
		FoundAt:       time.Now().UTC(),
	})
}

// Map iteration order is random; sort keys so findings come out in a
// stable order.
func sortedHandicapKeys(m map[outcomes.HandicapKey]models.OutcomeRecord) []outcomes.HandicapKey {
	keys := make([]outcomes.HandicapKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Side != keys[j].Side {
			return keys[i].Side < keys[j].Side
		}
		return keys[i].Line < keys[j].Line
	})
	return keys
}

func sortedTotalKeys(m map[outcomes.TotalKey]models.OutcomeRecord) []outcomes.TotalKey {
	keys := make([]outcomes.TotalKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Line != keys[j].Line {
			return keys[i].Line < keys[j].Line
		}
		return keys[i].Direction < keys[j].Direction
	})
	return keys
}
