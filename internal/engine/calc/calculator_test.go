package calc

import (
	"math"
	"testing"

	"github.com/Anishcapital/Arbitrage/internal/engine/outcomes"
	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

func newTestCalculator() *Calculator {
	return NewCalculator(outcomes.NewExtractor(outcomes.NewNormalizer(nil)))
}

func TestTwoWayMargin(t *testing.T) {
	tests := []struct {
		odd1, odd2 float64
		want       float64
	}{
		{2.0, 2.0, 0.0},       // break-even
		{2.10, 2.10, 4.7619},  // positive arbitrage
		{1.80, 1.80, -10.0},   // bookmaker edge, reported but non-actionable
	}
	for _, tt := range tests {
		got := TwoWayMargin(tt.odd1, tt.odd2)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("TwoWayMargin(%v, %v) = %v, want %v", tt.odd1, tt.odd2, got, tt.want)
		}
	}
}

func TestThreeWayMargin(t *testing.T) {
	got := ThreeWayMargin(3.0, 3.0, 3.0)
	if math.Abs(got) > 1e-9 {
		t.Errorf("ThreeWayMargin(3,3,3) = %v, want 0", got)
	}
}

func TestTwoWay_BothDirections(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	a := e.Simple([]string{"W1", "2.10", "W2", "1.90"}, "a.txt")
	b := e.Simple([]string{"1", "2.00", "2", "2.05"}, "b.txt")

	findings := c.TwoWay(a, b)
	// (w1 from A, w2 from B) and (w2 from A, w1 from B)
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(findings), findings)
	}
	want := TwoWayMargin(2.10, 2.05)
	if math.Abs(findings[0].MarginPercent-want) > 1e-9 {
		t.Errorf("first finding margin = %v, want %v", findings[0].MarginPercent, want)
	}
}

func TestTwoWay_OneSidedSource(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	a := e.Simple([]string{"W1", "2.10", "W2", "1.90"}, "a.txt")
	b := e.Simple([]string{"2", "2.05"}, "b.txt")

	findings := c.TwoWay(a, b)
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Outcomes[0].Original != "W1" || f.Outcomes[1].Original != "2" {
		t.Errorf("paired %q + %q, want W1 + 2", f.Outcomes[0].Original, f.Outcomes[1].Original)
	}
	want := TwoWayMargin(2.10, 2.05)
	if math.Abs(f.MarginPercent-want) > 1e-9 {
		t.Errorf("margin = %v, want %v", f.MarginPercent, want)
	}
}

func TestThreeWay_SixAssignments(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	// Both sources carry the full triple, so every assignment in the
	// table resolves.
	a := e.Simple([]string{"W1", "3.10", "X", "3.30", "W2", "2.90"}, "a.txt")
	b := e.Simple([]string{"1", "3.00", "Draw", "3.40", "2", "2.80"}, "b.txt")

	findings := c.ThreeWay(a, b)
	if len(findings) != 6 {
		t.Fatalf("got %d findings, want 6 (one per source assignment)", len(findings))
	}
	for _, f := range findings {
		if len(f.Outcomes) != 3 {
			t.Errorf("three-way finding with %d legs: %v", len(f.Outcomes), f)
		}
	}
}

func TestThreeWay_MissingLegSkipsAssignment(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	a := e.Simple([]string{"W1", "3.10", "X", "3.30", "W2", "2.90"}, "a.txt")
	b := e.Simple([]string{"1", "3.00"}, "b.txt") // no draw, no w2 in B

	findings := c.ThreeWay(a, b)
	// Only assignments drawing legs 2 and 3 from A can resolve:
	// (B,A,A) and the rest all need b["x"] or b["w2"].
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Outcomes[0].Original != "1" {
		t.Errorf("leg 1 should come from B, got %q", f.Outcomes[0].Original)
	}
}

func TestHandicap_PairingSymmetric(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	a := e.Handicap([]string{"Handicap 1 (+1.5)", "2.05"}, "a.txt")
	b := e.Handicap([]string{"Handicap 2 (-1.5)", "2.02"}, "b.txt")

	ab := c.Handicap(a, b)
	ba := c.Handicap(b, a)
	if len(ab) != 1 || len(ba) != 1 {
		t.Fatalf("pairing must succeed both ways: ab=%d ba=%d", len(ab), len(ba))
	}
	if math.Abs(ab[0].MarginPercent-ba[0].MarginPercent) > 1e-9 {
		t.Errorf("margins differ by argument order: %v vs %v", ab[0].MarginPercent, ba[0].MarginPercent)
	}
}

func TestHandicap_RejectsMismatchedLines(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))

	// +1.5 against -1.4: |sum| = 0.1 >= tolerance, must not pair.
	a := e.Handicap([]string{"Handicap 1 (+1.5)", "2.05"}, "a.txt")
	b := e.Handicap([]string{"Handicap 2 (-1.4)", "2.02"}, "b.txt")
	if findings := c.Handicap(a, b); len(findings) != 0 {
		t.Errorf("mismatched lines must not pair: %v", findings)
	}

	// Same side, opposite lines: must not pair either.
	a = e.Handicap([]string{"Handicap 1 (+1.5)", "2.05"}, "a.txt")
	b = e.Handicap([]string{"Handicap 1 (-1.5)", "2.02"}, "b.txt")
	if findings := c.Handicap(a, b); len(findings) != 0 {
		t.Errorf("same-side lines must not pair: %v", findings)
	}
}

func TestHandicap_CrossPairsAllQualifying(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))
	a := e.Handicap([]string{"Handicap 1 (+1.5)", "2.05", "Handicap 1 (-0.5)", "1.80"}, "a.txt")
	b := e.Handicap([]string{"Handicap 2 (-1.5)", "2.02", "Handicap 2 (+0.5)", "2.10"}, "b.txt")

	findings := c.Handicap(a, b)
	if len(findings) != 2 {
		t.Fatalf("got %d findings, want 2: %v", len(findings), findings)
	}
}

func TestTotal_ExactLineOnly(t *testing.T) {
	c := newTestCalculator()
	e := outcomes.NewExtractor(outcomes.NewNormalizer(nil))

	a := e.Total([]string{"Total Over (2.5)", "2.05"}, "a.txt")
	b := e.Total([]string{"Total Under (2.5)", "2.02"}, "b.txt")
	findings := c.Total(a, b)
	if len(findings) != 1 {
		t.Fatalf("(over 2.5, under 2.5) must pair: %v", findings)
	}

	b = e.Total([]string{"Total Under (2.25)", "2.02"}, "b.txt")
	if findings := c.Total(a, b); len(findings) != 0 {
		t.Errorf("(over 2.5, under 2.25) must not pair: %v", findings)
	}

	b = e.Total([]string{"Total Over (2.5)", "2.02"}, "b.txt")
	if findings := c.Total(a, b); len(findings) != 0 {
		t.Errorf("same direction must not pair: %v", findings)
	}
}

func TestCompare_DispatchesByFamily(t *testing.T) {
	c := newTestCalculator()
	findings := c.Compare(models.FamilyTotal,
		[]string{"Total Over (2.5)", "2.10"},
		[]string{"Total Under (2.5)", "2.10"},
		"a.txt", "b.txt")
	if len(findings) != 1 || findings[0].Family != models.FamilyTotal {
		t.Fatalf("expected one total finding, got %v", findings)
	}
}
