package matching

import "testing"

func TestWordSet_TermMappingAndNoise(t *testing.T) {
	m := NewMarketMatcher(nil)
	tests := []struct {
		a, b string
		same bool
	}{
		// 1x2 and winner are the same market under the term table.
		{"1x2.txt", "winner.txt", true},
		// word order is irrelevant, set semantics
		{"home_team_total.txt", "total team home.txt", true},
		// "total 1" maps onto "home team total"
		{"total_1.txt", "home team total.txt", true},
		{"team 1 win.txt", "home_team_win.txt", true},
		// "(incl ot)" is noise on one side only
		{"winner (incl ot).txt", "1x2.txt", true},
		{"shots_on_target.txt", "shots on goal.txt", true},
		// one differing token makes the sets unequal
		{"home team total.txt", "away team total.txt", false},
		{"winner.txt", "winner 2nd half.txt", false},
	}
	for _, tt := range tests {
		got := wordSetsEqual(m.WordSet(tt.a), m.WordSet(tt.b))
		if got != tt.same {
			t.Errorf("WordSet(%q) == WordSet(%q): got %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestMarketMatcher_FirstFitConsumesTargets(t *testing.T) {
	m := NewMarketMatcher(nil)
	mapping := m.Match(
		[]string{"winner.txt", "1x2.txt"},
		[]string{"winner.txt"},
	)
	// Both sources normalize to {winner}, but the single target can be
	// consumed only once.
	if len(mapping) != 1 {
		t.Fatalf("got %d bindings, want 1: %v", len(mapping), mapping)
	}
	if mapping["winner.txt"] != "winner.txt" {
		t.Errorf("first source should take the target, got %v", mapping)
	}
}

func TestMarketMatcher_UnmatchedLeftOut(t *testing.T) {
	m := NewMarketMatcher(nil)
	mapping := m.Match(
		[]string{"correct score.txt"},
		[]string{"winner.txt"},
	)
	if len(mapping) != 0 {
		t.Errorf("expected no bindings, got %v", mapping)
	}
}

func TestMarketMatcher_InjectedTable(t *testing.T) {
	m := NewMarketMatcher([]TermMapping{{"moneyline", "winner"}})
	mapping := m.Match([]string{"moneyline.txt"}, []string{"winner.txt"})
	if mapping["moneyline.txt"] != "winner.txt" {
		t.Errorf("injected term table not applied: %v", mapping)
	}
}
