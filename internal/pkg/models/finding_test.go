package models

import (
	"strings"
	"testing"
)

func TestFindingString(t *testing.T) {
	f := Finding{
		Family: FamilyTwoWay,
		Outcomes: []OutcomeRecord{
			{Original: "W1", Odd: 2.1, File: "a.txt"},
			{Original: "2", Odd: 2.05, File: "b.txt"},
		},
		MarginPercent: 3.734905,
	}
	got := f.String()
	want := "2-Way: W1 (2.1) + 2 (2.05) = 3.73%"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFindingString_ThreeLegs(t *testing.T) {
	f := Finding{
		Family: FamilyThreeWay,
		Outcomes: []OutcomeRecord{
			{Original: "W1", Odd: 3.1},
			{Original: "Draw", Odd: 3.4},
			{Original: "W2", Odd: 2.8},
		},
		MarginPercent: -1.5,
	}
	got := f.String()
	if !strings.HasPrefix(got, "3-Way: ") {
		t.Errorf("String() = %q, want 3-Way prefix", got)
	}
	if strings.Count(got, " + ") != 2 {
		t.Errorf("String() = %q, want three legs", got)
	}
	if !strings.HasSuffix(got, "= -1.50%") {
		t.Errorf("String() = %q, want -1.50%% suffix", got)
	}
}

func TestFamilyLabel(t *testing.T) {
	tests := []struct {
		family Family
		want   string
	}{
		{FamilyTwoWay, "2-Way"},
		{FamilyThreeWay, "3-Way"},
		{FamilyHandicap, "Handicap"},
		{FamilyTotal, "Total"},
	}
	for _, tt := range tests {
		if got := tt.family.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.family, got, tt.want)
		}
	}
}
