package outcomes

import (
	"regexp"
	"strconv"
	"strings"
)

// Direction of a total (over/under) outcome.
const (
	DirOver  = "over"
	DirUnder = "under"
)

// HandicapKey is the canonical identity of a handicap outcome:
// which team the line applies to and the signed line itself.
type HandicapKey struct {
	Side int
	Line float64
}

// TotalKey is the canonical identity of a total outcome.
type TotalKey struct {
	Direction string
	Line      float64
}

var (
	handicapPattern = regexp.MustCompile(`(\d)\s*\(([+-]?\d+\.?\d*)\)`)
	totalPattern    = regexp.MustCompile(`(over|under)\s*([0-9]+\.?[0-9]*)`)
	totalPatternRev = regexp.MustCompile(`([0-9]+\.?[0-9]*)\s*(over|under)`)
)

// DefaultSynonyms is the label synonym table for simple markets.
// Bookmakers write the same outcome as "1", "W1" or "Home"; all fold
// to one canonical key.
func DefaultSynonyms() map[string]string {
	return map[string]string{
		"w1": "w1", "1": "w1", "home": "w1",
		"w2": "w2", "2": "w2", "away": "w2",
		"x": "x", "draw": "x",
		"yes": "yes", "no": "no",
		"1x": "1x", "12": "12", "2x": "2x",
	}
}

// Normalizer maps raw scraped outcome labels to canonical keys per
// market family. The synonym table is injected so tests can supply
// alternates.
type Normalizer struct {
	synonyms map[string]string
}

func NewNormalizer(synonyms map[string]string) *Normalizer {
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}
	return &Normalizer{synonyms: synonyms}
}

// Simple folds a simple-market label to its canonical key. Labels not
// in the synonym table pass through unchanged and become their own
// key; they will simply fail to pair with the counterpart source.
func (n *Normalizer) Simple(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	if canon, ok := n.synonyms[s]; ok {
		return canon
	}
	return s
}

// Handicap extracts (side, line) from a handicap label. Labels not
// conforming to "digit (signed-number)" after normalization are
// dropped (ok = false), not treated as errors.
func (n *Normalizer) Handicap(raw string) (HandicapKey, bool) {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "handicap", "")
	s = strings.ReplaceAll(s, "[", "(")
	s = strings.ReplaceAll(s, "]", ")")
	s = strings.Join(strings.Fields(s), " ")

	m := handicapPattern.FindStringSubmatch(s)
	if m == nil {
		return HandicapKey{}, false
	}
	side, err := strconv.Atoi(m[1])
	if err != nil {
		return HandicapKey{}, false
	}
	line, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return HandicapKey{}, false
	}
	return HandicapKey{Side: side, Line: line}, true
}

// Total extracts (direction, line) from a total label. Both orders are
// accepted: "over 2.5" and "2.5 over". Labels with neither are dropped.
func (n *Normalizer) Total(raw string) (TotalKey, bool) {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "total", "")
	s = strings.ReplaceAll(s, "(", " ")
	s = strings.ReplaceAll(s, ")", " ")
	s = strings.Join(strings.Fields(s), " ")

	if m := totalPattern.FindStringSubmatch(s); m != nil {
		line, err := strconv.ParseFloat(m[2], 64)
		if err == nil {
			return TotalKey{Direction: m[1], Line: line}, true
		}
	}
	if m := totalPatternRev.FindStringSubmatch(s); m != nil {
		line, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return TotalKey{Direction: m[2], Line: line}, true
		}
	}
	return TotalKey{}, false
}
