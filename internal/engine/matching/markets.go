package matching

import (
	"path/filepath"
	"regexp"
	"strings"
)

// TermMapping rewrites one bookmaker's market phrasing into the
// other's. Order matters: earlier rules run first on the same string.
type TermMapping struct {
	From string
	To   string
}

// DefaultTermMappings translates source-bookmaker market vocabulary
// into target-bookmaker vocabulary before word-set comparison.
func DefaultTermMappings() []TermMapping {
	return []TermMapping{
		{"total 1", "home team total"},
		{"total 2", "away team total"},
		{"shots on target", "shots on goal"},
		{"asian team total 1", "asian home team total"},
		{"asian team total 2", "asian away team total"},
		{"team 1", "home team"},
		{"team 2", "away team"},
		{"1x2", "winner"},
		{"both teams to score runs", "both teams to score points"},
	}
}

// Qualifier phrases that one bookmaker appends and the other omits.
var defaultNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(incl\.\s*extra\s*innings\)`),
	regexp.MustCompile(`(?i)\(incl\s*ot\)`),
	regexp.MustCompile(`(?i)incl\s*extra\s*innings`),
	regexp.MustCompile(`(?i)incl\s*ot`),
}

type termRule struct {
	re *regexp.Regexp
	to string
}

// MarketMatcher matches market file names between two already-paired
// events by exact word-set equality after normalization and term
// substitution.
type MarketMatcher struct {
	terms []termRule
	noise []*regexp.Regexp
}

func NewMarketMatcher(terms []TermMapping) *MarketMatcher {
	if terms == nil {
		terms = DefaultTermMappings()
	}
	rules := make([]termRule, 0, len(terms))
	for _, t := range terms {
		rules = append(rules, termRule{
			re: regexp.MustCompile(`\b` + regexp.QuoteMeta(t.From) + `\b`),
			to: t.To,
		})
	}
	return &MarketMatcher{terms: rules, noise: defaultNoisePatterns}
}

// normalizeMarketName strips the extension and separator characters
// from a market file name and lowercases it.
func normalizeMarketName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, ".", " ")
	name = strings.Join(strings.Fields(name), " ")
	return strings.ToLower(name)
}

// WordSet computes the comparable word set for a market file name:
// normalized, noise-stripped, term-mapped, tokenized with set
// semantics (order irrelevant, duplicates collapse).
func (m *MarketMatcher) WordSet(name string) map[string]struct{} {
	s := normalizeMarketName(name)
	for _, re := range m.noise {
		s = re.ReplaceAllString(s, "")
	}
	s = strings.Join(strings.Fields(s), " ")
	for _, r := range m.terms {
		s = r.re.ReplaceAllString(s, r.to)
	}
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// Match binds source market files to target market files by exact
// word-set equality. Greedy first-fit: sources are walked in order and
// each takes the first unused equal-set target; a target is consumed
// at most once. Files with no counterpart are left unmatched.
func (m *MarketMatcher) Match(sourceFiles, targetFiles []string) map[string]string {
	mapping := make(map[string]string)
	used := make([]bool, len(targetFiles))

	targetSets := make([]map[string]struct{}, len(targetFiles))
	for i, t := range targetFiles {
		targetSets[i] = m.WordSet(t)
	}

	for _, src := range sourceFiles {
		srcSet := m.WordSet(src)
		for i, tgt := range targetFiles {
			if used[i] {
				continue
			}
			if wordSetsEqual(srcSet, targetSets[i]) {
				mapping[src] = tgt
				used[i] = true
				break
			}
		}
	}
	return mapping
}

func wordSetsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for w := range a {
		if _, ok := b[w]; !ok {
			return false
		}
	}
	return true
}
