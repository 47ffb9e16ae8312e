package matching

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultEventThreshold is the minimum 0-100 similarity score for two
// event names to be considered the same event.
const DefaultEventThreshold = 85

var (
	digitsPattern    = regexp.MustCompile(`\d+`)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z ]+`)
)

// NormalizeEventName reduces an event identifier to a comparable form:
// digits and punctuation stripped, lowercased, tokens sorted. Event
// names encode "Team A vs Team B" in inconsistent order and
// punctuation across bookmakers; sorting the tokens makes the
// comparison order-invariant.
func NormalizeEventName(name string) string {
	s := digitsPattern.ReplaceAllString(name, "")
	s = nonLetterPattern.ReplaceAllString(s, "")
	words := strings.Fields(strings.ToLower(s))
	sort.Strings(words)
	return strings.Join(words, " ")
}

// EventMatcher fuzzy-matches event identifiers between the two sources.
type EventMatcher struct {
	threshold int
}

func NewEventMatcher(threshold int) *EventMatcher {
	if threshold <= 0 {
		threshold = DefaultEventThreshold
	}
	return &EventMatcher{threshold: threshold}
}

// Match pairs each source event with the single best-scoring target
// event, accepted only at score >= threshold. Sources with no
// acceptable candidate are silently dropped. Ties go to the first
// candidate in target order.
func (m *EventMatcher) Match(sourceIDs, targetIDs []string) map[string]string {
	mapping := make(map[string]string)
	if len(targetIDs) == 0 {
		return mapping
	}

	normTargets := make([]string, len(targetIDs))
	for i, t := range targetIDs {
		normTargets[i] = NormalizeEventName(t)
	}

	for _, src := range sourceIDs {
		normSrc := NormalizeEventName(src)
		bestIdx := -1
		bestScore := -1
		for i, nt := range normTargets {
			score := fuzzy.Ratio(normSrc, nt)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestScore >= m.threshold {
			mapping[src] = targetIDs[bestIdx]
		}
	}
	return mapping
}
