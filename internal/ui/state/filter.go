package state

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Matcher decides whether an item's text matches a non-empty search query.
type Matcher interface {
	Match(query, text string) bool
}

// SubstringMatcher matches when any space-separated word of the query
// occurs in the text, ignoring case.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(query, text string) bool {
	text = strings.ToLower(text)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// FuzzyMatcher matches when the query's characters appear in order in the
// text, ignoring case and diacritics.
type FuzzyMatcher struct{}

func (FuzzyMatcher) Match(query, text string) bool {
	return fuzzy.MatchNormalizedFold(strings.TrimSpace(query), text)
}

// NewMatcher returns FuzzyMatcher when useFuzzy is set, SubstringMatcher otherwise.
func NewMatcher(useFuzzy bool) Matcher {
	if useFuzzy {
		return FuzzyMatcher{}
	}
	return SubstringMatcher{}
}

// FilterItems returns pointers to the items that match the active search
// query, in their original order. Without a search popup or with an
// empty query every item is returned.
func FilterItems[T fmt.Stringer](s *Stack, items []T) []*T {
	// A query of only spaces counts as empty and keeps every item.
	query := strings.TrimSpace(s.SearchQuery())
	out := make([]*T, 0, len(items))
	for i := range items {
		if query == "" || s.matcher.Match(query, items[i].String()) {
			out = append(out, &items[i])
		}
	}
	return out
}
