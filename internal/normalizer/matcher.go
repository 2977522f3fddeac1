// normalizer/matcher.go wraps an Aho-Corasick automaton for single-pass
// keyword matching against record text.
package normalizer

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// keywordMatcher matches one keyword bucket. Built once per agent at
// registration; matching is a single O(n+m) pass per record.
type keywordMatcher struct {
	matcher  *ahocorasick.Matcher
	keywords []string
}

// newKeywordMatcher builds the automaton from a keyword bucket. Keywords
// are normalized the same way as record text so matching is
// case-insensitive. An empty bucket yields a matcher that matches nothing.
func newKeywordMatcher(keywords []string) *keywordMatcher {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = normalizeKeyword(kw)
		if kw != "" {
			normalized = append(normalized, kw)
		}
	}

	m := &keywordMatcher{keywords: normalized}
	if len(normalized) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(normalized)
	}
	return m
}

// matches returns the distinct keywords found in the already-normalized
// text, in bucket order.
func (m *keywordMatcher) matches(text string) []string {
	if m.matcher == nil {
		return nil
	}

	hits := m.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(hits))
	for _, idx := range hits {
		if idx < len(m.keywords) {
			seen[idx] = true
		}
	}

	found := make([]string, 0, len(seen))
	for idx, kw := range m.keywords {
		if seen[idx] {
			found = append(found, kw)
		}
	}
	return found
}

// any reports whether at least one keyword occurs in the text.
func (m *keywordMatcher) any(text string) bool {
	if m.matcher == nil {
		return false
	}
	return len(m.matcher.Match([]byte(text))) > 0
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

// normalizeText lowercases and replaces non-alphanumeric runes with
// spaces, preserving word boundaries for the automaton.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}
	return result.String()
}
