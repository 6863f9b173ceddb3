package docimport

import "regexp"

// Default id token patterns. Go's regexp is RE2, so matching stays linear
// even on adversarial input.
//
//	PROJ-REQ_RC-001  prefix, REQ, internal separator group, digits
//	ABC-REQ-123      prefix, REQ, digits
//	REQ_001          bare REQ with underscore or dash separator
var defaultIDPatterns = []string{
	`\b[A-Z][A-Z0-9]*-REQ(?:[_-][A-Z0-9]+)?-[0-9]+\b`,
	`\bREQ[_-][0-9]+\b`,
}

// DefaultIDPatterns returns a copy of the default pattern family, for callers
// that extend it with site-specific patterns.
func DefaultIDPatterns() []string {
	out := make([]string, len(defaultIDPatterns))
	copy(out, defaultIDPatterns)
	return out
}

// IDMatcher recognizes requirement-identifier tokens in free text.
type IDMatcher struct {
	patterns []*regexp.Regexp
}

// NewIDMatcher compiles the given patterns, falling back to the default
// pattern family when none are supplied.
func NewIDMatcher(patterns ...string) (*IDMatcher, error) {
	if len(patterns) == 0 {
		patterns = defaultIDPatterns
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &IDMatcher{patterns: compiled}, nil
}

// MustNewIDMatcher is NewIDMatcher for the default patterns, which are known
// to compile.
func MustNewIDMatcher() *IDMatcher {
	m, err := NewIDMatcher()
	if err != nil {
		panic(err)
	}
	return m
}

// idMatch is one id token with its byte offset in the scanned text.
type idMatch struct {
	token string
	pos   int
}

// Match returns every id token in the text, duplicates removed, in order of
// first appearance.
func (m *IDMatcher) Match(text string) []string {
	matches := m.matchPositions(text)
	ids := make([]string, len(matches))
	for i, mt := range matches {
		ids[i] = mt.token
	}
	return ids
}

// matchPositions returns deduplicated matches with offsets, sorted by first
// appearance. The generic parser needs the offsets to carve text windows.
func (m *IDMatcher) matchPositions(text string) []idMatch {
	seen := make(map[string]bool)
	var out []idMatch
	for _, re := range m.patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			token := text[loc[0]:loc[1]]
			if seen[token] {
				continue
			}
			seen[token] = true
			out = append(out, idMatch{token: token, pos: loc[0]})
		}
	}
	// Multiple patterns scan independently; restore document order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].pos < out[j-1].pos; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
