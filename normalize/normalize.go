// Package normalize implements the single, deterministic text-to-term
// pipeline shared by index-time document bodies and query-time
// strings (spec.md §4.1). Unlike the teacher's channel-connected
// filter chain (indexer/filters), this pipeline is a pure function:
// there is no per-document state to thread through goroutines, so a
// straight sequence of transforms over one string is the idiomatic
// shape.
package normalize

import "strings"

var namedRefs = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&apos;": "'",
}

// Terms maps raw text to its ordered, deduplication-free term
// sequence. It is pure and deterministic: the same input always
// produces the same output, and output order matches input order.
func Terms(raw string) []string {
	s := expandEntities(raw)
	s = foldAndStrip(s)

	fields := strings.Fields(s)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			terms = append(terms, f)
		}
	}
	return terms
}

// expandEntities replaces the five standard named character
// references with their single-character expansions. References it
// does not recognize are left intact, byte for byte.
func expandEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	// One left-to-right pass: an expansion is never expanded again, so
	// "&amp;lt;" always becomes "&lt;" whatever the map's order.
	pairs := make([]string, 0, 2*len(namedRefs))
	for ref, repl := range namedRefs {
		pairs = append(pairs, ref, repl)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// foldAndStrip lowercases ASCII letters, drops every character that
// is not an ASCII letter, digit, whitespace, or hyphen, then removes
// hyphens outright so "state-of-the-art" collapses to
// "stateoftheart" per spec.md §4.1 step 3.
func foldAndStrip(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			// Hyphens join fragments; drop the character itself.
		case isSpace(r):
			b.WriteRune(' ')
		}
	}

	return b.String()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
