package textspan

import "strings"

// Span is a half-open [Start, End) byte range inside a reference text.
type Span struct {
	Start int
	End   int
}

// Resolve locates queryText inside referenceText and returns its bounds.
// Exact match is tried first, then case-insensitive; either way the offsets
// index into the original referenceText. Always the leftmost occurrence.
// The second return value is false when the query cannot be located at all.
func Resolve(referenceText, queryText string) (Span, bool) {
	if queryText == "" {
		return Span{}, false
	}

	if start := strings.Index(referenceText, queryText); start != -1 {
		return Span{Start: start, End: start + len(queryText)}, true
	}

	start := strings.Index(strings.ToLower(referenceText), strings.ToLower(queryText))
	if start != -1 {
		return Span{Start: start, End: start + len(queryText)}, true
	}

	return Span{}, false
}
