// Package fields locates inline boolean fields (`name:: true`, `name:: false`)
// in a single line of text.
package fields

import (
	"sort"
	"strings"
)

const (
	// TrueMarker and FalseMarker are the literals searched for on each line.
	TrueMarker  = ":: true"
	FalseMarker = ":: false"

	// valueOffset is the distance from the start of a marker to its value token.
	valueOffset = len(":: ")
)

// Occurrence is one boolean field marker found on a line.
// Offset is relative to the start of the line, not the document.
type Occurrence struct {
	Offset int  // start of the ":: " marker
	Kind   bool // value of the field
}

// Value returns the literal text of a boolean value.
func Value(kind bool) string {
	if kind {
		return "true"
	}
	return "false"
}

// ValueStart returns the line-relative offset of the value token.
func (o Occurrence) ValueStart() int { return o.Offset + valueOffset }

// ValueEnd returns the line-relative offset just past the value token.
func (o Occurrence) ValueEnd() int { return o.ValueStart() + len(Value(o.Kind)) }

// Scan returns every boolean field marker on the line, ordered by offset.
func Scan(line string) []Occurrence {
	if line == "" {
		return nil
	}

	var out []Occurrence
	for _, idx := range indicesOf(line, TrueMarker) {
		out = append(out, Occurrence{Offset: idx, Kind: true})
	}
	for _, idx := range indicesOf(line, FalseMarker) {
		out = append(out, Occurrence{Offset: idx, Kind: false})
	}

	// The two markers differ at the first letter of the value, so offsets never tie.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// indicesOf returns the start of every non-overlapping match of search in text.
func indicesOf(text, search string) []int {
	var indices []int
	start := 0
	for start <= len(text) {
		idx := strings.Index(text[start:], search)
		if idx < 0 {
			break
		}
		indices = append(indices, start+idx)
		start += idx + len(search)
	}
	return indices
}
