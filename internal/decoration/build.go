package decoration

import (
	"github.com/marcus/inlinefields/internal/editor"
	"github.com/marcus/inlinefields/internal/fields"
)

// BuildLine returns the decorations for one line whose text starts at lineBase.
func BuildLine(lineText string, lineBase int, mode Mode) []Range {
	p := PlacerFor(mode, lineText)
	if p == nil {
		return nil
	}
	var out []Range
	for _, occ := range fields.Scan(lineText) {
		if r, ok := p.Place(occ, lineBase); ok {
			out = append(out, r)
		}
	}
	return out
}

// Build scans every line touched by the visible ranges and returns their
// checkbox decorations. Ranges must be in increasing order, as views report them.
func Build(doc editor.Document, visible []editor.Range, mode Mode) *Set {
	if PlacerFor(mode, "") == nil {
		return Empty
	}

	var b SetBuilder
	lastLine := 0
	for _, vr := range visible {
		start := doc.LineAt(vr.From).Number
		end := doc.LineAt(vr.To).Number
		// Adjacent ranges can share a boundary line.
		if start <= lastLine {
			start = lastLine + 1
		}
		for n := start; n <= end; n++ {
			line := doc.Line(n)
			for _, r := range BuildLine(line.Text, line.From, mode) {
				b.Add(r.From, r.To, r.Decoration)
			}
			lastLine = n
		}
	}
	return b.Finish()
}
