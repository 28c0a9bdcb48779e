package decoration

import (
	"strings"
	"unicode"

	"github.com/marcus/inlinefields/internal/fields"
)

const bulletMarker = "- "

// Placer turns an occurrence on a line into a positioned decoration.
type Placer interface {
	Place(occ fields.Occurrence, lineBase int) (Range, bool)
}

// leftPlacer anchors every checkbox on the line at the start of its content.
type leftPlacer struct {
	start int // line-relative
}

func (p leftPlacer) Place(occ fields.Occurrence, lineBase int) (Range, bool) {
	if p.start < 0 {
		return Range{}, false
	}
	pos := lineBase + p.start
	return Range{From: pos, To: pos, Decoration: widget(occ.Kind)}, true
}

type rightPlacer struct{}

func (rightPlacer) Place(occ fields.Occurrence, lineBase int) (Range, bool) {
	pos := lineBase + occ.ValueEnd()
	return Range{From: pos, To: pos, Decoration: widget(occ.Kind)}, true
}

type replacePlacer struct{}

func (replacePlacer) Place(occ fields.Occurrence, lineBase int) (Range, bool) {
	return Range{
		From:       lineBase + occ.ValueStart(),
		To:         lineBase + occ.ValueEnd(),
		Decoration: Decoration{Kind: KindReplace, Widget: Checkbox{Checked: occ.Kind}},
	}, true
}

// PlacerFor returns the placer for mode on the given line, or nil when mode
// produces no decorations.
func PlacerFor(mode Mode, lineText string) Placer {
	switch mode {
	case ModeLeft:
		return leftPlacer{start: LineContentStart(lineText)}
	case ModeRight:
		return rightPlacer{}
	case ModeReplace:
		return replacePlacer{}
	default:
		return nil
	}
}

// Place positions a single occurrence. The second result is false when mode
// produces no decoration.
func Place(occ fields.Occurrence, lineBase int, mode Mode, lineText string) (Range, bool) {
	p := PlacerFor(mode, lineText)
	if p == nil {
		return Range{}, false
	}
	return p.Place(occ, lineBase)
}

// LineContentStart returns the line-relative offset where the line's content
// begins: after leading whitespace and after a "- " bullet.
func LineContentStart(lineText string) int {
	trimmed := strings.TrimLeftFunc(lineText, unicode.IsSpace)
	start := len(lineText) - len(trimmed)
	if strings.HasPrefix(trimmed, bulletMarker) {
		start += len(bulletMarker)
	}
	return start
}

func widget(checked bool) Decoration {
	return Decoration{Kind: KindWidget, Widget: Checkbox{Checked: checked}}
}
