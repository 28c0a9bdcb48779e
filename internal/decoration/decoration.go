// Package decoration computes where checkbox widgets go for inline boolean
// fields and collects them into ordered, immutable sets.
package decoration

import "fmt"

// Mode selects where the checkbox is placed relative to the field value.
type Mode string

const (
	ModeLeft    Mode = "left"    // at the start of the line's content
	ModeRight   Mode = "right"   // just after the value
	ModeReplace Mode = "replace" // in place of the value text
	ModeNone    Mode = "none"    // no checkboxes
)

// Modes lists every valid mode.
var Modes = []Mode{ModeLeft, ModeRight, ModeReplace, ModeNone}

// ParseMode returns the mode named s. Unknown names yield ModeNone and false.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return ModeNone, false
}

// Kind distinguishes point widgets from replacing spans.
type Kind int

const (
	KindWidget  Kind = iota // anchored at a point, covers no text
	KindReplace             // covers From..To and is drawn instead of it
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindReplace {
		return "replace"
	}
	return "widget"
}

// Checkbox is the rendered widget. Two checkboxes are interchangeable when
// their checked state matches, so renderers can keep the old element.
type Checkbox struct {
	Checked bool
}

// Eq reports whether the two widgets render identically.
func (c Checkbox) Eq(other Checkbox) bool { return c.Checked == other.Checked }

// Decoration is one checkbox, either as a point widget or replacing text.
type Decoration struct {
	Kind   Kind
	Widget Checkbox
}

// Range positions a decoration in the document.
type Range struct {
	From, To   int
	Decoration Decoration
}

// Eq reports whether two ranges cover the same span with equivalent widgets.
func (r Range) Eq(other Range) bool {
	return r.From == other.From && r.To == other.To &&
		r.Decoration.Kind == other.Decoration.Kind &&
		r.Decoration.Widget.Eq(other.Decoration.Widget)
}

// Set is an ordered collection of decorations. It is never modified after
// SetBuilder.Finish returns it.
type Set struct {
	ranges []Range
}

// Empty is a set with no decorations.
var Empty = &Set{}

// Len returns the number of decorations.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ranges)
}

// At returns the i-th decoration in offset order.
func (s *Set) At(i int) Range { return s.ranges[i] }

// Ranges returns a copy of the decorations in offset order.
func (s *Set) Ranges() []Range {
	if s.Len() == 0 {
		return nil
	}
	out := make([]Range, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Between calls fn for each decoration that starts within from..to (inclusive),
// in order. Iteration stops when fn returns false.
func (s *Set) Between(from, to int, fn func(Range) bool) {
	for _, r := range s.rangesOrNil() {
		if r.From > to {
			return
		}
		if r.From < from {
			continue
		}
		if !fn(r) {
			return
		}
	}
}

// Equal reports whether both sets hold equivalent decorations in the same order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if !s.ranges[i].Eq(other.ranges[i]) {
			return false
		}
	}
	return true
}

func (s *Set) rangesOrNil() []Range {
	if s == nil {
		return nil
	}
	return s.ranges
}

// SetBuilder accumulates decorations in non-decreasing From order.
type SetBuilder struct {
	ranges []Range
	last   int
}

// Add appends a decoration. Adding out of order, or with To before From,
// is a programming error and panics.
func (b *SetBuilder) Add(from, to int, d Decoration) {
	if to < from {
		panic(fmt.Sprintf("decoration: range end %d before start %d", to, from))
	}
	if len(b.ranges) > 0 && from < b.last {
		panic(fmt.Sprintf("decoration: range at %d added after %d", from, b.last))
	}
	b.ranges = append(b.ranges, Range{From: from, To: to, Decoration: d})
	b.last = from
}

// Finish returns the built set. The builder must not be used afterwards.
func (b *SetBuilder) Finish() *Set {
	s := &Set{ranges: b.ranges}
	b.ranges = nil
	return s
}
