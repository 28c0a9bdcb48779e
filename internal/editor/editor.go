// Package editor is the line-addressable text host that editor extensions
// read from and dispatch edits to.
package editor

// Line is a single line of a document. From and To are document offsets;
// To excludes the line break.
type Line struct {
	Number int // 1-based
	From   int
	To     int
	Text   string
}

// Range is a half-open span of document offsets.
type Range struct {
	From, To int
}

// Change replaces the text between From and To with Insert.
type Change struct {
	From   int
	To     int
	Insert string
}

// Document is read access to text by line and offset.
type Document interface {
	// Line returns line n (1-based). n is clamped to the document.
	Line(n int) Line
	// LineAt returns the line containing pos.
	LineAt(pos int) Line
	// Lines returns the number of lines (at least 1).
	Lines() int
	// Len returns the length of the text in bytes.
	Len() int
	// Slice returns the text between two offsets, clamped to the document.
	Slice(from, to int) string
}

// View is what extensions see of a live editor.
type View interface {
	Doc() Document
	// VisibleRanges returns the rendered spans in increasing order.
	VisibleRanges() []Range
	// Dispatch applies a change atomically and notifies extensions.
	Dispatch(c Change)
}

// Update describes what changed since extensions were last notified.
type Update struct {
	View            View
	DocChanged      bool
	ViewportChanged bool
	SelectionSet    bool
}

// Extension is attached to a view and told about every update.
type Extension interface {
	Attach(v View)
	Update(u Update)
}

// Target is what a pointer press landed on, resolved by the renderer.
type Target struct {
	Widget bool // press was on a rendered checkbox widget
	Pos    int  // document offset of the widget
}

// LinesInRange returns the lines spanning from..to.
func LinesInRange(doc Document, from, to int) []Line {
	if to < from {
		from, to = to, from
	}
	start := doc.LineAt(from).Number
	end := doc.LineAt(to).Number
	lines := make([]Line, 0, end-start+1)
	for n := start; n <= end; n++ {
		lines = append(lines, doc.Line(n))
	}
	return lines
}
