package editor

import (
	"sort"
	"strings"
)

// Buffer is an immutable Document over a string with a line-start index.
type Buffer struct {
	text   string
	starts []int // offset of each line start
}

// NewBuffer indexes text into a Buffer.
func NewBuffer(text string) *Buffer {
	b := &Buffer{text: text, starts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.starts = append(b.starts, i+1)
		}
	}
	return b
}

// String returns the full text.
func (b *Buffer) String() string { return b.text }

// Len returns the text length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Lines returns the number of lines.
func (b *Buffer) Lines() int { return len(b.starts) }

// Line returns line n (1-based), clamped to the buffer.
func (b *Buffer) Line(n int) Line {
	if n < 1 {
		n = 1
	}
	if n > len(b.starts) {
		n = len(b.starts)
	}
	from := b.starts[n-1]
	to := len(b.text)
	if n < len(b.starts) {
		to = b.starts[n] - 1
	}
	return Line{Number: n, From: from, To: to, Text: b.text[from:to]}
}

// LineAt returns the line containing pos.
func (b *Buffer) LineAt(pos int) Line {
	pos = b.clamp(pos)
	// Last start <= pos.
	n := sort.Search(len(b.starts), func(i int) bool { return b.starts[i] > pos })
	return b.Line(n)
}

// Slice returns text between from and to, clamped to the buffer.
func (b *Buffer) Slice(from, to int) string {
	from, to = b.clamp(from), b.clamp(to)
	if to < from {
		return ""
	}
	return b.text[from:to]
}

// Apply returns a new buffer with c applied. The receiver is unchanged.
func (b *Buffer) Apply(c Change) *Buffer {
	from, to := b.clamp(c.From), b.clamp(c.To)
	if to < from {
		from, to = to, from
	}
	var sb strings.Builder
	sb.Grow(len(b.text) - (to - from) + len(c.Insert))
	sb.WriteString(b.text[:from])
	sb.WriteString(c.Insert)
	sb.WriteString(b.text[to:])
	return NewBuffer(sb.String())
}

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.text) {
		return len(b.text)
	}
	return pos
}

// MapPos maps a position in the text before c to the text after it.
// Positions inside the replaced span move to its end.
func MapPos(pos int, c Change) int {
	if c.To < c.From {
		c.From, c.To = c.To, c.From
	}
	switch {
	case pos < c.From:
		return pos
	case pos >= c.To:
		return pos + len(c.Insert) - (c.To - c.From)
	default:
		return c.From + len(c.Insert)
	}
}
