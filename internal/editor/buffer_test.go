package editor

import "testing"

func TestBuffer_Lines(t *testing.T) {
	b := NewBuffer("one\ntwo\n\nfour")

	if got := b.Lines(); got != 4 {
		t.Fatalf("Lines() = %d, want 4", got)
	}

	tests := []struct {
		n    int
		want Line
	}{
		{1, Line{Number: 1, From: 0, To: 3, Text: "one"}},
		{2, Line{Number: 2, From: 4, To: 7, Text: "two"}},
		{3, Line{Number: 3, From: 8, To: 8, Text: ""}},
		{4, Line{Number: 4, From: 9, To: 13, Text: "four"}},
		{0, Line{Number: 1, From: 0, To: 3, Text: "one"}},
		{9, Line{Number: 4, From: 9, To: 13, Text: "four"}},
	}
	for _, tt := range tests {
		if got := b.Line(tt.n); got != tt.want {
			t.Errorf("Line(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
	}
}

func TestBuffer_LineAt(t *testing.T) {
	b := NewBuffer("one\ntwo\n")

	tests := []struct {
		pos  int
		want int
	}{
		{0, 1},
		{3, 1}, // line break belongs to line 1
		{4, 2},
		{7, 2},
		{8, 3}, // trailing empty line
		{-5, 1},
		{100, 3},
	}
	for _, tt := range tests {
		if got := b.LineAt(tt.pos).Number; got != tt.want {
			t.Errorf("LineAt(%d) = line %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestBuffer_Apply(t *testing.T) {
	b := NewBuffer("done:: true")
	nb := b.Apply(Change{From: 7, To: 11, Insert: "false"})

	if got := nb.String(); got != "done:: false" {
		t.Errorf("Apply = %q, want %q", got, "done:: false")
	}
	if got := b.String(); got != "done:: true" {
		t.Errorf("original buffer changed to %q", got)
	}

	nb = b.Apply(Change{From: 11, To: 11, Insert: "\nnext"})
	if nb.Lines() != 2 || nb.Line(2).Text != "next" {
		t.Errorf("insert with newline: lines=%d line2=%q", nb.Lines(), nb.Line(2).Text)
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := NewBuffer("false")
	if got := b.Slice(-3, 5); got != "false" {
		t.Errorf("Slice(-3, 5) = %q, want false", got)
	}
	if got := b.Slice(4, 2); got != "" {
		t.Errorf("Slice(4, 2) = %q, want empty", got)
	}
}

func TestMapPos(t *testing.T) {
	c := Change{From: 5, To: 9, Insert: "xy"}
	tests := []struct {
		pos, want int
	}{
		{2, 2},
		{5, 7},
		{7, 7},
		{9, 7},
		{12, 10},
	}
	for _, tt := range tests {
		if got := MapPos(tt.pos, c); got != tt.want {
			t.Errorf("MapPos(%d) = %d, want %d", tt.pos, got, tt.want)
		}
	}

	insert := Change{From: 3, To: 3, Insert: "ab"}
	if got := MapPos(3, insert); got != 5 {
		t.Errorf("cursor at insertion point = %d, want 5", got)
	}
}

func TestLinesInRange(t *testing.T) {
	b := NewBuffer("a\nb\nc\nd")
	lines := LinesInRange(b, 2, 5)
	if len(lines) != 2 || lines[0].Text != "b" || lines[1].Text != "c" {
		t.Errorf("LinesInRange(2, 5) = %+v", lines)
	}
}
