package checkbox

import (
	"regexp"
	"strings"

	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/editor"
)

// fieldPattern matches up to and including the last boolean value on a line.
var fieldPattern = regexp.MustCompile(`.*::\s*(true|false)`)

// valueBefore matches a field separator directly before a value.
var valueBefore = regexp.MustCompile(`::\s*$`)

// Toggle computes the edit that flips the boolean value belonging to the
// checkbox at pos. It returns false when no value is found there.
func Toggle(doc editor.Document, pos int, mode decoration.Mode) (editor.Change, bool) {
	end, ok := valueEnd(doc, pos, mode)
	if !ok {
		return editor.Change{}, false
	}

	text := doc.Slice(end-5, end)
	switch {
	case text == "false":
		return editor.Change{From: end - 5, To: end, Insert: "true"}, true
	case strings.HasSuffix(text, "true"):
		return editor.Change{From: end - 4, To: end, Insert: "false"}, true
	default:
		return editor.Change{}, false
	}
}

// valueEnd returns the document offset just past the value to inspect.
func valueEnd(doc editor.Document, pos int, mode decoration.Mode) (int, bool) {
	switch mode {
	case decoration.ModeReplace:
		// A replaced value reports its own start.
		if end, ok := valueAt(doc, pos); ok {
			return end, true
		}
		return lineValueEnd(doc, pos)
	case decoration.ModeLeft:
		return lineValueEnd(doc, pos)
	default:
		return pos, true
	}
}

// lineValueEnd finds the last boolean value on the line containing pos.
func lineValueEnd(doc editor.Document, pos int) (int, bool) {
	line := doc.LineAt(pos)
	loc := fieldPattern.FindStringIndex(line.Text)
	if loc == nil {
		return 0, false
	}
	return line.From + loc[1], true
}

// valueAt reports the end of a boolean value starting exactly at pos.
func valueAt(doc editor.Document, pos int) (int, bool) {
	line := doc.LineAt(pos)
	if !valueBefore.MatchString(doc.Slice(line.From, pos)) {
		return 0, false
	}
	rest := doc.Slice(pos, line.To)
	for _, v := range []string{"false", "true"} {
		if strings.HasPrefix(rest, v) {
			return pos + len(v), true
		}
	}
	return 0, false
}
