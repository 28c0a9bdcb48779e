package notes

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/editor"
	"github.com/marcus/inlinefields/internal/styles"
	"github.com/marcus/inlinefields/internal/suggest"
	"github.com/marcus/inlinefields/internal/ui"
)

// Hit regions.
const (
	regionLine       = "line"
	regionCheckbox   = "checkbox"
	regionSuggestion = "suggestion"
)

const (
	tabWidth      = 4
	maxPopupWidth = 48
)

// lineRow maps screen cells of a rendered line back to document offsets.
type lineRow struct {
	cells []int
	end   int
}

// cellOf returns the first cell showing offset or anything after it.
func (r lineRow) cellOf(offset int) int {
	for i, o := range r.cells {
		if o >= offset {
			return i
		}
	}
	return len(r.cells)
}

func (r lineRow) offsetAt(x int) int {
	if x < 0 {
		x = 0
	}
	if x >= len(r.cells) {
		return r.end
	}
	return r.cells[x]
}

// checkboxHit is a rendered checkbox: its first cell and the decoration anchor.
type checkboxHit struct {
	x   int
	pos int
}

func (p *Plugin) renderView() string {
	p.mouseHandler.Clear()

	var sb strings.Builder
	sb.WriteString(p.renderHeader())

	doc := p.editor.Doc()
	decos := p.boxes.Decorations()
	cursor := p.editor.Cursor()
	cursorLine := doc.LineAt(cursor).Number
	top, rows := p.editor.Top(), p.editor.Height()

	anchorY := headerRows
	var anchorRow lineRow

	for row := 0; row < rows; row++ {
		sb.WriteString("\n")
		n := top + row
		y := headerRows + row
		if n > doc.Lines() {
			sb.WriteString(styles.Muted.Render("~"))
			continue
		}
		line := doc.Line(n)
		var ranges []decoration.Range
		decos.Between(line.From, line.To, func(r decoration.Range) bool {
			ranges = append(ranges, r)
			return true
		})

		text, lr, hits := renderLine(line, ranges, p.boxes.Mode(), cursor, p.width)
		sb.WriteString(text)
		if n == cursorLine {
			anchorY, anchorRow = y, lr
		}

		p.mouseHandler.HitMap.AddRect(regionLine, 0, y, p.width, 1, lr)
		for _, h := range hits {
			p.mouseHandler.HitMap.AddRect(regionCheckbox, h.x, y, styles.CheckboxWidth, 1, h.pos)
		}
	}

	content := sb.String()
	if p.popupOpen() {
		anchorX := anchorRow.cellOf(offsetOf(doc, p.trigger.Start))
		content = p.overlayPopup(content, anchorX, anchorY)
	}
	return content
}

func (p *Plugin) renderHeader() string {
	title := styles.Title.Render(p.notePath)
	if p.dirty {
		title += styles.Muted.Render(" [+]")
	}
	if p.index != nil && !p.indexLoaded {
		title += styles.Muted.Render("  indexing vault...")
	}
	return ansi.Truncate(title, p.width, "")
}

// renderLine draws one line with its decorations and the cursor. It returns
// the styled text, the cell-to-offset map and where checkboxes were drawn.
func renderLine(line editor.Line, ranges []decoration.Range, mode decoration.Mode, cursor, width int) (string, lineRow, []checkboxHit) {
	var sb strings.Builder
	row := lineRow{end: line.To}
	var hits []checkboxHit

	put := func(s string, cells, offset int) {
		sb.WriteString(s)
		for i := 0; i < cells; i++ {
			row.cells = append(row.cells, offset)
		}
	}
	box := func(r decoration.Range, withCursor bool) {
		rendered := styles.Checkbox(r.Decoration.Widget.Checked)
		if withCursor {
			rendered = styles.Cursor.Render(ansi.Strip(rendered))
		}
		if mode == decoration.ModeRight && r.Decoration.Kind == decoration.KindWidget {
			put(" ", 1, r.From)
		}
		hits = append(hits, checkboxHit{x: len(row.cells), pos: r.From})
		put(rendered, styles.CheckboxWidth, r.From)
		if mode == decoration.ModeLeft {
			put(" ", 1, r.From)
		}
	}

	cursorDrawn := false
	pos, i := line.From, 0
	for {
		for i < len(ranges) && ranges[i].From == pos && ranges[i].Decoration.Kind == decoration.KindWidget {
			box(ranges[i], false)
			i++
		}
		if i < len(ranges) && ranges[i].From == pos && ranges[i].Decoration.Kind == decoration.KindReplace {
			r := ranges[i]
			onBox := cursor >= r.From && cursor < r.To
			box(r, onBox)
			cursorDrawn = cursorDrawn || onBox
			pos = r.To
			i++
			continue
		}
		if pos >= line.To {
			break
		}

		ch, size := utf8.DecodeRuneInString(line.Text[pos-line.From:])
		glyph, cells := string(ch), runewidth.RuneWidth(ch)
		if ch == '\t' {
			glyph, cells = strings.Repeat(" ", tabWidth), tabWidth
		}
		if pos == cursor {
			if cells == 0 {
				glyph, cells = glyph+" ", 1
			}
			glyph = styles.Cursor.Render(glyph)
			cursorDrawn = true
		} else {
			glyph = styles.Body.Render(glyph)
		}
		put(glyph, cells, pos)
		pos += size
	}

	if cursor == line.To && !cursorDrawn {
		put(styles.Cursor.Render(" "), 1, line.To)
	}

	out := sb.String()
	if width > 0 && len(row.cells) > width {
		out = ansi.Truncate(out, width, "")
		row.cells = row.cells[:width]
		kept := hits[:0]
		for _, h := range hits {
			if h.x+styles.CheckboxWidth <= width {
				kept = append(kept, h)
			}
		}
		hits = kept
	}
	return out, row, hits
}

// overlayPopup draws the suggestion list under the anchor cell, keeping the
// selected item in view.
func (p *Plugin) overlayPopup(content string, anchorX, anchorY int) string {
	first := 0
	if p.selected >= maxPopupItems {
		first = p.selected - maxPopupItems + 1
	}
	last := min(first+maxPopupItems, len(p.suggestions))

	inner := 0
	for _, sg := range p.suggestions[first:last] {
		inner = max(inner, runewidth.StringWidth(popupLabel(sg)))
	}
	if limit := min(p.width, maxPopupWidth) - 4; inner > limit {
		inner = max(limit, 1)
	}

	items := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		sg := p.suggestions[i]
		label := runewidth.Truncate(popupLabel(sg), inner, "…")
		label = runewidth.FillRight(label, inner)
		switch {
		case i == p.selected:
			label = styles.PopupSelected.Render(label)
		case sg.Create:
			label = styles.PopupCreate.Render(label)
		default:
			label = styles.PopupItem.Render(label)
		}
		items = append(items, label)
	}
	box := styles.Popup.Render(strings.Join(items, "\n"))

	w, h := ui.Size(box)
	x, y := ui.PopupOrigin(anchorX, anchorY, w, h, p.width, p.height)
	for i := first; i < last; i++ {
		p.mouseHandler.HitMap.AddRect(regionSuggestion, x, y+1+i-first, w, 1, i)
	}
	return ui.OverlayAt(content, box, x, y)
}

func popupLabel(sg suggest.Suggestion) string {
	if sg.Create && sg.Query != "" {
		return fmt.Sprintf("%s %q", sg.Label, sg.Query)
	}
	return sg.Label
}
