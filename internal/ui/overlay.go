// Package ui provides shared UI helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// maxLineWidth returns the maximum visual width of the given lines.
func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		w := ansi.StringWidth(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// Size returns the visual width and height of a rendered block.
func Size(block string) (width, height int) {
	lines := strings.Split(block, "\n")
	return maxLineWidth(lines), len(lines)
}

// compositeRow overlays popupLine onto bgLine at startX, keeping the styling
// of the background on either side.
func compositeRow(bgLine, popupLine string, startX, popupWidth int) string {
	var result strings.Builder

	bgWidth := ansi.StringWidth(bgLine)

	if startX > 0 {
		leftSeg := ansi.Truncate(bgLine, startX, "")
		leftWidth := ansi.StringWidth(leftSeg)
		result.WriteString(leftSeg)
		// Pad if background is shorter than the popup position
		if leftWidth < startX {
			result.WriteString(strings.Repeat(" ", startX-leftWidth))
		}
	}

	result.WriteString(popupLine)
	if w := ansi.StringWidth(popupLine); w < popupWidth {
		result.WriteString(strings.Repeat(" ", popupWidth-w))
	}

	if rightStartX := startX + popupWidth; bgWidth > rightStartX {
		result.WriteString(ansi.Cut(bgLine, rightStartX, bgWidth))
	}

	return result.String()
}

// PopupOrigin positions a w×h popup anchored at (x, y): on the row below
// the anchor when it fits, above it otherwise, shifted left to stay inside
// a width×height screen.
func PopupOrigin(x, y, w, h, width, height int) (int, int) {
	top := y + 1
	if top+h > height && y-h >= 0 {
		top = y - h
	}
	if top < 0 {
		top = 0
	}
	if x+w > width {
		x = width - w
	}
	if x < 0 {
		x = 0
	}
	return x, top
}

// OverlayAt composites popup over background with its top-left cell at (x, y).
// Background rows outside the popup are returned unchanged.
func OverlayAt(background, popup string, x, y int) string {
	bgLines := strings.Split(background, "\n")
	popupLines := strings.Split(popup, "\n")
	popupWidth := maxLineWidth(popupLines)

	for len(bgLines) < y+len(popupLines) {
		bgLines = append(bgLines, "")
	}
	for i, line := range popupLines {
		row := y + i
		if row < 0 {
			continue
		}
		bgLines[row] = compositeRow(bgLines[row], line, x, popupWidth)
	}
	return strings.Join(bgLines, "\n")
}
