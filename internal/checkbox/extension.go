// Package checkbox keeps checkbox decorations in sync with an editor view and
// flips boolean field values when a checkbox is pressed.
package checkbox

import (
	"log/slog"

	"github.com/marcus/inlinefields/internal/decoration"
	"github.com/marcus/inlinefields/internal/editor"
)

// Extension owns the current decoration set for one view. The mode is fixed
// for its lifetime; changing it means creating a new Extension.
type Extension struct {
	mode        decoration.Mode
	logger      *slog.Logger
	decorations *decoration.Set
	activating  bool
	rebuilds    int
}

// New creates an extension for mode. An invalid mode produces no decorations.
func New(mode decoration.Mode, logger *slog.Logger) *Extension {
	if _, ok := decoration.ParseMode(string(mode)); !ok {
		mode = decoration.ModeNone
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extension{
		mode:        mode,
		logger:      logger,
		decorations: decoration.Empty,
	}
}

// Mode returns the placement mode.
func (e *Extension) Mode() decoration.Mode { return e.mode }

// Decorations returns the current decoration set.
func (e *Extension) Decorations() *decoration.Set { return e.decorations }

// Rebuilds returns how many times the set has been recomputed.
func (e *Extension) Rebuilds() int { return e.rebuilds }

// Attach computes the initial decorations.
func (e *Extension) Attach(v editor.View) {
	e.rebuild(v)
}

// Update recomputes decorations after document, viewport or selection changes.
func (e *Extension) Update(u editor.Update) {
	if u.DocChanged || u.ViewportChanged || u.SelectionSet {
		e.rebuild(u.View)
	}
}

// HandleMouseDown toggles the field behind a pressed checkbox. It reports
// whether the press was consumed.
func (e *Extension) HandleMouseDown(v editor.View, t editor.Target) bool {
	if !t.Widget || e.activating {
		return false
	}
	change, ok := Toggle(v.Doc(), t.Pos, e.mode)
	if !ok {
		e.logger.Debug("checkbox: no value at press", "pos", t.Pos, "mode", e.mode)
		return false
	}

	// Dispatch notifies Update synchronously; a press arriving from inside
	// that notification must not toggle again.
	e.activating = true
	defer func() { e.activating = false }()

	e.logger.Debug("checkbox: toggle", "from", change.From, "to", change.To, "insert", change.Insert)
	v.Dispatch(change)
	return true
}

func (e *Extension) rebuild(v editor.View) {
	e.decorations = decoration.Build(v.Doc(), v.VisibleRanges(), e.mode)
	e.rebuilds++
}
