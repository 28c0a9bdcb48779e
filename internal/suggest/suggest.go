// Package suggest offers page-link completions for configured inline fields.
//
// Typing "field:: " at the start of a line, where field is listed in the
// autocomplete settings, opens suggestions drawn from that field's vault
// folder. Accepting one inserts a [[wiki link]]; the final choice creates a
// new page from the typed text.
package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/unicode/norm"

	"github.com/marcus/inlinefields/internal/config"
	"github.com/marcus/inlinefields/internal/pageindex"
)

// CreateLabel is the label of the trailing create-a-page choice.
const CreateLabel = "+ Create New"

// linkedValue splits a value that already holds links from the text typed after them.
var linkedValue = regexp.MustCompile(`(?:\[\[.*]])*,*\s*(.*)`)

// Pos is a position in a document: a 1-based line and a byte column in it.
type Pos struct {
	Line int
	Col  int
}

// Trigger describes an active completion: the field being completed and the
// value typed so far, spanning Start to End on one line.
type Trigger struct {
	Field string
	Start Pos
	End   Pos
	Value string
}

// Suggestion is one completion choice.
type Suggestion struct {
	Label      string
	Query      string // portion of the value being matched
	StartIndex int    // offset of Query within the trigger value
	Create     bool
	Field      string
}

// Completion is the edit produced by accepting a suggestion.
type Completion struct {
	From   Pos
	To     Pos
	Text   string
	Cursor Pos
}

// PageSource lists the pages in a folder.
type PageSource interface {
	Pages(ctx context.Context, folder string) ([]pageindex.Page, error)
}

// PageCreator creates an empty page at a vault-relative path.
type PageCreator interface {
	CreatePage(ctx context.Context, relPath string) error
}

// Suggester matches typed field values against vault pages.
type Suggester struct {
	fields        []config.AutocompleteField
	pages         PageSource
	creator       PageCreator
	logger        *slog.Logger
	justCompleted bool
}

// New creates a Suggester for the given field/folder pairs.
func New(fields []config.AutocompleteField, pages PageSource, creator PageCreator, logger *slog.Logger) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Suggester{pages: pages, creator: creator, logger: logger}
	s.SetFields(fields)
	return s
}

// SetFields replaces the configured fields.
func (s *Suggester) SetFields(fields []config.AutocompleteField) {
	s.fields = append([]config.AutocompleteField(nil), fields...)
}

// Fields returns the configured fields.
func (s *Suggester) Fields() []config.AutocompleteField {
	return s.fields
}

// OnTrigger reports whether the text before cursor on lineText starts a
// configured field. The first check after a completion never triggers.
func (s *Suggester) OnTrigger(lineText string, cursor Pos) (Trigger, bool) {
	if s.justCompleted {
		s.justCompleted = false
		return Trigger{}, false
	}

	col := cursor.Col
	if col < 0 {
		col = 0
	}
	if col > len(lineText) {
		col = len(lineText)
	}
	before := lineText[:col]

	for _, f := range s.fields {
		prefix := f.Field + ":: "
		if !strings.HasPrefix(before, prefix) {
			prefix = prefix[:len(prefix)-1]
			if !strings.HasPrefix(before, prefix) {
				continue
			}
		}
		return Trigger{
			Field: f.Field,
			Start: Pos{Line: cursor.Line, Col: len(prefix)},
			End:   Pos{Line: cursor.Line, Col: col},
			Value: before[len(prefix):],
		}, true
	}
	return Trigger{}, false
}

// Suggestions returns the pages whose names contain the typed query, in
// natural order, followed by the create choice.
func (s *Suggester) Suggestions(ctx context.Context, tr Trigger) ([]Suggestion, error) {
	folder, ok := s.folderFor(tr.Field)
	if !ok {
		return nil, nil
	}

	query, startIndex := splitValue(tr.Value)

	pages, err := s.pages.Pages(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list pages in %q: %w", folder, err)
	}

	needle := foldName(query)
	seen := make(map[string]bool)
	var labels []string
	for _, pg := range pages {
		if seen[pg.Name] || !strings.Contains(foldName(pg.Name), needle) {
			continue
		}
		seen[pg.Name] = true
		labels = append(labels, pg.Name)
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return natural.Less(labels[i], labels[j])
	})

	out := make([]Suggestion, 0, len(labels)+1)
	for _, label := range labels {
		out = append(out, Suggestion{Label: label, Query: query, StartIndex: startIndex})
	}
	out = append(out, Suggestion{
		Label:      CreateLabel,
		Query:      query,
		StartIndex: startIndex,
		Create:     true,
		Field:      tr.Field,
	})
	return out, nil
}

// Select turns an accepted suggestion into a link edit. The create choice
// links the typed query and creates its page in the field's folder.
func (s *Suggester) Select(ctx context.Context, tr Trigger, sg Suggestion) (Completion, error) {
	text := sg.Label
	if sg.Create {
		text = sg.Query
		if folder, ok := s.folderFor(sg.Field); ok && folder != "" && text != "" && s.creator != nil {
			relPath := folder + "/" + text + ".md"
			if err := s.creator.CreatePage(ctx, relPath); err != nil {
				return Completion{}, fmt.Errorf("create page %s: %w", relPath, err)
			}
			s.logger.Debug("linked new page", "field", sg.Field, "path", relPath)
		}
	}

	s.justCompleted = true

	return Completion{
		From:   Pos{Line: tr.Start.Line, Col: tr.Start.Col + sg.StartIndex},
		To:     tr.End,
		Text:   "[[" + text + "]]",
		Cursor: Pos{Line: tr.End.Line, Col: tr.End.Col + 4 + len(text) - len(sg.Query)},
	}, nil
}

func (s *Suggester) folderFor(field string) (string, bool) {
	for _, f := range s.fields {
		if f.Field == field {
			return f.Folder, true
		}
	}
	return "", false
}

// splitValue returns the text to match and its offset in value. Links
// already present in value are skipped.
func splitValue(value string) (query string, startIndex int) {
	if !strings.Contains(value, "[[") {
		return value, 0
	}
	m := linkedValue.FindStringSubmatchIndex(value)
	if m == nil || m[2] < 0 {
		return "", len(value)
	}
	return value[m[2]:m[3]], m[2]
}

func foldName(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}
