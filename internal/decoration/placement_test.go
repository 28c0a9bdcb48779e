package decoration

import (
	"testing"

	"github.com/marcus/inlinefields/internal/fields"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"left", ModeLeft, true},
		{"right", ModeRight, true},
		{"replace", ModeReplace, true},
		{"none", ModeNone, true},
		{"", ModeNone, false},
		{"Left", ModeNone, false},
		{"above", ModeNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLineContentStart(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"done:: true", 0},
		{"- done:: true", 2},
		{"    - done:: true", 6},
		{"\tdone:: true", 1},
		{"-done:: true", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := LineContentStart(tt.line); got != tt.want {
			t.Errorf("LineContentStart(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestPlace(t *testing.T) {
	const base = 100

	tests := []struct {
		name     string
		line     string
		mode     Mode
		wantFrom int
		wantTo   int
		wantKind Kind
		wantOK   bool
	}{
		{"right true", "done:: true", ModeRight, base + 11, base + 11, KindWidget, true},
		{"right false", "done:: false", ModeRight, base + 12, base + 12, KindWidget, true},
		{"replace true", "done:: true", ModeReplace, base + 7, base + 11, KindReplace, true},
		{"replace false", "done:: false", ModeReplace, base + 7, base + 12, KindReplace, true},
		{"left no bullet", "done:: true", ModeLeft, base, base, KindWidget, true},
		{"left bullet", "- done:: true", ModeLeft, base + 2, base + 2, KindWidget, true},
		{"none", "done:: true", ModeNone, 0, 0, 0, false},
		{"unknown mode", "done:: true", Mode("sideways"), 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occ := fields.Scan(tt.line)[0]
			got, ok := Place(occ, base, tt.mode, tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.From != tt.wantFrom || got.To != tt.wantTo {
				t.Errorf("span = %d..%d, want %d..%d", got.From, got.To, tt.wantFrom, tt.wantTo)
			}
			if got.Decoration.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Decoration.Kind, tt.wantKind)
			}
			if got.Decoration.Widget.Checked != occ.Kind {
				t.Errorf("checked = %v, want %v", got.Decoration.Widget.Checked, occ.Kind)
			}
		})
	}
}

func TestPlace_ReplaceCoversValue(t *testing.T) {
	line := "done:: false"
	occ := fields.Scan(line)[0]
	r, ok := Place(occ, 0, ModeReplace, line)
	if !ok {
		t.Fatal("replace placement returned no decoration")
	}
	if got := line[r.From:r.To]; got != "false" {
		t.Errorf("replace span covers %q, want false", got)
	}
}

func TestPlace_LeftSharedAnchor(t *testing.T) {
	line := "  - a:: true b:: false"
	var anchors []int
	for _, occ := range fields.Scan(line) {
		r, ok := Place(occ, 10, ModeLeft, line)
		if !ok {
			t.Fatal("left placement returned no decoration")
		}
		anchors = append(anchors, r.From)
	}
	if len(anchors) != 2 || anchors[0] != 14 || anchors[1] != 14 {
		t.Errorf("anchors = %v, want [14 14]", anchors)
	}
}

func TestLeftPlacer_UndefinedStart(t *testing.T) {
	p := leftPlacer{start: -1}
	if _, ok := p.Place(fields.Occurrence{Offset: 3, Kind: true}, 0); ok {
		t.Error("undefined line start should yield no decoration")
	}
}

func TestCheckbox_Eq(t *testing.T) {
	if !(Checkbox{Checked: true}).Eq(Checkbox{Checked: true}) {
		t.Error("equal checked state should compare equal")
	}
	if (Checkbox{Checked: true}).Eq(Checkbox{Checked: false}) {
		t.Error("different checked state should not compare equal")
	}
}
