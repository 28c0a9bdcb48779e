package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}

	tests := []struct {
		name   string
		x, y   int
		expect bool
	}{
		{"inside", 15, 30, true},
		{"top-left corner", 10, 20, true},
		{"right edge exclusive", 40, 30, false},
		{"bottom edge exclusive", 15, 60, false},
		{"last column", 39, 30, true},
		{"last row", 15, 59, true},
		{"left of rect", 9, 30, false},
		{"above rect", 15, 19, false},
		{"origin", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Rect%+v.Contains(%d, %d) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRect_Contains_ZeroSize(t *testing.T) {
	for _, r := range []Rect{{X: 5, Y: 5, W: 0, H: 1}, {X: 5, Y: 5, W: 3, H: 0}, {X: 5, Y: 5}} {
		if r.Contains(5, 5) {
			t.Errorf("Rect%+v should not contain any point", r)
		}
	}
}

// checkboxRow mimics a rendered note line: a text region with a three-cell
// checkbox drawn over it.
func checkboxRow() *HitMap {
	hm := NewHitMap()
	hm.AddRect("line", 0, 2, 40, 1, 3)
	hm.AddRect("checkbox", 12, 2, 3, 1, 57)
	return hm
}

func TestHitMap_Test(t *testing.T) {
	hm := checkboxRow()

	tests := []struct {
		name     string
		x, y     int
		wantID   string
		wantData any
	}{
		{"checkbox wins over line", 13, 2, "checkbox", 57},
		{"checkbox first cell", 12, 2, "checkbox", 57},
		{"after checkbox", 15, 2, "line", 3},
		{"line start", 0, 2, "line", 3},
		{"other row", 13, 3, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := hm.Test(tt.x, tt.y)
			if tt.wantID == "" {
				if r != nil {
					t.Errorf("Test(%d, %d) = %+v, want nil", tt.x, tt.y, r)
				}
				return
			}
			if r == nil || r.ID != tt.wantID || r.Data != tt.wantData {
				t.Errorf("Test(%d, %d) = %+v, want %s/%v", tt.x, tt.y, r, tt.wantID, tt.wantData)
			}
		})
	}

	if NewHitMap().Test(0, 0) != nil {
		t.Error("empty hit map should miss")
	}
}

func TestHitMap_ClearAndRegions(t *testing.T) {
	hm := checkboxRow()

	regions := hm.Regions()
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	regions[0].ID = "mutated"
	if hm.Regions()[0].ID == "mutated" {
		t.Error("Regions() should return a copy")
	}
	if regions[1].Rect != (Rect{X: 12, Y: 2, W: 3, H: 1}) {
		t.Errorf("AddRect stored %+v", regions[1].Rect)
	}

	hm.Clear()
	if hm.Test(13, 2) != nil {
		t.Error("expected no hit after clear")
	}
}

func TestHandler_DoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap = checkboxRow()

	now := time.Now()
	h.now = func() time.Time { return now }

	if h.HandleClick(13, 2).IsDoubleClick {
		t.Error("first click should not be a double click")
	}
	if !h.HandleClick(13, 2).IsDoubleClick {
		t.Error("second quick click on the same region should be a double click")
	}
	if h.HandleClick(13, 2).IsDoubleClick {
		t.Error("third click starts over")
	}

	now = now.Add(2 * doubleClickWindow)
	if h.HandleClick(13, 2).IsDoubleClick {
		t.Error("slow click should not be a double click")
	}
	if h.HandleClick(20, 2).IsDoubleClick {
		t.Error("click on a different region should not be a double click")
	}
	if res := h.HandleClick(20, 9); res.Region != nil {
		t.Errorf("miss returned region %+v", res.Region)
	}
}

func TestHandleMouse(t *testing.T) {
	tests := []struct {
		name      string
		msg       tea.MouseMsg
		wantType  ActionType
		wantID    string
		wantDelta int
	}{
		{"left press on checkbox", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 13, Y: 2}, ActionClick, "checkbox", 0},
		{"left press miss", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 50, Y: 9}, ActionNone, "", 0},
		{"wheel up", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp, X: 5, Y: 2}, ActionScrollUp, "", -3},
		{"wheel down", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown, X: 5, Y: 2}, ActionScrollDown, "", 3},
		{"hover", tea.MouseMsg{Action: tea.MouseActionMotion, X: 1, Y: 2}, ActionHover, "line", 0},
		{"hover miss", tea.MouseMsg{Action: tea.MouseActionMotion, X: 1, Y: 7}, ActionHover, "", 0},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, X: 13, Y: 2}, ActionNone, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler()
			h.HitMap = checkboxRow()

			action := h.HandleMouse(tt.msg)
			if action.Type != tt.wantType {
				t.Errorf("Type = %d, want %d", action.Type, tt.wantType)
			}
			if action.Delta != tt.wantDelta {
				t.Errorf("Delta = %d, want %d", action.Delta, tt.wantDelta)
			}
			gotID := ""
			if action.Region != nil {
				gotID = action.Region.ID
			}
			if gotID != tt.wantID {
				t.Errorf("Region = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestHandleMouse_DoubleClick(t *testing.T) {
	h := NewHandler()
	h.HitMap = checkboxRow()
	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: 13, Y: 2}

	h.HandleMouse(press)
	if action := h.HandleMouse(press); action.Type != ActionDoubleClick {
		t.Errorf("expected ActionDoubleClick, got %d", action.Type)
	}
}

func TestHandler_Clear(t *testing.T) {
	h := NewHandler()
	h.HitMap = checkboxRow()
	h.Clear()
	if h.HitMap.Test(13, 2) != nil {
		t.Error("expected no hit after clear")
	}
}
