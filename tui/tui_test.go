package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stsysd/kusa/activity"
	"github.com/stsysd/kusa/grid"
	"github.com/stsysd/kusa/locale"
	"github.com/stsysd/kusa/view"
)

func testGrid() *grid.Grid {
	return grid.Build(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil)
}

func english(t *testing.T) *locale.Formatter {
	t.Helper()
	f, err := locale.New(locale.English)
	if err != nil {
		t.Fatalf("Failed to create formatter: %v", err)
	}
	return f
}

func staticSource(c activity.Contributions) view.Source {
	return view.SourceFunc(func(ctx context.Context) (activity.Contributions, error) {
		return c, nil
	})
}

// mountedModel returns a model whose fetch has completed.
func mountedModel(t *testing.T, c activity.Contributions) *Model {
	t.Helper()
	m := NewModel(testGrid(), staticSource(c), english(t), nil)
	m.Widget().Mount(context.Background())
	t.Cleanup(m.Widget().Unmount)
	<-m.Widget().Done()
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestCellAt_RoundTrip(t *testing.T) {
	g := testGrid()
	for m := range grid.MonthsPerGrid {
		for w := range grid.WeeksPerMonth {
			for d := range grid.DaysPerWeek {
				x, y := CellPosition(m, w, d)
				day, ok := CellAt(g, x, y)
				if !ok {
					t.Fatalf("No cell at %d,%d", x, y)
				}
				if want := g.Months[m].Weeks[w].Days[d]; day != want {
					t.Fatalf("At %d,%d expected %s, got %s", x, y, want.Date, day.Date)
				}
				// セルの右隣（区切りの空白）もクリック可能
				if day2, ok := CellAt(g, x+1, y); !ok || day2 != day {
					t.Fatalf("Expected spacer at %d,%d to map to %s", x+1, y, day.Date)
				}
			}
		}
	}
}

func TestCellAt_Outside(t *testing.T) {
	g := testGrid()
	tests := []struct {
		name string
		x, y int
	}{
		{"weekday label", 0, GridTop},
		{"month header", LabelWidth, MonthRow},
		{"below grid", LabelWidth, GridTop + grid.DaysPerWeek},
		{"month gap", LabelWidth + grid.WeeksPerMonth*CellWidth, GridTop},
		{"right of grid", LabelWidth + grid.MonthsPerGrid*MonthWidth, GridTop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if day, ok := CellAt(g, tt.x, tt.y); ok {
				t.Errorf("Expected no cell, got %s", day.Date)
			}
		})
	}
}

func TestRender_Layout(t *testing.T) {
	g := testGrid()
	out := Render(Frame{
		Grid:   g,
		Counts: activity.Contributions{"2024-01-01": 15},
		Labels: english(t),
	})
	lines := strings.Split(out, "\n")

	if len(lines) != TooltipRow {
		t.Fatalf("Expected %d lines without a tooltip, got %d", TooltipRow, len(lines))
	}
	if lines[TitleRow] != "15 contributions in the last year" {
		t.Errorf("Unexpected title %q", lines[TitleRow])
	}
	if !strings.HasPrefix(lines[MonthRow], "    Mar") {
		t.Errorf("Unexpected month header %q", lines[MonthRow])
	}
	if !strings.HasPrefix(lines[GridTop], "Mon ") || !strings.HasPrefix(lines[GridTop+6], "Sun ") {
		t.Error("Expected Monday-first weekday labels")
	}
	if !strings.Contains(lines[LegendRow], "Less") || !strings.Contains(lines[LegendRow], "More") {
		t.Errorf("Unexpected legend %q", lines[LegendRow])
	}

	// 未来の日付は点で描画される (2024-03-16 は土曜日、最終月の3週目)
	x, y := CellPosition(grid.MonthsPerGrid-1, 2, 5)
	if g.Months[grid.MonthsPerGrid-1].Weeks[2].Days[5].Date != "2024-03-16" {
		t.Fatal("Unexpected grid layout")
	}
	if got := string([]rune(lines[y])[x]); got != glyphFuture {
		t.Errorf("Expected future glyph at 2024-03-16, got %q", got)
	}
}

func TestRender_Selection(t *testing.T) {
	g := testGrid()
	out := Render(Frame{
		Grid:     g,
		Counts:   activity.Contributions{"2024-01-01": 15},
		Labels:   english(t),
		Selected: "2024-01-01",
	})
	lines := strings.Split(out, "\n")

	if len(lines) != TooltipRow+1 {
		t.Fatalf("Expected tooltip line, got %d lines", len(lines))
	}
	if !strings.Contains(lines[TooltipRow], "15 contributions, Monday, January 1, 2024") {
		t.Errorf("Unexpected tooltip %q", lines[TooltipRow])
	}
	if strings.Count(out, glyphSelected) != 1 {
		t.Error("Expected exactly one selected cell")
	}
}

func TestModel_ClickSelectsAndOutsideClears(t *testing.T) {
	m := mountedModel(t, activity.Contributions{"2024-01-01": 15})
	g := m.grid

	// 2024-01-01 の位置を探す
	var x, y int
	found := false
	for mi, month := range g.Months {
		for wi, week := range month.Weeks {
			for di, day := range week.Days {
				if day.Date == "2024-01-01" {
					x, y = CellPosition(mi, wi, di)
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatal("2024-01-01 not in grid")
	}

	m.Update(press(x, y))
	sel, ok := m.Widget().State().Selection()
	if !ok || sel.Date != "2024-01-01" || sel.Contributions != 15 {
		t.Fatalf("Expected 2024-01-01 selected with 15, got %+v (%v)", sel, ok)
	}
	if !strings.Contains(m.View(), "15 contributions, Monday, January 1, 2024") {
		t.Error("Expected tooltip in view")
	}

	// 別の日をクリックすると選択が移る
	m.Update(press(x, y+1))
	if sel, _ := m.Widget().State().Selection(); sel.Date != "2024-01-02" {
		t.Errorf("Expected 2024-01-02 selected, got %s", sel.Date)
	}

	// グリッド外のクリックで選択解除
	m.Update(press(0, LegendRow))
	if _, ok := m.Widget().State().Selection(); ok {
		t.Error("Expected outside click to clear the selection")
	}

	// 右クリックは無視
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if _, ok := m.Widget().State().Selection(); ok {
		t.Error("Expected right click to be ignored")
	}
}

func TestModel_Keyboard(t *testing.T) {
	m := mountedModel(t, nil)

	// 最初の移動でカーソルは今日に置かれる
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := m.Widget().State().Selection()
	if !ok || sel.Date != "2024-03-15" {
		t.Fatalf("Expected today selected, got %+v", sel)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel, _ := m.Widget().State().Selection(); sel.Date != "2024-03-08" {
		t.Errorf("Expected one week earlier, got %s", sel.Date)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if sel, _ := m.Widget().State().Selection(); sel.Date != "2024-03-09" {
		t.Errorf("Expected next day, got %s", sel.Date)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Widget().State().Selection(); ok {
		t.Error("Expected esc to clear the selection")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return tea.Quit cmd")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestModel_FetchFailureRendersNone(t *testing.T) {
	failing := view.SourceFunc(func(ctx context.Context) (activity.Contributions, error) {
		return nil, errors.New("unreachable")
	})
	m := NewModel(testGrid(), failing, english(t), nil)
	m.Widget().Mount(context.Background())
	defer m.Widget().Unmount()

	msg := m.Init()()
	if _, ok := msg.(fetchDoneMsg); !ok {
		t.Fatalf("Expected fetchDoneMsg, got %T", msg)
	}
	if !strings.HasPrefix(m.View(), "0 contributions in the last year") {
		t.Error("Expected empty graph after a failed fetch")
	}
}

func TestModel_InitUnmounted(t *testing.T) {
	m := NewModel(testGrid(), staticSource(nil), english(t), nil)
	if m.Init() != nil {
		t.Error("Expected no command before mount")
	}
}
