package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stsysd/kusa/grid"
	"github.com/stsysd/kusa/view"
)

// fetchDoneMsg is sent once the widget's fetch has finished.
type fetchDoneMsg struct{}

// Model is a Bubbletea model hosting a contribution graph widget.
// Mouse presses are forwarded to the widget's listeners; a press on a day
// selects it, a press anywhere else clears the selection.
type Model struct {
	grid      *grid.Grid
	labels    Labels
	colors    []string
	widget    *view.Widget
	listeners *view.Listeners
	days      []grid.Day
	cursor    int // index into days, -1 before any keyboard movement
	width     int
	height    int
	quitting  bool
}

// NewModel creates a model for g fed by source. The widget is not mounted
// until Run.
func NewModel(g *grid.Grid, source view.Source, labels Labels, colors []string) *Model {
	listeners := view.NewListeners()
	bounds := func() view.Rect {
		x, y, w, h := GridBounds()
		return view.Rect{X: x, Y: y, W: w, H: h}
	}
	return &Model{
		grid:      g,
		labels:    labels,
		colors:    colors,
		widget:    view.NewWidget(source, listeners, bounds),
		listeners: listeners,
		days:      g.Days(),
		cursor:    -1,
		width:     80,
		height:    24,
	}
}

// Widget returns the hosted widget.
func (m *Model) Widget() *view.Widget {
	return m.widget
}

// Run mounts the widget, shows the graph full-screen with mouse support and
// unmounts when the user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	m.widget.Mount(ctx)
	defer m.widget.Unmount()

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("show tui: %w", err)
	}
	return nil
}

func waitForFetch(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return fetchDoneMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	if !m.widget.Mounted() {
		return nil
	}
	return waitForFetch(m.widget.Done())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	state := m.widget.State()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.listeners.Dispatch(view.PointerEvent{X: msg.X, Y: msg.Y})
		if day, ok := CellAt(m.grid, msg.X, msg.Y); ok {
			state.SelectDay(day.Date)
			m.cursor = m.indexOf(day.Date)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			state.ClearSelection()
		case "enter", " ":
			if m.cursor >= 0 {
				state.SelectDay(m.days[m.cursor].Date)
			}
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "left", "h":
			m.move(-grid.DaysPerWeek)
		case "right", "l":
			m.move(grid.DaysPerWeek)
		}
	}
	return m, nil
}

// move shifts the keyboard cursor by delta cells in display order. The
// first movement starts from the reference date.
func (m *Model) move(delta int) {
	if m.cursor < 0 {
		m.cursor = m.indexOf(m.grid.Today)
		if m.cursor < 0 {
			m.cursor = 0
		}
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= len(m.days) {
		return
	}
	m.cursor = next
}

func (m *Model) indexOf(date string) int {
	for i, d := range m.days {
		if d.Date == date {
			return i
		}
	}
	return -1
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	state := m.widget.State()
	f := Frame{
		Grid:   m.grid,
		Counts: state.Contributions(),
		Labels: m.labels,
		Colors: m.colors,
	}
	if sel, ok := state.Selection(); ok {
		f.Selected = sel.Date
	}
	if m.cursor >= 0 {
		f.Cursor = m.days[m.cursor].Date
	}
	return Render(f)
}
