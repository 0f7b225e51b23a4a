package ui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"glucoterm/internal/libreview"
	"glucoterm/internal/state"
)

const title = "Blood Sugar Console"

// captionLayout is the local-time format of the capture caption.
const captionLayout = "2006-01-02 03:04:05 PM MST"

// RefreshedMsg tells the model the state store has new data.
type RefreshedMsg struct{}

// Model is the bubbletea model for the glucose console. It renders the
// latest reading from the state store as a large colored figure, or a
// spinner while no reading has arrived yet.
type Model struct {
	store   *state.Store
	spinner spinner.Model
	loc     *time.Location

	width  int
	height int
}

// NewModel builds the console model around a shared state store.
// Timestamps are rendered in the process's local timezone.
func NewModel(store *state.Store) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return Model{store: store, spinner: s, loc: time.Local}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case RefreshedMsg:
		// View reads the store directly; nothing to carry over.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	snap := m.store.Snapshot()

	var content string
	if reading, ok := snap.Latest(); ok {
		content = readingView(reading, snap, m.loc)
	} else {
		content = waitingView(m.spinner.View(), snap)
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// readingView renders the latest reading: the big colored figure, the
// local capture time, and a staleness note when the last poll failed.
func readingView(reading libreview.Reading, snap state.Snapshot, loc *time.Location) string {
	band := ClassifyBand(reading.Value)
	figure := bandStyle(band).Render(RenderFigure(formatValue(reading.Value)))

	caption := captionStyle.Render(captionFor(reading, loc))

	parts := []string{
		titleStyle.Render(title),
		"",
		figure,
		"",
		caption,
	}
	switch {
	case snap.IsOffline():
		parts = append(parts, "", staleStyle.Render("api unreachable, showing previous reading"))
	case snap.LastError != nil:
		parts = append(parts, "", staleStyle.Render("last update failed, showing previous reading"))
	}
	parts = append(parts, "", helpStyle.Render("q quit"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func waitingView(spinnerView string, snap state.Snapshot) string {
	parts := []string{
		titleStyle.Render(title),
		"",
		waitingStyle.Render(spinnerView + " Waiting for the application to fetch updated results ..."),
	}
	if snap.LastError != nil {
		parts = append(parts, "", staleStyle.Render("fetch failed: "+snap.LastError.Error()))
	}
	parts = append(parts, "", helpStyle.Render("q quit"))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// captionFor describes when the reading was captured, converted from the
// API's UTC timestamp to loc.
func captionFor(reading libreview.Reading, loc *time.Location) string {
	local := reading.FactoryTimestamp.In(loc)
	return "This reading was captured at " + local.Format(captionLayout) + "."
}

// formatValue renders a glucose value without a trailing ".0" for whole
// numbers.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
