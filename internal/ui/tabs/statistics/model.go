// Package statistics provides the number and pattern statistics tab.
package statistics

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

// sumWindow is how many recent draws the sum charts cover.
const sumWindow = 60

// keyMap defines the key bindings specific to the statistics tab.
type keyMap struct {
	Refresh key.Binding
	Chart   key.Binding
	Up      key.Binding
	Down    key.Binding
}

// defaultKeyMap returns the default key bindings for the statistics tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Chart: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle chart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// chartMode selects the number chart.
type chartMode int

const (
	chartLines chartMode = iota
	chartHeatmap
)

// Model represents the statistics tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	spinner  components.LoadingSpinner
	width    int
	height   int
	chart    chartMode
}

// New creates a new statistics model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		spinner:  components.NewSpinner("Analysing draws..."),
	}
}

// Init initializes the statistics tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the statistics tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, func() tea.Msg {
				return app.RefreshMsg{Resource: app.ResourceStats}
			}
		case key.Matches(msg, m.keys.Chart):
			if m.chart == chartLines {
				m.chart = chartHeatmap
			} else {
				m.chart = chartLines
			}
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case app.StatisticsLoadedMsg:
		m.viewport.GotoTop()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// SetSize sets the available size for the statistics tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Chart,
		m.keys.Refresh,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down},
		{m.keys.Chart, m.keys.Refresh},
	}
}
