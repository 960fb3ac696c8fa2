// Package recommend provides the recommendation tab for the Lotto Dashboard TUI.
package recommend

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	svc "github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

const defaultNumSets = 5

// keyMap defines the key bindings specific to the recommend tab.
type keyMap struct {
	Generate  key.Binding
	ModelType key.Binding
	More      key.Binding
	Fewer     key.Binding
	Check     key.Binding
	Escape    key.Binding
}

// defaultKeyMap returns the default key bindings for the recommend tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "generate"),
		),
		ModelType: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch model"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more sets"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer sets"),
		),
		Check: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "check numbers"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the recommend tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	viewport viewport.Model
	spinner  components.LoadingSpinner
	fit      components.ProgressBar
	width    int
	height   int

	modelType models.ModelType
	numSets   int

	checking   bool
	checkInput textinput.Model
	evaluation *svc.Evaluation
	checkErr   string

	fitting bool
}

// New creates a new recommend model. Model type and set count start from
// the configured defaults.
func New(state *app.State, cfg *config.Config) *Model {
	input := textinput.New()
	input.Placeholder = "1 7 13 22 38 45"
	input.CharLimit = 40
	input.Width = 30

	fit := components.NewProgressBar(30)
	fit.SetLabel("Fitting clusters")

	m := &Model{
		state:      state,
		keys:       defaultKeyMap(),
		viewport:   viewport.New(0, 0),
		spinner:    components.NewSpinner("Generating..."),
		fit:        fit,
		modelType:  models.ModelStatistical,
		numSets:    defaultNumSets,
		checkInput: input,
	}
	if cfg != nil {
		if mt := models.ModelType(cfg.DefaultModelType); mt.Valid() {
			m.modelType = mt
		}
		if cfg.DefaultNumSets > 0 {
			m.numSets = min(cfg.DefaultNumSets, svc.MaxNumSets)
		}
	}
	return m
}

// Init initializes the recommend tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// CapturingInput reports whether the check input owns the keyboard.
func (m *Model) CapturingInput() bool {
	return m.checking
}

// Update handles messages for the recommend tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.checking {
			return m, m.updateCheckInput(msg)
		}
		cmds = append(cmds, m.handleKeyMsg(msg))

	case app.RecommendationMsg:
		m.fitting = false

	case app.EvaluationMsg:
		if msg.Error != nil {
			m.checkErr = msg.Error.Error()
			m.evaluation = nil
		} else {
			m.checkErr = ""
			m.evaluation = msg.Evaluation
		}

	case app.HistoryChangedMsg:
		m.evaluation = nil

	case app.FitProgressMsg:
		m.fitting = msg.Done < msg.Total
		cmds = append(cmds, m.fit.SetProgress(msg.Done, msg.Total))

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.fit, cmd = m.fit.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Generate):
		req := svc.Request{ModelType: m.modelType, NumSets: m.numSets}
		return func() tea.Msg {
			return app.GenerateMsg{Request: req}
		}
	case key.Matches(msg, m.keys.ModelType):
		m.modelType = m.modelType.Next()
	case key.Matches(msg, m.keys.More):
		m.numSets = min(m.numSets+1, svc.MaxNumSets)
	case key.Matches(msg, m.keys.Fewer):
		m.numSets = max(m.numSets-1, 1)
	case key.Matches(msg, m.keys.Check):
		m.checking = true
		m.checkErr = ""
		m.checkInput.SetValue("")
		m.checkInput.Focus()
		return textinput.Blink
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// updateCheckInput handles keys while the check input is focused.
func (m *Model) updateCheckInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.checking = false
		m.checkInput.Blur()
		return nil

	case "enter":
		combo, err := models.ParseCombination(m.checkInput.Value())
		if err != nil {
			m.checkErr = err.Error()
			return nil
		}
		m.checking = false
		m.checkErr = ""
		m.checkInput.Blur()
		return func() tea.Msg {
			return app.EvaluateMsg{Combination: combo}
		}
	}

	var cmd tea.Cmd
	m.checkInput, cmd = m.checkInput.Update(msg)
	return cmd
}

// SetSize sets the available size for the recommend tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.fit.SetWidth(max(width-60, 10))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.checking {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Generate,
		m.keys.ModelType,
		m.keys.Check,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Generate, m.keys.ModelType},
		{m.keys.More, m.keys.Fewer},
		{m.keys.Check, m.keys.Escape},
	}
}
