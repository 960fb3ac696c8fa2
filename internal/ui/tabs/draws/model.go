// Package draws provides the draw history management tab.
package draws

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// formField represents which field is currently focused in the add form.
type formField int

const (
	fieldNumber formField = iota
	fieldWinning
	fieldBonus
	fieldPrize
	fieldSubmit
	fieldCancel
	fieldCount
)

// keyMap defines the key bindings specific to the draws tab.
type keyMap struct {
	Delete key.Binding
	Add    key.Binding
	Export key.Binding
	Escape key.Binding
}

// defaultKeyMap returns the default key bindings for the draws tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Add: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "add draw"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model represents the draws tab state.
type Model struct {
	state  *app.State
	config *config.Config
	table  table.Model
	width  int
	height int
	keys   keyMap

	spinner components.LoadingSpinner

	adding       bool
	focusedField formField
	inputs       []textinput.Model
	formErr      string

	confirmDelete bool
	deleteNumber  int

	// now is replaced in tests.
	now func() time.Time
}

// New creates a new draws model.
func New(state *app.State, cfg *config.Config) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	return &Model{
		state:   state,
		config:  cfg,
		table:   t,
		keys:    defaultKeyMap(),
		spinner: components.NewSpinner("Loading draws..."),
		inputs:  newInputs(),
		now:     time.Now,
	}
}

func newInputs() []textinput.Model {
	specs := []struct {
		placeholder string
		limit       int
	}{
		{"1153", 8},
		{"3 8 19 27 33 41", 40},
		{"5", 2},
		{"optional, e.g. 2500000000", 20},
	}

	inputs := make([]textinput.Model, len(specs))
	for i, spec := range specs {
		in := textinput.New()
		in.Placeholder = spec.placeholder
		in.CharLimit = spec.limit
		in.Width = 40
		inputs[i] = in
	}
	return inputs
}

func columns(width int) []table.Column {
	numbersWidth := min(max(width-50, 24), 40)
	return []table.Column{
		{Title: "Draw", Width: 8},
		{Title: "Winning Numbers", Width: numbersWidth},
		{Title: "Bonus", Width: 6},
		{Title: "1st Prize", Width: 18},
	}
}

// Init initializes the draws tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// CapturingInput reports whether the add form owns the keyboard.
func (m *Model) CapturingInput() bool {
	return m.adding || m.confirmDelete
}

// Update handles messages for the draws tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case m.adding:
			return m, m.updateAddForm(keyMsg)
		case m.confirmDelete:
			return m, m.updateDeleteConfirm(keyMsg)
		}
		return m, m.handleKeyMsg(keyMsg)
	}

	switch msg.(type) {
	case app.HistoryLoadedMsg, app.HistoryChangedMsg:
		m.updateTableData()
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Delete):
		if number, ok := m.selectedNumber(); ok {
			m.confirmDelete = true
			m.deleteNumber = number
		}
		return nil

	case key.Matches(msg, m.keys.Add):
		m.openForm()
		return textinput.Blink

	case key.Matches(msg, m.keys.Export):
		path := m.exportPath()
		return func() tea.Msg {
			return app.ExportMsg{Path: path}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) openForm() {
	m.adding = true
	m.formErr = ""
	m.focusedField = fieldNumber
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	if latest, ok := m.state.GetLatestDraw(); ok {
		m.inputs[fieldNumber].SetValue(strconv.Itoa(latest.Number + 1))
	}
	m.updateFormFocus()
}

func (m *Model) closeForm() {
	m.adding = false
	m.formErr = ""
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// updateAddForm handles the add draw form.
func (m *Model) updateAddForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return nil

	case "tab", "down":
		m.focusedField = (m.focusedField + 1) % fieldCount
		m.updateFormFocus()
		return textinput.Blink

	case "shift+tab", "up":
		m.focusedField = (m.focusedField - 1 + fieldCount) % fieldCount
		m.updateFormFocus()
		return textinput.Blink

	case "enter":
		switch m.focusedField {
		case fieldCancel:
			m.closeForm()
			return nil
		case fieldSubmit:
			return m.submit()
		default:
			m.focusedField++
			m.updateFormFocus()
			return textinput.Blink
		}
	}

	if int(m.focusedField) < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	draw, err := m.parseForm()
	if err != nil {
		m.formErr = err.Error()
		return nil
	}
	m.closeForm()
	return func() tea.Msg {
		return app.AddDrawMsg{Draw: draw}
	}
}

// parseForm builds a draw from the form fields.
func (m *Model) parseForm() (models.Draw, error) {
	var d models.Draw

	number, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldNumber].Value()))
	if err != nil || number < 1 {
		return d, errors.New("draw number must be a positive integer")
	}
	d.Number = number

	winning, err := models.ParseCombination(m.inputs[fieldWinning].Value())
	if err != nil {
		return d, err
	}
	d.Winning = winning

	bonus, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldBonus].Value()))
	if err != nil {
		return d, errors.New("bonus must be a number")
	}
	d.Bonus = bonus

	if raw := strings.ReplaceAll(strings.TrimSpace(m.inputs[fieldPrize].Value()), ",", ""); raw != "" {
		prize, err := decimal.NewFromString(raw)
		if err != nil || prize.IsNegative() {
			return d, fmt.Errorf("invalid prize amount %q", raw)
		}
		d.Prizes = map[models.Tier]decimal.Decimal{models.TierFirst: prize}
	}

	if _, exists := m.state.GetHistory().Find(number); exists {
		return d, fmt.Errorf("draw %d already exists", number)
	}

	return d, d.Validate()
}

// updateDeleteConfirm handles the delete confirmation.
func (m *Model) updateDeleteConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.confirmDelete = false
		number := m.deleteNumber
		m.deleteNumber = 0
		return func() tea.Msg {
			return app.DeleteDrawMsg{Number: number}
		}
	case "n", "N", "esc":
		m.confirmDelete = false
		m.deleteNumber = 0
	}
	return nil
}

// updateFormFocus updates which form field is focused.
func (m *Model) updateFormFocus() {
	for i := range m.inputs {
		if formField(i) == m.focusedField {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// newestFirst returns the history ordered by descending draw number.
func (m *Model) newestFirst() models.DrawHistory {
	history := m.state.GetHistory().Sorted()
	slices.Reverse(history)
	return history
}

// updateTableData updates the table with the current history.
func (m *Model) updateTableData() {
	history := m.newestFirst()
	rows := make([]table.Row, 0, len(history))

	for _, d := range history {
		rows = append(rows, table.Row{
			strconv.Itoa(d.Number),
			formatNumbers(d.Winning[:]),
			formatNumber(d.Bonus),
			formatPrize(d, models.TierFirst),
		})
	}

	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) selectedNumber() (int, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(row[0])
	return n, err == nil
}

func (m *Model) selectedDraw() (models.Draw, bool) {
	number, ok := m.selectedNumber()
	if !ok {
		return models.Draw{}, false
	}
	return m.state.GetHistory().Find(number)
}

// exportPath places exports beside the history file.
func (m *Model) exportPath() string {
	dir := "."
	if m.config != nil && m.config.HistoryPath != "" {
		dir = filepath.Dir(m.config.HistoryPath)
	}
	name := fmt.Sprintf("lotto-export-%s.csv", m.now().Format("20060102-150405"))
	return filepath.Join(dir, name)
}

func formatNumber(n int) string {
	if n == 0 {
		return "--"
	}
	return fmt.Sprintf("%2d", n)
}

func formatNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = formatNumber(n)
	}
	return strings.Join(parts, " ")
}

func formatPrize(d models.Draw, t models.Tier) string {
	prize, ok := d.Prize(t)
	if !ok {
		return "-"
	}
	return prize.StringFixed(0)
}

// SetSize sets the available size for the draws tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-16, 5))
	m.table.SetColumns(columns(width))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.adding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
			m.keys.Escape,
		}
	}
	return []key.Binding{
		m.keys.Add,
		m.keys.Delete,
		m.keys.Export,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Add, m.keys.Delete},
		{m.keys.Export, m.keys.Escape},
	}
}
