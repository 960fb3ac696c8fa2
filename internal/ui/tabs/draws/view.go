package draws

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

var formLabels = []string{"Draw Number:", "Winning Numbers:", "Bonus:", "1st Prize:"}

// View renders the draws tab.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{m.renderTitle()}

	switch {
	case m.adding:
		sections = append(sections, m.renderAddForm())
	case m.confirmDelete:
		sections = append(sections, m.renderDeleteConfirm(), m.renderTable())
	default:
		sections = append(sections, m.renderTable(), m.renderDetail())
	}

	sections = append(sections, m.renderFooter())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

// renderTitle renders the draws tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Draw History")

	sub := fmt.Sprintf("%d draws", m.state.GetDrawCount())
	if imp := m.state.GetLastImport(); imp != nil {
		sub += fmt.Sprintf(", imported %s", imp.ImportedAt.Format("2006-01-02 15:04"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(sub), "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 60)
}

// renderTable renders the draws table.
func (m *Model) renderTable() string {
	if m.state.GetDrawCount() == 0 {
		return m.renderEmptyState()
	}

	if len(m.table.Rows()) != m.state.GetDrawCount() {
		m.updateTableData()
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(m.table.View())
}

// renderEmptyState renders the empty state when no draws exist.
func (m *Model) renderEmptyState() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.SubTitleStyle.Render("No Draws Recorded"),
		"",
		styles.HelpStyle.Render("Point LOTTO_HISTORY_PATH at a history CSV or add draws by hand."),
		"",
		styles.InfoTextStyle.Render("Press 'n' to add a draw"),
		"",
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(content)
}

// renderDetail renders the selected draw with every recorded prize.
func (m *Model) renderDetail() string {
	d, ok := m.selectedDraw()
	if !ok {
		return ""
	}

	rows := []string{
		styles.CardTitleStyle.Render(fmt.Sprintf("Draw #%d", d.Number)),
		"",
		components.RenderDraw(d),
	}
	if !d.Complete() {
		rows = append(rows, styles.WarningTextStyle.Render("Some winning numbers are missing"))
	}

	label := lipgloss.NewStyle().Width(6).Foreground(styles.TextMuted)
	for _, t := range models.Tiers {
		if _, ok := d.Prize(t); ok {
			rows = append(rows, label.Render(t.String()+":")+" "+formatPrize(d, t))
		}
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderAddForm renders the add draw form.
func (m *Model) renderAddForm() string {
	cardWidth := min(max(m.width-10, 50), 80)

	rows := []string{styles.CardTitleStyle.Render("Add Draw"), ""}

	for i, in := range m.inputs {
		focused := m.focusedField == formField(i)

		label := styles.BlurredStyle.Render("  " + formLabels[i])
		inputStyle := styles.BlurredBorderStyle
		if focused {
			label = styles.FocusedStyle.Render("> " + formLabels[i])
			inputStyle = styles.FocusedBorderStyle
		}
		rows = append(rows, label, inputStyle.Width(cardWidth-10).Render(in.View()))
	}
	rows = append(rows, "")

	submitStyle := styles.ButtonInactiveStyle
	cancelStyle := styles.ButtonInactiveStyle
	if m.focusedField == fieldSubmit {
		submitStyle = styles.ButtonActiveStyle
	}
	if m.focusedField == fieldCancel {
		cancelStyle = styles.ButtonActiveStyle
	}

	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center,
		submitStyle.Render(" Add Draw "),
		"  ",
		cancelStyle.Render(" Cancel "),
	))

	if m.formErr != "" {
		rows = append(rows, "", styles.ErrorTextStyle.Render(m.formErr))
	}

	rows = append(rows, "", styles.HelpStyle.Render("Tab: next field | Enter: submit | Esc: cancel"))

	return styles.ModalContentStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDeleteConfirm renders the delete confirmation dialog.
func (m *Model) renderDeleteConfirm() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		styles.WarningTextStyle.Bold(true).Render("Delete Draw?"),
		"",
		"Are you sure you want to delete:",
		styles.ErrorTextStyle.Render(fmt.Sprintf("Draw #%d", m.deleteNumber)),
		"",
		"The history file will be rewritten.",
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			styles.ButtonActiveStyle.Render(" (Y)es "),
			"  ",
			styles.ButtonInactiveStyle.Render(" (N)o "),
		),
		"",
	)

	return styles.CenterHorizontal(
		styles.ModalContentStyle.Width(50).Render(content),
		m.width,
	)
}

// renderFooter renders the footer with keyboard shortcuts.
func (m *Model) renderFooter() string {
	var shortcuts []string

	switch {
	case m.adding:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Tab") + " next",
			styles.HelpKeyStyle.Render("Enter") + " submit",
			styles.HelpKeyStyle.Render("Esc") + " cancel",
		}
	case m.confirmDelete:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("Y") + " confirm",
			styles.HelpKeyStyle.Render("N") + " cancel",
		}
	default:
		shortcuts = []string{
			styles.HelpKeyStyle.Render("n") + " add",
			styles.HelpKeyStyle.Render("d") + " delete",
			styles.HelpKeyStyle.Render("e") + " export",
			styles.HelpKeyStyle.Render("R") + " reload",
		}
	}

	footer := ""
	for i, s := range shortcuts {
		if i > 0 {
			footer += styles.HelpSeparatorStyle.Render(" | ")
		}
		footer += s
	}

	return lipgloss.NewStyle().
		MarginTop(1).
		Foreground(styles.TextMuted).
		Render(footer)
}
