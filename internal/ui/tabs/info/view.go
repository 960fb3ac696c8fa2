package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/lotto-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderHistoryCard(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("History, configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderHistoryCard renders where the draws came from.
func (m *Model) renderHistoryCard() string {
	rows := []string{styles.CardTitleStyle.Render("History"), ""}

	rows = append(rows, m.renderConfigRow("Draws", strconv.Itoa(m.state.GetDrawCount())))
	if latest, ok := m.state.GetLatestDraw(); ok {
		rows = append(rows, m.renderConfigRow("Latest Draw", fmt.Sprintf("#%d", latest.Number)))
	}

	if imp := m.state.GetLastImport(); imp != nil {
		rows = append(rows,
			m.renderConfigRow("Imported From", imp.SourcePath),
			m.renderConfigRow("Imported At", imp.ImportedAt.Format("2006-01-02 15:04:05")),
			m.renderConfigRow("Checksum", shorten(imp.Checksum, 16)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("No import recorded yet"))
	}

	if rec := m.state.GetRecommendation(); rec != nil {
		rows = append(rows, m.renderConfigRow("Fingerprint", shorten(rec.Fingerprint, 16)))
	}

	rows = append(rows, "", styles.HelpStyle.Render("Press 'r' to re-import the history file"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigCard renders the active configuration.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if c := m.config; c != nil {
		logPath := c.LogPath
		if logPath == "" {
			logPath = "disabled"
		}
		rows = append(rows,
			m.renderConfigRow("History File", c.HistoryPath),
			m.renderConfigRow("Database", c.DatabasePath),
			m.renderConfigRow("Log File", logPath),
			m.renderConfigRow("Log Level", c.LogLevel),
			"",
			m.renderConfigRow("Default Model", c.DefaultModelType),
			m.renderConfigRow("Default Sets", strconv.Itoa(c.DefaultNumSets)),
			m.renderConfigRow("Candidate Pool", strconv.Itoa(c.CandidatePoolSize)),
			m.renderConfigRow("Clusters", fmt.Sprintf("k=%d, %d restarts, %d iterations, seed %d",
				c.ClusterCount, c.ClusterRestarts, c.ClusterMaxIterations, c.ClusterSeed)),
			m.renderConfigRow("Random Seed", seedText(c.RandomSeed)),
			"",
			m.renderConfigRow("Watch History", onOff(c.WatchHistory)),
			m.renderConfigRow("Notify New Draw", onOff(c.NotifyNewDraw)),
		)
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Lotto Dashboard TUI"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func seedText(seed uint64) string {
	if seed == 0 {
		return "clock"
	}
	return strconv.FormatUint(seed, 10)
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
