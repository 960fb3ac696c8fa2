package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadInitialData returns a command that loads all initial data.
func loadInitialData(mgr *services.Manager) tea.Cmd {
	return tea.Batch(
		loadHistoryCmd(mgr),
		loadStatisticsCmd(mgr),
	)
}

// loadHistoryCmd returns a command that reads the draw history.
func loadHistoryCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		return HistoryLoadedMsg{
			History:    mgr.History(),
			LastImport: mgr.LastImport(),
		}
	}
}

// loadStatisticsCmd returns a command that computes the statistics overview.
func loadStatisticsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		overview, err := mgr.Statistics()
		return StatisticsLoadedMsg{Overview: overview, Error: err}
	}
}

// generateCmd returns a command that generates combinations.
func generateCmd(mgr *services.Manager, req recommend.Request) tea.Cmd {
	return func() tea.Msg {
		rec, err := mgr.Generate(req)
		return RecommendationMsg{Recommendation: rec, Error: err}
	}
}

// evaluateCmd returns a command that checks a combination against the history.
func evaluateCmd(mgr *services.Manager, c models.Combination) tea.Cmd {
	return func() tea.Msg {
		ev, err := mgr.Evaluate(c)
		return EvaluationMsg{Evaluation: ev, Error: err}
	}
}

// addDrawCmd returns a command that stores a draw.
func addDrawCmd(mgr *services.Manager, d models.Draw) tea.Cmd {
	return func() tea.Msg {
		return AddDrawResultMsg{Number: d.Number, Error: mgr.AddDraw(d)}
	}
}

// deleteDrawCmd returns a command that deletes a draw.
func deleteDrawCmd(mgr *services.Manager, number int) tea.Cmd {
	return func() tea.Msg {
		return DeleteDrawResultMsg{Number: number, Error: mgr.DeleteDraw(number)}
	}
}

// reloadCmd returns a command that re-imports the history file.
func reloadCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		n, err := mgr.Reload()
		return ReloadResultMsg{Imported: n, Error: err}
	}
}

// exportCmd returns a command that writes the history to path.
func exportCmd(mgr *services.Manager, path string) tea.Cmd {
	return func() tea.Msg {
		return ExportResultMsg{Path: path, Error: mgr.Export(path)}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// delayedCmd returns a command that sends a message after a delay.
func delayedCmd(delay time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return msg
	})
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// DefaultTick returns a tick command with the default interval.
func (c *Commands) DefaultTick() tea.Cmd {
	return defaultTickCmd()
}

// LoadInitialData returns a command that loads all initial data.
func (c *Commands) LoadInitialData() tea.Cmd {
	if c.manager == nil {
		return nil
	}
	return loadInitialData(c.manager)
}

// Generate returns a command that generates combinations.
func (c *Commands) Generate(req recommend.Request) tea.Cmd {
	if c.manager == nil {
		return notifyErrorCmd("services not initialized")
	}
	return generateCmd(c.manager, req)
}

// Evaluate returns a command that checks a combination.
func (c *Commands) Evaluate(combo models.Combination) tea.Cmd {
	if c.manager == nil {
		return notifyErrorCmd("services not initialized")
	}
	return evaluateCmd(c.manager, combo)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}

// Quit returns a command that quits the application.
func (c *Commands) Quit() tea.Cmd {
	return tea.Quit
}

// Delayed returns a command that sends a message after a delay.
func (c *Commands) Delayed(delay time.Duration, msg tea.Msg) tea.Cmd {
	return delayedCmd(delay, msg)
}

// Batch combines multiple commands into one.
func (c *Commands) Batch(cmds ...tea.Cmd) tea.Cmd {
	return tea.Batch(cmds...)
}

func errorText(action string, err error) string {
	return fmt.Sprintf("%s: %v", action, err)
}
