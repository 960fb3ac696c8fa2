package app

import (
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// HistoryLoadedMsg contains the draw history.
type HistoryLoadedMsg struct {
	History    models.DrawHistory
	LastImport *models.HistoryImport
}

// StatisticsLoadedMsg contains the number and pattern overview.
type StatisticsLoadedMsg struct {
	Overview *recommend.Overview
	Error    error
}

// GenerateMsg requests a batch of combinations.
type GenerateMsg struct {
	Request recommend.Request
}

// RecommendationMsg contains a generated batch.
type RecommendationMsg struct {
	Recommendation *recommend.Recommendation
	Error          error
}

// EvaluateMsg requests a historical check of a combination.
type EvaluateMsg struct {
	Combination models.Combination
}

// EvaluationMsg contains the result of a historical check.
type EvaluationMsg struct {
	Evaluation *recommend.Evaluation
	Error      error
}

// AddDrawMsg requests storing a new draw.
type AddDrawMsg struct {
	Draw models.Draw
}

// AddDrawResultMsg contains the result of adding a draw.
type AddDrawResultMsg struct {
	Number int
	Error  error
}

// DeleteDrawMsg requests deletion of a draw.
type DeleteDrawMsg struct {
	Number int
}

// DeleteDrawResultMsg contains the result of a draw deletion.
type DeleteDrawResultMsg struct {
	Number int
	Error  error
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "history", "stats"
}

// ReloadMsg requests a re-import of the history file.
type ReloadMsg struct{}

// ReloadResultMsg contains the result of a history re-import.
type ReloadResultMsg struct {
	Imported int
	Error    error
}

// ExportMsg requests writing the history to a CSV file.
type ExportMsg struct {
	Path string
}

// ExportResultMsg contains the result of an export operation.
type ExportResultMsg struct {
	Path  string
	Error error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// HistoryChangedMsg is forwarded to tabs after the history changed on disk
// or through an edit.
type HistoryChangedMsg struct {
	Event services.HistoryChangedEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// FitProgressMsg reports restarts completed by a running cluster fit.
type FitProgressMsg struct {
	Done  int
	Total int
}
