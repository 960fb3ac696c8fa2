// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Loading resources.
const (
	ResourceInitial  = "initial"
	ResourceHistory  = "history"
	ResourceStats    = "stats"
	ResourceGenerate = "generate"
)

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial  bool
	History  bool
	Stats    bool
	Generate bool
}

// State is shared by every tab.
type State struct {
	mu sync.RWMutex

	History        models.DrawHistory
	LastImport     *models.HistoryImport
	Overview       *recommend.Overview
	Recommendation *recommend.Recommendation

	Loading LoadingState

	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state waiting for its initial load.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceInitial:
		s.Loading.Initial = loading
	case ResourceHistory:
		s.Loading.History = loading
	case ResourceStats:
		s.Loading.Stats = loading
	case ResourceGenerate:
		s.Loading.Generate = loading
	}
}

// IsLoading reports whether a single resource is loading.
func (s *State) IsLoading(resource string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch resource {
	case ResourceInitial:
		return s.Loading.Initial
	case ResourceHistory:
		return s.Loading.History
	case ResourceStats:
		return s.Loading.Stats
	case ResourceGenerate:
		return s.Loading.Generate
	}
	return false
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.History ||
		s.Loading.Stats ||
		s.Loading.Generate
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// GetLoadingResources returns a list of currently loading resources.
func (s *State) GetLoadingResources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var resources []string
	if s.Loading.Initial {
		resources = append(resources, ResourceInitial)
	}
	if s.Loading.History {
		resources = append(resources, ResourceHistory)
	}
	if s.Loading.Stats {
		resources = append(resources, ResourceStats)
	}
	if s.Loading.Generate {
		resources = append(resources, ResourceGenerate)
	}
	return resources
}

// SetHistory replaces the draw history.
func (s *State) SetHistory(history models.DrawHistory, lastImport *models.HistoryImport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.History = history
	s.LastImport = lastImport
	s.LastUpdated = time.Now()
}

// GetHistory returns the draw history, oldest first.
func (s *State) GetHistory() models.DrawHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.History
}

// GetDrawCount returns the number of draws.
func (s *State) GetDrawCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.History)
}

// GetLatestDraw returns the newest draw.
func (s *State) GetLatestDraw() (models.Draw, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.History.Latest()
}

// GetLastImport returns the most recent history import.
func (s *State) GetLastImport() *models.HistoryImport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastImport
}

// SetOverview updates the statistics overview.
func (s *State) SetOverview(o *recommend.Overview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Overview = o
}

// GetOverview returns the statistics overview.
func (s *State) GetOverview() *recommend.Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Overview
}

// SetRecommendation stores the latest generated batch.
func (s *State) SetRecommendation(r *recommend.Recommendation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Recommendation = r
}

// GetRecommendation returns the latest generated batch.
func (s *State) GetRecommendation() *recommend.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Recommendation
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = s.activeLocked()
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

func (s *State) activeLocked() []Notification {
	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the history was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
