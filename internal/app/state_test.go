package app

import (
	"testing"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

func TestNewState(t *testing.T) {
	state := NewState()
	if state == nil {
		t.Fatal("NewState returned nil")
	}
	if !state.IsInitialLoading() {
		t.Error("Initial loading should be true")
	}
	if state.GetDrawCount() != 0 {
		t.Error("History should be empty")
	}
	if len(state.GetNotifications()) != 0 {
		t.Error("Notifications should be empty")
	}
}

func TestState_SetLoading(t *testing.T) {
	state := NewState()

	state.SetLoading(ResourceInitial, false)
	if state.AnyLoading() {
		t.Error("Nothing should be loading")
	}

	resources := []string{ResourceHistory, ResourceStats, ResourceGenerate}
	for _, r := range resources {
		state.SetLoading(r, true)
		if !state.IsLoading(r) {
			t.Errorf("%s should be loading", r)
		}
	}

	if got := state.GetLoadingResources(); len(got) != 3 {
		t.Errorf("GetLoadingResources() = %v, want 3 entries", got)
	}

	for _, r := range resources {
		state.SetLoading(r, false)
	}
	if state.AnyLoading() {
		t.Error("Nothing should be loading after reset")
	}

	state.SetLoading("unknown", true)
	if state.AnyLoading() || state.IsLoading("unknown") {
		t.Error("Unknown resource should be ignored")
	}
}

func TestState_History(t *testing.T) {
	state := NewState()

	if _, ok := state.GetLatestDraw(); ok {
		t.Error("GetLatestDraw should report false for empty history")
	}

	history := models.DrawHistory{
		{Number: 1, Winning: [6]int{1, 2, 3, 4, 5, 6}, Bonus: 7},
		{Number: 2, Winning: [6]int{8, 9, 10, 11, 12, 13}, Bonus: 14},
	}
	imp := &models.HistoryImport{ID: 1, DrawCount: 2}
	state.SetHistory(history, imp)

	if state.GetDrawCount() != 2 {
		t.Errorf("GetDrawCount() = %d, want 2", state.GetDrawCount())
	}
	latest, ok := state.GetLatestDraw()
	if !ok || latest.Number != 2 {
		t.Errorf("GetLatestDraw() = %d, %v", latest.Number, ok)
	}
	if state.GetLastImport() != imp {
		t.Error("GetLastImport should return the stored import")
	}
	if state.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}
	if state.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should not be negative")
	}
}

func TestState_OverviewAndRecommendation(t *testing.T) {
	state := NewState()
	if state.GetOverview() != nil || state.GetRecommendation() != nil {
		t.Fatal("Overview and recommendation should start nil")
	}

	overview := &recommend.Overview{TotalDraws: 3}
	state.SetOverview(overview)
	if state.GetOverview().TotalDraws != 3 {
		t.Error("Overview not stored")
	}

	rec := &recommend.Recommendation{ModelType: models.ModelKMeans}
	state.SetRecommendation(rec)
	if state.GetRecommendation().ModelType != models.ModelKMeans {
		t.Error("Recommendation not stored")
	}
}

func TestState_Notifications(t *testing.T) {
	state := NewState()

	id := state.AddNotification(NotificationSuccess, "Test message", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := state.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "Test message" {
		t.Fatalf("GetNotifications() = %v", notifs)
	}

	state.RemoveNotification(id)
	if len(state.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}

	for range 15 {
		state.AddNotification(NotificationInfo, "spam", 0)
	}
	if got := len(state.GetNotifications()); got != maxNotifications {
		t.Errorf("Notifications = %d, want %d", got, maxNotifications)
	}

	state.ClearAllNotifications()
	if len(state.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications should remove everything")
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	state := NewState()

	state.AddNotification(NotificationInfo, "expired", time.Nanosecond)
	state.AddNotification(NotificationInfo, "persistent", 0)
	time.Sleep(time.Millisecond)

	state.ClearExpiredNotifications()

	notifs := state.GetNotifications()
	if len(notifs) != 1 || notifs[0].Message != "persistent" {
		t.Errorf("GetNotifications() = %v, want only persistent", notifs)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	state := NewState()

	state.SetLoadingNotification("Loading...")
	state.SetLoadingNotification("Still loading...")

	notifs := state.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("Expected a single loading notification, got %d", len(notifs))
	}
	if notifs[0].Type != NotificationLoading || notifs[0].Message != "Still loading..." {
		t.Errorf("Loading notification = %+v", notifs[0])
	}

	state.ClearLoadingNotification()
	if len(state.GetNotifications()) != 0 {
		t.Error("Loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		nt   NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.nt.String(); got != tt.want {
			t.Errorf("NotificationType(%d).String() = %q, want %q", tt.nt, got, tt.want)
		}
	}
}
