package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

const testHistory = "1,1,2,3,4,5,6,7\n2,8,9,10,11,12,13,14\n3,15,16,17,18,19,20,21\n4,22,23,24,25,26,27,28\n5,29,30,31,32,33,34,35\n6,36,37,38,39,40,41,42\n"

func newTestManager(t *testing.T) *services.Manager {
	t.Helper()
	tmpDir := t.TempDir()
	historyPath := filepath.Join(tmpDir, "lotto.csv")
	if err := os.WriteFile(historyPath, []byte(testHistory), 0o600); err != nil {
		t.Fatal(err)
	}
	mgr, err := services.NewManager(&config.Config{
		HistoryPath:          historyPath,
		DatabasePath:         filepath.Join(tmpDir, "lotto.db"),
		ClusterCount:         2,
		ClusterSeed:          42,
		ClusterRestarts:      10,
		ClusterMaxIterations: 50,
		CandidatePoolSize:    20,
		DefaultModelType:     "statistical",
		DefaultNumSets:       2,
		RandomSeed:           7,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestCommands_Tick(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Tick(time.Millisecond) == nil {
		t.Error("Tick returned nil")
	}
	if cmds.DefaultTick() == nil {
		t.Error("DefaultTick returned nil")
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.fn("msg")()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
			if addMsg.Duration <= 0 {
				t.Error("Duration should be positive")
			}
		})
	}
}

func TestCommands_ClearNotification(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.ClearNotification("id", time.Millisecond) == nil {
		t.Error("ClearNotification returned nil")
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	msg := cmds.Quit()()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected tea.QuitMsg, got %T", msg)
	}
}

func TestCommands_BatchAndDelayed(t *testing.T) {
	cmds := NewCommands(nil)
	if cmds.Batch(cmds.NotifyInfo("a"), cmds.NotifyInfo("b")) == nil {
		t.Error("Batch returned nil")
	}
	if cmds.Delayed(time.Millisecond, ToggleHelpMsg{}) == nil {
		t.Error("Delayed returned nil")
	}
}

func TestCommands_WithoutManager(t *testing.T) {
	cmds := NewCommands(nil)

	if cmds.LoadInitialData() != nil {
		t.Error("LoadInitialData without manager should be nil")
	}

	msg := cmds.Generate(recommend.Request{})()
	if n, ok := msg.(AddNotificationMsg); !ok || n.Type != NotificationError {
		t.Errorf("Generate without manager = %#v, want error notification", msg)
	}

	msg = cmds.Evaluate(models.Combination{1, 2, 3, 4, 5, 6})()
	if n, ok := msg.(AddNotificationMsg); !ok || n.Type != NotificationError {
		t.Errorf("Evaluate without manager = %#v, want error notification", msg)
	}
}

func TestDataCommands(t *testing.T) {
	mgr := newTestManager(t)

	hist, ok := loadHistoryCmd(mgr)().(HistoryLoadedMsg)
	if !ok {
		t.Fatal("loadHistoryCmd did not return HistoryLoadedMsg")
	}
	if len(hist.History) != 6 {
		t.Errorf("History has %d draws, want 6", len(hist.History))
	}
	if hist.LastImport == nil {
		t.Error("LastImport should be set after the initial import")
	}

	stats, ok := loadStatisticsCmd(mgr)().(StatisticsLoadedMsg)
	if !ok || stats.Error != nil {
		t.Fatalf("loadStatisticsCmd = %#v", stats)
	}
	if stats.Overview.TotalDraws != 6 {
		t.Errorf("TotalDraws = %d, want 6", stats.Overview.TotalDraws)
	}

	rec, ok := generateCmd(mgr, recommend.Request{ModelType: models.ModelKMeans, NumSets: 3})().(RecommendationMsg)
	if !ok || rec.Error != nil {
		t.Fatalf("generateCmd = %#v", rec)
	}
	if len(rec.Recommendation.Sets) != 3 {
		t.Errorf("Sets = %d, want 3", len(rec.Recommendation.Sets))
	}

	ev, ok := evaluateCmd(mgr, models.Combination{1, 2, 3, 4, 5, 6})().(EvaluationMsg)
	if !ok || ev.Error != nil {
		t.Fatalf("evaluateCmd = %#v", ev)
	}
	if ev.Evaluation.Hits[models.TierFirst] != 1 {
		t.Errorf("1st tier hits = %d, want 1", ev.Evaluation.Hits[models.TierFirst])
	}
}

func TestEditCommands(t *testing.T) {
	mgr := newTestManager(t)

	draw := models.Draw{Number: 7, Winning: [6]int{1, 10, 20, 30, 40, 45}, Bonus: 2}
	added := addDrawCmd(mgr, draw)().(AddDrawResultMsg)
	if added.Error != nil || added.Number != 7 {
		t.Fatalf("addDrawCmd = %#v", added)
	}

	dup := addDrawCmd(mgr, draw)().(AddDrawResultMsg)
	if dup.Error == nil {
		t.Error("Adding a duplicate draw should fail")
	}

	deleted := deleteDrawCmd(mgr, 7)().(DeleteDrawResultMsg)
	if deleted.Error != nil {
		t.Fatalf("deleteDrawCmd error: %v", deleted.Error)
	}

	reloaded := reloadCmd(mgr)().(ReloadResultMsg)
	if reloaded.Error != nil {
		t.Fatalf("reloadCmd error: %v", reloaded.Error)
	}

	out := filepath.Join(t.TempDir(), "export.csv")
	exported := exportCmd(mgr, out)().(ExportResultMsg)
	if exported.Error != nil {
		t.Fatalf("exportCmd error: %v", exported.Error)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Export file missing: %v", err)
	}
}
