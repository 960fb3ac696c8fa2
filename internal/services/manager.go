// Package services provides service orchestration for the TUI and CLI.
package services

import (
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/lotto-dashboard-tui/internal/analysis"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/db"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/draws"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/recommend"
)

type (
	// HistoryChangedEvent is emitted when the draw history changes.
	HistoryChangedEvent struct {
		Reason   string
		Draws    int
		Imported int
		Latest   *models.Draw
	}

	// NewDrawEvent is emitted when a draw newer than any seen before arrives.
	NewDrawEvent struct {
		Draw models.Draw
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (HistoryChangedEvent) isServiceEvent() {}
func (NewDrawEvent) isServiceEvent()        {}
func (ErrorEvent) isServiceEvent()          {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	draws       *draws.Service
	recommend   *recommend.Service
	database    *db.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	doneChan    chan struct{}
	subscribers []chan<- ServiceEvent
	latestSeen  int
	notify      func(title, body string) error
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		notify: func(title, body string) error {
			return beeep.Notify(title, body, "")
		},
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.draws, err = draws.New(cfg.HistoryPath, m.database, draws.Options{
		Watch:    cfg.WatchHistory,
		Debounce: cfg.WatchDebounce,
	})
	if err != nil {
		_ = m.database.Close()
		return nil, err
	}

	fit := analysis.DefaultFitOptions()
	fit.K = cfg.ClusterCount
	fit.Seed = cfg.ClusterSeed
	fit.Restarts = cfg.ClusterRestarts
	fit.MaxIterations = cfg.ClusterMaxIterations

	m.recommend = recommend.New(m.draws, recommend.Options{
		PoolSize:       cfg.CandidatePoolSize,
		Fit:            fit,
		DefaultModel:   models.ModelType(cfg.DefaultModelType),
		DefaultNumSets: cfg.DefaultNumSets,
		Seed:           cfg.RandomSeed,
	})

	if latest, ok := m.draws.Latest(); ok {
		m.latestSeen = latest.Number
	}

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	defer close(m.doneChan)
	for {
		select {
		case event := <-m.draws.Events():
			m.handleDrawEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleDrawEvent invalidates the analysis cache and broadcasts the change.
func (m *Manager) handleDrawEvent(event draws.Event) {
	var reason string
	switch event.Type {
	case draws.EventHistoryLoaded:
		reason = "loaded"
	case draws.EventHistoryChanged:
		reason = "changed"
	case draws.EventDrawAdded:
		reason = "draw added"
	case draws.EventDrawDeleted:
		reason = "draw deleted"
	case draws.EventError:
		m.broadcast(ErrorEvent{Service: "draws", Error: event.Error})
		return
	default:
		return
	}

	m.recommend.Invalidate()

	changed := HistoryChangedEvent{
		Reason:   reason,
		Draws:    m.draws.Count(),
		Imported: event.Imported,
	}
	if latest, ok := m.draws.Latest(); ok {
		changed.Latest = &latest
		m.checkNewDraw(latest)
	}
	m.broadcast(changed)
}

// checkNewDraw notifies once per draw number increase.
func (m *Manager) checkNewDraw(latest models.Draw) {
	m.mu.Lock()
	previous := m.latestSeen
	if latest.Number > m.latestSeen {
		m.latestSeen = latest.Number
	}
	m.mu.Unlock()

	if previous == 0 || latest.Number <= previous {
		return
	}

	m.broadcast(NewDrawEvent{Draw: latest})

	if !m.cfg.NotifyNewDraw {
		return
	}
	title := fmt.Sprintf("Draw %d", latest.Number)
	body := fmt.Sprintf("Winning numbers: %v", latest.Numbers())
	if latest.HasBonus() {
		body += fmt.Sprintf(" + bonus %d", latest.Bonus)
	}
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Generate produces recommended combinations.
func (m *Manager) Generate(req recommend.Request) (*recommend.Recommendation, error) {
	return m.recommend.Generate(req)
}

// Evaluate reports how a combination would have fared historically.
func (m *Manager) Evaluate(c models.Combination) (*recommend.Evaluation, error) {
	return m.recommend.Evaluate(c)
}

// Statistics returns the number and pattern overview.
func (m *Manager) Statistics() (*recommend.Overview, error) {
	return m.recommend.Statistics()
}

// ClusterModel returns the fitted cluster model.
func (m *Manager) ClusterModel() (*analysis.ClusterModel, error) {
	return m.recommend.ClusterModel()
}

// SetFitProgress reports cluster fit restarts to fn.
func (m *Manager) SetFitProgress(fn func(done, total int)) {
	m.recommend.SetFitProgress(fn)
}

// AddDraw stores a new draw.
func (m *Manager) AddDraw(d models.Draw) error {
	if err := m.draws.AddDraw(d); err != nil {
		return err
	}
	m.recommend.Invalidate()
	return nil
}

// DeleteDraw removes a draw.
func (m *Manager) DeleteDraw(number int) error {
	if err := m.draws.DeleteDraw(number); err != nil {
		return err
	}
	m.recommend.Invalidate()
	return nil
}

// Reload re-imports the history file.
func (m *Manager) Reload() (int, error) {
	n, err := m.draws.Reload()
	m.recommend.Invalidate()
	return n, err
}

// Import merges another history file into the store.
func (m *Manager) Import(path string) (int, error) {
	n, err := m.draws.Import(path)
	m.recommend.Invalidate()
	return n, err
}

// Export writes the history to path.
func (m *Manager) Export(path string) error {
	return m.draws.Export(path)
}

// History returns the draw history, oldest first.
func (m *Manager) History() models.DrawHistory {
	return m.draws.History()
}

// LatestDraw returns the newest draw.
func (m *Manager) LatestDraw() (models.Draw, bool) {
	return m.draws.Latest()
}

// LastImport returns the most recent history import.
func (m *Manager) LastImport() *models.HistoryImport {
	return m.draws.LastImport()
}

// HistoryPath returns the history file path.
func (m *Manager) HistoryPath() string {
	return m.draws.FilePath()
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)
	<-m.doneChan

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.draws.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
