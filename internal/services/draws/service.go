// Package draws keeps the draw history database in step with the history
// file, watching the file for edits.
package draws

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/lotto-dashboard-tui/internal/db"
	"github.com/j-veylop/lotto-dashboard-tui/internal/history"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

const (
	defaultDebounce = 200 * time.Millisecond
	importsToKeep   = 50
)

// Event represents a draw service event.
type Event struct {
	Type     EventType
	Error    error
	Draw     *models.Draw
	Imported int
	Latest   int
}

// EventType defines the type of draw event.
type EventType int

const (
	EventHistoryLoaded EventType = iota
	EventHistoryChanged
	EventDrawAdded
	EventDrawDeleted
	EventError
)

// Options configures the service.
type Options struct {
	Watch    bool
	Debounce time.Duration
}

// Service owns the draw history: the file on disk, its database mirror and
// the in-memory snapshot served to callers.
type Service struct {
	mu         sync.RWMutex
	history    models.DrawHistory
	lastImport *models.HistoryImport

	// syncMu serialises imports and writes to the history file.
	syncMu sync.Mutex

	filePath      string
	db            *db.DB
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

// New imports the history file into database when it changed since the last
// import, then starts watching it when opts.Watch is set. A missing history
// file is not an error; the service then serves what the database holds.
func New(filePath string, database *db.DB, opts Options) (*Service, error) {
	if database == nil {
		return nil, errors.New("draws: database is required")
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	s := &Service{
		filePath:  filePath,
		db:        database,
		debounce:  debounce,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	last, err := database.GetLastImport()
	if err != nil {
		return nil, err
	}
	s.lastImport = last

	if _, _, err := s.sync(false); err != nil {
		return nil, fmt.Errorf("failed to import history: %w", err)
	}
	if err := s.refresh(); err != nil {
		return nil, err
	}

	if opts.Watch {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventHistoryLoaded, Imported: s.Count(), Latest: s.latestNumber()})
	return s, nil
}

// Events returns the event channel for subscribing to history changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// FilePath returns the watched history file.
func (s *Service) FilePath() string {
	return s.filePath
}

// History returns a copy of the draw history, oldest first.
func (s *Service) History() models.DrawHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// Count returns the number of draws.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// Latest returns the newest draw.
func (s *Service) Latest() (models.Draw, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Latest()
}

// LastImport returns the most recent import record, or nil.
func (s *Service) LastImport() *models.HistoryImport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastImport == nil {
		return nil
	}
	imp := *s.lastImport
	return &imp
}

// Reload re-imports the history file even when it looks unchanged.
func (s *Service) Reload() (int, error) {
	imported, _, err := s.sync(true)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return 0, err
	}
	if err := s.refresh(); err != nil {
		return 0, err
	}
	s.sendEvent(Event{Type: EventHistoryChanged, Imported: imported, Latest: s.latestNumber()})
	return imported, nil
}

// Import merges the draws of another history file into the store and
// rewrites the watched file with the merged history.
func (s *Service) Import(path string) (int, error) {
	incoming, err := history.LoadFile(path)
	if err != nil {
		return 0, err
	}

	var n int
	s.syncMu.Lock()
	err = s.commitLocked(func() error {
		var upsertErr error
		n, upsertErr = s.db.UpsertDraws(incoming)
		return upsertErr
	})
	s.syncMu.Unlock()
	if err != nil {
		return 0, err
	}

	s.sendEvent(Event{Type: EventHistoryChanged, Imported: n, Latest: s.latestNumber()})
	return n, nil
}

// Export writes the current history to path.
func (s *Service) Export(path string) error {
	return history.SaveFile(path, s.History())
}

// AddDraw stores a new draw and appends it to the history file.
func (s *Service) AddDraw(d models.Draw) error {
	if err := d.Validate(); err != nil {
		return err
	}

	s.syncMu.Lock()
	err := s.commitLocked(func() error { return s.db.InsertDraw(d) })
	s.syncMu.Unlock()
	if err != nil {
		return err
	}

	logger.Info("draw added", "draw", d.Number)
	s.sendEvent(Event{Type: EventDrawAdded, Draw: &d, Latest: s.latestNumber()})
	return nil
}

// DeleteDraw removes a draw from the store and the history file.
func (s *Service) DeleteDraw(number int) error {
	s.syncMu.Lock()
	err := s.commitLocked(func() error { return s.db.DeleteDraw(number) })
	s.syncMu.Unlock()
	if err != nil {
		return err
	}

	s.sendEvent(Event{Type: EventDrawDeleted, Latest: s.latestNumber()})
	return nil
}

// sync imports the history file into the database. Unless force is set, a
// file whose fingerprint matches the last import is skipped.
func (s *Service) sync(force bool) (int, bool, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	draws, err := history.LoadFile(s.filePath)
	if errors.Is(err, history.ErrHistoryNotFound) {
		logger.Info("history file not found, serving stored draws", "path", s.filePath)
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	checksum := history.Fingerprint(draws)
	s.mu.RLock()
	unchanged := s.lastImport != nil && s.lastImport.Checksum == checksum
	s.mu.RUnlock()
	if unchanged && !force {
		logger.Debug("history file unchanged", "path", s.filePath, "checksum", checksum)
		return 0, false, nil
	}

	if err := s.db.ReplaceDraws(draws); err != nil {
		return 0, false, err
	}
	if err := s.recordImportLocked(checksum, len(draws)); err != nil {
		return 0, false, err
	}

	logger.Info("history imported", "path", s.filePath, "draws", len(draws))
	return len(draws), true, nil
}

// commitLocked applies a database change and writes the result to the
// history file. When the file cannot be written the database is restored to
// its previous contents and the snapshot is left untouched. The recorded
// fingerprint lets the watcher ignore the write.
// Caller must hold syncMu.
func (s *Service) commitLocked(apply func() error) error {
	prior, err := s.db.GetDraws()
	if err != nil {
		return err
	}
	if err := apply(); err != nil {
		return err
	}

	current, err := s.db.GetDraws()
	if err == nil {
		err = history.SaveFile(s.filePath, current)
	}
	if err != nil {
		if rbErr := s.db.ReplaceDraws(prior); rbErr != nil {
			logger.Error("failed to restore draws after write error", "error", rbErr)
			return errors.Join(err, fmt.Errorf("failed to restore draws: %w", rbErr))
		}
		return err
	}

	s.mu.Lock()
	s.history = current
	s.mu.Unlock()

	if err := s.recordImportLocked(history.Fingerprint(current), len(current)); err != nil {
		logger.Warn("failed to record history write", "error", err)
	}
	return nil
}

func (s *Service) recordImportLocked(checksum string, count int) error {
	imp := &models.HistoryImport{
		SourcePath: s.filePath,
		Checksum:   checksum,
		DrawCount:  count,
	}
	if err := s.db.RecordImport(imp); err != nil {
		return err
	}
	if _, err := s.db.PruneImports(importsToKeep); err != nil {
		logger.Warn("failed to prune import records", "error", err)
	}

	s.mu.Lock()
	s.lastImport = imp
	s.mu.Unlock()
	return nil
}

// refresh replaces the in-memory snapshot with the database contents.
func (s *Service) refresh() error {
	draws, err := s.db.GetDraws()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.history = draws
	s.mu.Unlock()
	return nil
}

func (s *Service) latestNumber() int {
	if d, ok := s.Latest(); ok {
		return d.Number
	}
	return 0
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation and editor renames)
	dir := filepath.Dir(s.filePath)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange re-imports the history file after an external change.
func (s *Service) handleFileChange() {
	imported, changed, err := s.sync(false)
	if err != nil {
		logger.Warn("history reload failed", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	if !changed {
		return
	}
	if err := s.refresh(); err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventHistoryChanged, Imported: imported, Latest: s.latestNumber()})
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
