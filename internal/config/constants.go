package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	appDirName = "lotto-tui"

	defaultLogLevel         = "info"
	defaultClusterCount     = 5
	defaultClusterSeed      = 42
	minClusterRestarts      = 10
	defaultClusterMaxIter   = 300
	defaultCandidatePool    = 20
	defaultModelType        = "statistical"
	defaultNumSets          = 5
	defaultWatchDebounce    = 200 * time.Millisecond
	defaultHistoryFileName  = "lotto.csv"
	defaultDatabaseFileName = "lotto.db"
)

// historyCandidates lists where a history file is looked for when
// LOTTO_HISTORY_PATH is unset, in order.
func historyCandidates() []string {
	paths := []string{
		filepath.Join("data", defaultHistoryFileName),
		filepath.Join("lotto-recommender-app", "data", defaultHistoryFileName),
	}
	if dir := appConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, defaultHistoryFileName))
	}
	return paths
}

// getDefaultHistoryPath returns the first existing candidate, or the last
// candidate when none exists yet so that an import can create it.
func getDefaultHistoryPath() string {
	candidates := historyCandidates()
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return candidates[len(candidates)-1]
}

// appConfigDir returns ~/.config/lotto-tui, or "" without a home directory.
func appConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}
