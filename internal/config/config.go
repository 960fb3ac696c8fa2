// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ModelTypes are the accepted DEFAULT_MODEL_TYPE values.
var ModelTypes = []string{"statistical", "kmeans"}

// MaxNumSets is the largest number of sets one generation may ask for.
const MaxNumSets = 20

// Config holds the application configuration.
type Config struct {
	HistoryPath  string
	DatabasePath string
	LogPath      string
	LogLevel     string

	ClusterCount         int
	ClusterSeed          uint64
	ClusterRestarts      int
	ClusterMaxIterations int
	CandidatePoolSize    int

	DefaultModelType string
	DefaultNumSets   int
	RandomSeed       uint64

	NotifyNewDraw bool
	WatchHistory  bool
	WatchDebounce time.Duration
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		HistoryPath:  getEnvString("LOTTO_HISTORY_PATH", getDefaultHistoryPath()),
		DatabasePath: getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LogPath:      getEnvString("LOG_PATH", ""),
		LogLevel:     getEnvString("LOG_LEVEL", defaultLogLevel),

		ClusterCount:         getEnvInt("CLUSTER_COUNT", defaultClusterCount),
		ClusterSeed:          getEnvUint64("CLUSTER_SEED", defaultClusterSeed),
		ClusterRestarts:      max(getEnvInt("CLUSTER_RESTARTS", minClusterRestarts), minClusterRestarts),
		ClusterMaxIterations: getEnvInt("CLUSTER_MAX_ITERATIONS", defaultClusterMaxIter),
		CandidatePoolSize:    getEnvInt("CANDIDATE_POOL_SIZE", defaultCandidatePool),

		DefaultModelType: strings.ToLower(getEnvString("DEFAULT_MODEL_TYPE", defaultModelType)),
		DefaultNumSets:   getEnvInt("DEFAULT_NUM_SETS", defaultNumSets),
		RandomSeed:       getEnvUint64("RANDOM_SEED", 0),

		NotifyNewDraw: getEnvBool("NOTIFY_NEW_DRAW", true),
		WatchHistory:  getEnvBool("WATCH_HISTORY", true),
		WatchDebounce: getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	if !slices.Contains(ModelTypes, c.DefaultModelType) {
		return fmt.Errorf("DEFAULT_MODEL_TYPE must be one of %s, got %q",
			strings.Join(ModelTypes, ", "), c.DefaultModelType)
	}
	if c.ClusterCount < 1 {
		return fmt.Errorf("CLUSTER_COUNT must be at least 1, got %d", c.ClusterCount)
	}
	if c.DefaultNumSets < 1 || c.DefaultNumSets > MaxNumSets {
		return fmt.Errorf("DEFAULT_NUM_SETS must be between 1 and %d, got %d", MaxNumSets, c.DefaultNumSets)
	}
	if c.CandidatePoolSize < 6 {
		return fmt.Errorf("CANDIDATE_POOL_SIZE must be at least 6, got %d", c.CandidatePoolSize)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", appDirName, ".env"),
			filepath.Join(home, ".lotto", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	dir := appConfigDir()
	if dir == "" {
		return defaultDatabaseFileName
	}
	return filepath.Join(dir, defaultDatabaseFileName)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvUint64 retrieves an unsigned integer environment variable or returns the default.
func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
