package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("TEST_ENV_INT", " 12 ")
	t.Setenv("TEST_ENV_BAD_INT", "twelve")
	t.Setenv("TEST_ENV_UINT", "18446744073709551615")
	t.Setenv("TEST_ENV_NEG_UINT", "-1")

	if got := getEnvInt("TEST_ENV_INT", 3); got != 12 {
		t.Errorf("getEnvInt() = %d, want 12", got)
	}
	if got := getEnvInt("TEST_ENV_BAD_INT", 3); got != 3 {
		t.Errorf("getEnvInt() = %d, want default 3", got)
	}
	if got := getEnvUint64("TEST_ENV_UINT", 1); got != ^uint64(0) {
		t.Errorf("getEnvUint64() = %d, want max uint64", got)
	}
	if got := getEnvUint64("TEST_ENV_NEG_UINT", 1); got != 1 {
		t.Errorf("getEnvUint64() = %d, want default 1", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		envVal     string
		defaultVal bool
		want       bool
	}{
		{"false", true, false},
		{"0", true, false},
		{"TRUE", false, true},
		{"maybe", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.envVal, func(t *testing.T) {
			t.Setenv("TEST_ENV_BOOL", tt.envVal)
			if got := getEnvBool("TEST_ENV_BOOL", tt.defaultVal); got != tt.want {
				t.Errorf("getEnvBool(%q) = %v, want %v", tt.envVal, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	dbPath := getDefaultDatabasePath()
	expectedDb := filepath.Join(home, ".config", "lotto-tui", "lotto.db")
	if dbPath != expectedDb {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", dbPath, expectedDb)
	}

	candidates := historyCandidates()
	last := candidates[len(candidates)-1]
	if last != filepath.Join(home, ".config", "lotto-tui", "lotto.csv") {
		t.Errorf("last history candidate = %q", last)
	}
}

func TestGetDefaultHistoryPath_PrefersExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	os.Chdir(tmpDir)

	if err := os.MkdirAll("data", 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("data", "lotto.csv"), []byte("1,1,2,3,4,5,6,7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := getDefaultHistoryPath(); got != filepath.Join("data", "lotto.csv") {
		t.Errorf("getDefaultHistoryPath() = %q, want data/lotto.csv", got)
	}
}

func TestGetEnvPaths(t *testing.T) {
	paths := getEnvPaths()
	if len(paths) == 0 {
		t.Error("getEnvPaths() returned empty list")
	}

	// Basic check that it contains current directory
	cwd, _ := os.Getwd()
	found := false
	for _, p := range paths {
		if p == filepath.Join(cwd, ".env") {
			found = true
			break
		}
	}
	if !found {
		t.Error("getEnvPaths() missing current directory .env")
	}
}

// isolate points HOME and the working directory at an empty temp dir so no
// stray .env file is loaded.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", tmpDir)
	return tmpDir
}

func TestLoad_Defaults(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "db", "lotto.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ClusterCount != defaultClusterCount {
		t.Errorf("ClusterCount = %d, want %d", cfg.ClusterCount, defaultClusterCount)
	}
	if cfg.ClusterSeed != defaultClusterSeed {
		t.Errorf("ClusterSeed = %d, want %d", cfg.ClusterSeed, defaultClusterSeed)
	}
	if cfg.ClusterRestarts != minClusterRestarts {
		t.Errorf("ClusterRestarts = %d, want %d", cfg.ClusterRestarts, minClusterRestarts)
	}
	if cfg.CandidatePoolSize != defaultCandidatePool {
		t.Errorf("CandidatePoolSize = %d, want %d", cfg.CandidatePoolSize, defaultCandidatePool)
	}
	if cfg.DefaultModelType != "statistical" || cfg.DefaultNumSets != defaultNumSets {
		t.Errorf("defaults = %q/%d", cfg.DefaultModelType, cfg.DefaultNumSets)
	}
	if !cfg.NotifyNewDraw || !cfg.WatchHistory {
		t.Error("notifications and watching should default on")
	}
	if cfg.WatchDebounce != defaultWatchDebounce {
		t.Errorf("WatchDebounce = %v, want %v", cfg.WatchDebounce, defaultWatchDebounce)
	}
	if !strings.HasSuffix(cfg.HistoryPath, "lotto.csv") {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "db")); err != nil {
		t.Errorf("database directory not created: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "lotto.db"))
	t.Setenv("LOTTO_HISTORY_PATH", filepath.Join(tmpDir, "draws.csv"))
	t.Setenv("CLUSTER_COUNT", "8")
	t.Setenv("CLUSTER_RESTARTS", "3")
	t.Setenv("DEFAULT_MODEL_TYPE", "KMeans")
	t.Setenv("RANDOM_SEED", "99")
	t.Setenv("WATCH_HISTORY", "false")
	t.Setenv("DEFAULT_NUM_SETS", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HistoryPath != filepath.Join(tmpDir, "draws.csv") {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath)
	}
	if cfg.ClusterCount != 8 {
		t.Errorf("ClusterCount = %d, want 8", cfg.ClusterCount)
	}
	if cfg.ClusterRestarts != minClusterRestarts {
		t.Errorf("ClusterRestarts = %d, want it raised to %d", cfg.ClusterRestarts, minClusterRestarts)
	}
	if cfg.DefaultModelType != "kmeans" {
		t.Errorf("DefaultModelType = %q, want kmeans", cfg.DefaultModelType)
	}
	if cfg.DefaultNumSets != MaxNumSets {
		t.Errorf("DefaultNumSets = %d, want %d", cfg.DefaultNumSets, MaxNumSets)
	}
	if cfg.RandomSeed != 99 {
		t.Errorf("RandomSeed = %d, want 99", cfg.RandomSeed)
	}
	if cfg.WatchHistory {
		t.Error("WatchHistory should be disabled")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "lotto.db"))

	// godotenv does not override variables that are already set, so make
	// sure CANDIDATE_POOL_SIZE is unset and restored afterwards.
	t.Setenv("CANDIDATE_POOL_SIZE", "")
	os.Unsetenv("CANDIDATE_POOL_SIZE")

	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("CANDIDATE_POOL_SIZE=12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	os.Unsetenv("CANDIDATE_POOL_SIZE")

	if cfg.CandidatePoolSize != 12 {
		t.Errorf("CandidatePoolSize = %d, want 12 from .env", cfg.CandidatePoolSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"UnknownModel", "DEFAULT_MODEL_TYPE", "neural"},
		{"ZeroClusters", "CLUSTER_COUNT", "0"},
		{"ZeroSets", "DEFAULT_NUM_SETS", "0"},
		{"TooManySets", "DEFAULT_NUM_SETS", "21"},
		{"TinyPool", "CANDIDATE_POOL_SIZE", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := isolate(t)
			t.Setenv("DATABASE_PATH", filepath.Join(tmpDir, "lotto.db"))
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail for %s=%s", tt.key, tt.val)
			}
		})
	}
}
