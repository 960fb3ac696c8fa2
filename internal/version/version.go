// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// AppName is the binary and project name.
const AppName = "lotto-dashboard-tui"

const gitTimeout = 2 * time.Second

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	mu          sync.Mutex
	initialized bool

	buildVersion, buildCommit, buildDate = Version, Commit, Date

	execCommand = exec.CommandContext
)

func ensureInitialized() {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return
	}
	initialized = true

	if Date == "" {
		Date = time.Now().Format("2006-01-02")
	}
	if Commit == "" {
		Commit = gitOutput("describe", "--always", "--dirty")
		if Commit == "" {
			Commit = "unknown"
		}
	}
	if Version == "" {
		Version = strings.TrimPrefix(gitOutput("describe", "--tags", "--abbrev=0"), "v")
		if Version == "" {
			Version = "dev"
		}
	}
}

// gitOutput runs git with args and returns its trimmed output, or "" when
// git fails.
func gitOutput(args ...string) string {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(out.String())
}

// Reset restores the ldflags values so the next accessor call resolves
// missing fields again.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	Version, Commit, Date = buildVersion, buildCommit, buildDate
	initialized = false
}

// GetVersion returns the release version, "dev" outside a tagged checkout.
func GetVersion() string {
	ensureInitialized()
	return Version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	ensureInitialized()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return Date
}

// Info returns a one-line version summary.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		AppName, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
