// Package hints provides actionable hints for browser launch failures.
// Plain hints are attached to log records; Format renders them for terminals
// as "\n  hint: <text>".
package hints

import (
	"os"
	"runtime"
	"strings"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// goos is swapped in tests.
var goos = runtime.GOOS

// ForBrowserLaunch returns hints for a browser that could not be launched or
// connected to. sandboxDisabled reports whether --no-sandbox is already in use.
func ForBrowserLaunch(sandboxDisabled bool) string {
	var hints []string

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "install Chrome or Chromium, or set browser.bin / ROD_BROWSER_BIN")
	}

	if !sandboxDisabled && (InCI() || IsInContainer()) {
		hints = append(hints, "set browser.noSandbox: true for Docker/CI")
	}

	if goos == "darwin" {
		hints = append(hints, "on macOS, allow Chrome for Testing under System Settings > Privacy & Security")
	}

	return strings.Join(hints, "; ")
}

// ForRenderTimeout returns a hint for documents that never settled.
func ForRenderTimeout() string {
	return "remote images or fonts that never finish loading keep the page busy; raise browser.loadTimeout or remove them"
}

// Format renders a hint for terminal output.
func Format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// InCI reports whether a common CI provider variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}
