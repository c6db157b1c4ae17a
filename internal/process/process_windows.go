//go:build windows

package process

import (
	"os"
	"os/exec"
	"strconv"
)

// SetGroup is a no-op on Windows; tree termination goes through taskkill.
func SetGroup(cmd *exec.Cmd) {}

// TerminateGroup terminates the process tree rooted at pid using taskkill.
// /T = terminate child processes (tree kill). Without /F this is the
// "polite" variant; callers escalate to KillGroup on error.
func TerminateGroup(pid int) error {
	return exec.Command("taskkill", "/T", "/PID", strconv.Itoa(pid)).Run()
}

// KillGroup force-kills the process tree rooted at pid.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) {
	// Best-effort cleanup; the caller's wait on process exit is the fallback
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

// Alive reports whether pid still exists.
func Alive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess succeeds only for live processes on Windows.
	_ = p.Release()
	return true
}
