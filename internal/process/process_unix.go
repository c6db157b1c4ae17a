//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// SetGroup puts cmd in its own process group so the whole tree rooted at it
// can be signaled with one call.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// TerminateGroup sends SIGTERM to the process group rooted at pid (negative
// PID addresses the group). The error is returned so callers can escalate.
func TerminateGroup(pid int) error {
	return syscall.Kill(-pid, syscall.SIGTERM)
}

// KillGroup sends SIGKILL to the process group rooted at pid.
func KillGroup(pid int) {
	// Best-effort cleanup; the caller's wait on process exit is the fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// Alive reports whether pid still exists, using the signal-0 probe.
func Alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}
