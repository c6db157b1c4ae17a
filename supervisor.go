package site2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/alnah/go-site2pdf/internal/process"
)

// stopGracePeriod bounds each wait for the process tree to exit after a
// termination signal before escalating or giving up.
const stopGracePeriod = 5 * time.Second

// Server is a handle to a running preview-server process tree. At most one
// live handle exists per run; after Stop confirms termination the handle is
// inert and further calls are no-ops.
type Server struct {
	cmd  *exec.Cmd
	pid  int
	done chan struct{} // closed once cmd.Wait returns
	wait error         // valid only after done is closed

	stopOnce sync.Once
	stopErr  error

	// Signal delivery, injectable for tests.
	terminate func(pid int) error
	kill      func(pid int)
}

// StartServer spawns the preview server described by opts in its own
// process group and blocks until its output contains opts.ReadyMarker,
// plus opts.SettleDelay for the socket to actually accept.
//
// It fails with ErrStartupTimeout when no marker appears within
// opts.StartupTimeout, and with ErrProcessExit when the child exits first.
// On either failure the child, if it was spawned, is terminated before
// returning.
func StartServer(ctx context.Context, opts ServerOptions) (*Server, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	cmd := exec.Command(opts.Command, opts.Args...) // #nosec G204 -- command comes from the user's own config
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}
	process.SetGroup(cmd)

	// Merge stdout and stderr into one stream: dev servers print their
	// address line to either, depending on the tool.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerStart, err)
	}

	srv := &Server{
		cmd:       cmd,
		pid:       cmd.Process.Pid,
		done:      make(chan struct{}),
		terminate: process.TerminateGroup,
		kill:      process.KillGroup,
	}

	go func() {
		srv.wait = cmd.Wait()
		// Unblock the readiness scanner; Wait has already closed the
		// child's side of the pipe.
		_ = pw.Close()
		close(srv.done)
	}()

	ready := watchReadiness(pr, opts.ReadyMarker, opts.Output)

	timer := time.NewTimer(opts.StartupTimeout)
	defer timer.Stop()

	select {
	case <-ready:
		// Marker seen; wait out the settle delay unless the child dies
		// or the run is cancelled meanwhile.
		settle := time.NewTimer(opts.SettleDelay)
		defer settle.Stop()
		select {
		case <-settle.C:
			return srv, nil
		case <-srv.done:
			return nil, fmt.Errorf("%w: %v", ErrProcessExit, exitDetail(srv.wait))
		case <-ctx.Done():
			_ = srv.Stop()
			return nil, ctx.Err()
		}
	case <-srv.done:
		return nil, fmt.Errorf("%w: %v", ErrProcessExit, exitDetail(srv.wait))
	case <-timer.C:
		_ = srv.Stop()
		return nil, fmt.Errorf("%w: no %q in output after %s",
			ErrStartupTimeout, opts.ReadyMarker, opts.StartupTimeout)
	case <-ctx.Done():
		_ = srv.Stop()
		return nil, ctx.Err()
	}
}

// Pid returns the child's process id.
func (s *Server) Pid() int {
	return s.pid
}

// Exited reports whether the child process has terminated.
func (s *Server) Exited() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Stop terminates the server's whole process tree. It is idempotent and
// safe to call from multiple goroutines: the first call does the work, every
// later call returns the same outcome immediately.
//
// Termination escalates through a small state machine: a graceful signal to
// the process group first, a forced kill when delivery fails or the tree
// does not exit within the grace period. Failures come back as ErrCleanup
// so callers can log them; they are not meant to abort anything.
func (s *Server) Stop() error {
	if s == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		s.stopErr = s.stop()
	})
	return s.stopErr
}

func (s *Server) stop() error {
	if s.Exited() {
		return nil
	}

	// GracefulSent; delivery failure escalates straight to ForcedSent.
	if err := s.terminate(s.pid); err != nil {
		s.kill(s.pid)
	}

	select {
	case <-s.done:
		return nil // Confirmed
	case <-time.After(stopGracePeriod):
	}

	// ForcedSent: the tree survived the graceful signal.
	s.kill(s.pid)

	select {
	case <-s.done:
		return nil // Confirmed
	case <-time.After(stopGracePeriod):
		return fmt.Errorf("%w: process group %d still running after forced kill", ErrCleanup, s.pid)
	}
}

// exitDetail renders cmd.Wait's result for error messages.
func exitDetail(err error) string {
	if err == nil {
		return "exit status 0"
	}
	return err.Error()
}
