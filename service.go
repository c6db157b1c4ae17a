package site2pdf

import (
	"context"
	"fmt"
	"io"
	"time"
)

// phase tracks where a run is in its lifecycle.
type phase int

const (
	phaseIdle phase = iota
	phaseServerStarting
	phaseServerRunning
	phaseExporting
	phaseCleaningUp
	phaseDone
)

// String implements fmt.Stringer for verbose logging.
func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseServerStarting:
		return "server starting"
	case phaseServerRunning:
		return "server running"
	case phaseExporting:
		return "exporting"
	case phaseCleaningUp:
		return "cleaning up"
	case phaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// serverHandle is the slice of *Server the orchestrator needs.
type serverHandle interface {
	Stop() error
}

// Service orchestrates one export run: server startup, render, artifact
// verification, and guaranteed teardown.
type Service struct {
	cfg serviceConfig

	startServer func(ctx context.Context, opts ServerOptions) (serverHandle, error)
	exporter    pageExporter
	verify      func(path string) (int, error)

	phase phase
}

// serviceConfig holds Service-level settings.
type serviceConfig struct {
	timeout time.Duration // navigation timeout for the default exporter
	logw    io.Writer     // verbose/diagnostic output (nil = silent)
}

// Option customizes a Service.
type Option func(*Service)

// WithNavigationTimeout bounds page load during export.
func WithNavigationTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLogWriter directs phase transitions and cleanup diagnostics to w.
func WithLogWriter(w io.Writer) Option {
	return func(s *Service) {
		s.cfg.logw = w
	}
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithNavigationTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg:   serviceConfig{timeout: DefaultNavigationTimeout},
		phase: phaseIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.startServer == nil {
		s.startServer = func(ctx context.Context, opts ServerOptions) (serverHandle, error) {
			return StartServer(ctx, opts)
		}
	}
	// Create exporter if not injected (e.g., by tests)
	if s.exporter == nil {
		s.exporter = NewChromeExporter(s.cfg.timeout)
	}
	if s.verify == nil {
		s.verify = verifyArtifact
	}

	return s
}

// Run executes one export: start the preview server, render and write the
// PDF, verify it, and stop the server. The server is stopped on every exit
// path; Stop is idempotent, so a signal handler racing with the normal
// sequence is harmless. Cleanup failures are logged, never returned.
//
// Cancelling ctx aborts startup or export, but never cleanup.
func (s *Service) Run(ctx context.Context, input Input) (Result, error) {
	started := time.Now()

	if err := input.Validate(); err != nil {
		return Result{}, err
	}

	s.setPhase(phaseServerStarting)
	srv, err := s.startServer(ctx, input.Server)
	if err != nil {
		s.setPhase(phaseDone)
		return Result{}, err
	}
	s.setPhase(phaseServerRunning)

	defer func() {
		s.setPhase(phaseCleaningUp)
		if cerr := srv.Stop(); cerr != nil {
			s.logf("cleanup: %v", cerr)
		}
		s.setPhase(phaseDone)
	}()

	s.setPhase(phaseExporting)
	if err := s.exporter.Export(ctx, input.Export); err != nil {
		return Result{}, err
	}

	pages, err := s.verify(input.Export.OutputPath)
	if err != nil {
		return Result{}, err
	}

	return Result{
		OutputPath: input.Export.OutputPath,
		Pages:      pages,
		Elapsed:    time.Since(started),
	}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.exporter != nil {
		return s.exporter.Close()
	}
	return nil
}

func (s *Service) setPhase(p phase) {
	s.phase = p
	s.logf("phase: %s", p)
}

func (s *Service) logf(format string, args ...any) {
	if s.cfg.logw != nil {
		fmt.Fprintf(s.cfg.logw, format+"\n", args...)
	}
}
