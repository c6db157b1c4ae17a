package site2pdf

import (
	"io"
	"time"
)

// Default values for a run. They match the zero-config behavior of the CLI:
// an Astro-style preview server on port 4321 whose readiness line contains
// the served address.
const (
	DefaultReadyMarker       = "http://localhost:4321/"
	DefaultStartupTimeout    = 10 * time.Second
	DefaultSettleDelay       = 1 * time.Second
	DefaultNavigationTimeout = 30 * time.Second
)

// ServerOptions describes the preview-server child process.
type ServerOptions struct {
	Command string   // Executable to spawn (required)
	Args    []string // Arguments passed to the command
	Dir     string   // Working directory (empty = inherit)
	Env     []string // Extra environment entries appended to the parent's

	// ReadyMarker is the substring of the server's output that signals it
	// has bound its listening address.
	ReadyMarker string

	// StartupTimeout bounds the wait for the readiness marker.
	StartupTimeout time.Duration

	// SettleDelay is waited after the marker appears, because the printed
	// address line can precede the socket actually accepting connections.
	SettleDelay time.Duration

	// Output receives a copy of the server's combined stdout/stderr
	// (nil = discard).
	Output io.Writer
}

// Validate checks that required fields are present.
func (o ServerOptions) Validate() error {
	if o.Command == "" {
		return ErrNoServerCommand
	}
	return nil
}

// withDefaults fills unset fields with package defaults.
func (o ServerOptions) withDefaults() ServerOptions {
	if o.ReadyMarker == "" {
		o.ReadyMarker = DefaultReadyMarker
	}
	if o.StartupTimeout <= 0 {
		o.StartupTimeout = DefaultStartupTimeout
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	return o
}

// ExportOptions describes the page to render and the artifact to write.
type ExportOptions struct {
	URL        string // Page to render (required)
	OutputPath string // Where the PDF is written, overwritten each run (required)

	// PrintCSS overrides the injected print stylesheet
	// (empty = DefaultPrintCSS).
	PrintCSS string
}

// Validate checks that required fields are present.
func (o ExportOptions) Validate() error {
	if o.URL == "" {
		return ErrNoTargetURL
	}
	if o.OutputPath == "" {
		return ErrNoOutputPath
	}
	return nil
}

// Input holds everything a single run needs.
type Input struct {
	Server ServerOptions
	Export ExportOptions
}

// Validate checks both option sets.
func (i Input) Validate() error {
	if err := i.Server.Validate(); err != nil {
		return err
	}
	return i.Export.Validate()
}

// Result reports a successful run.
type Result struct {
	OutputPath string
	Pages      int
	Elapsed    time.Duration
}
