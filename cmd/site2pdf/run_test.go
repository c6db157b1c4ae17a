package main

// Notes:
// - run() end to end needs a browser and a preview server; that path is
//   covered by the library's integration tests. Here we test the pure
//   pieces: flag/config merging, input construction, and --rebuild.

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-site2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestApplyOverrides - Flags Win Over Config
// ---------------------------------------------------------------------------

func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	t.Run("output override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		if err := applyOverrides(cfg, &cliFlags{output: "custom.pdf"}); err != nil {
			t.Fatalf("applyOverrides() error = %v", err)
		}
		if cfg.Export.Output != "custom.pdf" {
			t.Errorf("Export.Output = %q, want custom.pdf", cfg.Export.Output)
		}
	})

	t.Run("timeout override", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		if err := applyOverrides(cfg, &cliFlags{timeout: "45s"}); err != nil {
			t.Fatalf("applyOverrides() error = %v", err)
		}
		if got := cfg.NavigationTimeout(); got != 45*time.Second {
			t.Errorf("NavigationTimeout() = %v, want 45s", got)
		}
	})

	t.Run("invalid timeout is a usage error", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		err := applyOverrides(cfg, &cliFlags{timeout: "soon"})
		if !errors.Is(err, errUsage) {
			t.Errorf("applyOverrides() error = %v, want errUsage", err)
		}
	})

	t.Run("no flags leaves config untouched", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		if err := applyOverrides(cfg, &cliFlags{}); err != nil {
			t.Fatalf("applyOverrides() error = %v", err)
		}
		if cfg.Export.Output != config.DefaultOutput {
			t.Errorf("Export.Output = %q, want default", cfg.Export.Output)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildInput - Config to Run Options
// ---------------------------------------------------------------------------

func TestBuildInput(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Server.Port = 8080
	cfg.Export.Output = "book.pdf"

	input := buildInput(cfg, &cliFlags{}, io.Discard)

	if input.Server.Command != "npm" {
		t.Errorf("Server.Command = %q, want npm", input.Server.Command)
	}
	if input.Server.ReadyMarker != "http://localhost:8080/" {
		t.Errorf("ReadyMarker = %q, want derived from port", input.Server.ReadyMarker)
	}
	if input.Export.URL != "http://localhost:8080/" {
		t.Errorf("Export.URL = %q, want http://localhost:8080/", input.Export.URL)
	}
	if input.Export.OutputPath != "book.pdf" {
		t.Errorf("Export.OutputPath = %q, want book.pdf", input.Export.OutputPath)
	}
	if input.Server.Output != nil {
		t.Error("server output should be discarded unless --verbose")
	}

	verbose := buildInput(cfg, &cliFlags{verbose: true}, io.Discard)
	if verbose.Server.Output == nil {
		t.Error("verbose run should echo server output")
	}

	if err := input.Validate(); err != nil {
		t.Errorf("built input must validate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestRemoveBuildDir - The --rebuild Flag
// ---------------------------------------------------------------------------

func TestRemoveBuildDir(t *testing.T) {
	t.Parallel()

	t.Run("removes existing dir", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "dist")
		if err := os.MkdirAll(filepath.Join(dir, "assets"), 0o755); err != nil {
			t.Fatal(err)
		}

		var log strings.Builder
		if err := removeBuildDir(dir, &log, false); err != nil {
			t.Fatalf("removeBuildDir() error = %v", err)
		}
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Error("build dir still exists")
		}
		if !strings.Contains(log.String(), "Removed") {
			t.Error("removal not announced")
		}
	})

	t.Run("missing dir is fine", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "never-built")
		if err := removeBuildDir(dir, io.Discard, true); err != nil {
			t.Errorf("removeBuildDir() error = %v, want nil", err)
		}
	})

	t.Run("refuses dangerous paths", func(t *testing.T) {
		t.Parallel()

		for _, dir := range []string{"", ".", string(filepath.Separator)} {
			if err := removeBuildDir(dir, io.Discard, true); !errors.Is(err, errUsage) {
				t.Errorf("removeBuildDir(%q) error = %v, want errUsage", dir, err)
			}
		}
	})

	t.Run("quiet suppresses announcement", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "dist")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}

		var log strings.Builder
		if err := removeBuildDir(dir, &log, true); err != nil {
			t.Fatalf("removeBuildDir() error = %v", err)
		}
		if log.Len() != 0 {
			t.Errorf("quiet run logged %q", log.String())
		}
	})
}
