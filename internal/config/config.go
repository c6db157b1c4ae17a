// Package config loads the optional YAML run configuration. A missing
// config file is not an error: the defaults describe the standard setup
// (npm preview server on port 4321, PDF written to site.pdf).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// maxConfigSize bounds config input to prevent memory exhaustion (1MB).
const maxConfigSize = 1 << 20

// Default values for a zero-config run.
const (
	DefaultPort           = 4321
	DefaultOutput         = "site.pdf"
	DefaultBuildDir       = "dist"
	DefaultStartupTimeout = "10s"
	DefaultSettleDelay    = "1s"
	DefaultNavTimeout     = "30s"
)

// Config holds all configuration for an export run.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Export ExportConfig `yaml:"export"`
	Build  BuildConfig  `yaml:"build"`
}

// ServerConfig describes the preview-server child process.
type ServerConfig struct {
	Command        string   `yaml:"command"`        // Executable (default: "npm")
	Args           []string `yaml:"args"`           // Arguments (default: ["run", "preview"])
	Dir            string   `yaml:"dir"`            // Working directory (empty = current)
	Port           int      `yaml:"port"`           // Preview server port (default: 4321)
	ReadyMarker    string   `yaml:"readyMarker"`    // Output substring signaling readiness (empty = derived from port)
	StartupTimeout string   `yaml:"startupTimeout"` // Go duration string (default: "10s")
	SettleDelay    string   `yaml:"settleDelay"`    // Go duration string (default: "1s")
}

// ExportConfig describes the rendered page and output artifact.
type ExportConfig struct {
	Output            string `yaml:"output"`            // PDF path, overwritten each run (default: "site.pdf")
	Path              string `yaml:"path"`              // URL path to render (default: "/")
	NavigationTimeout string `yaml:"navigationTimeout"` // Go duration string (default: "30s")
	PrintCSS          string `yaml:"printCSS"`          // Extra print-media CSS (empty = built-in overrides)
}

// BuildConfig describes the site's build output.
type BuildConfig struct {
	Dir string `yaml:"dir"` // Build output directory removed by --rebuild (default: "dist")
}

// DefaultConfig returns the zero-config run: npm preview on port 4321,
// rendering "/" to site.pdf.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Command:        "npm",
			Args:           []string{"run", "preview"},
			Port:           DefaultPort,
			StartupTimeout: DefaultStartupTimeout,
			SettleDelay:    DefaultSettleDelay,
		},
		Export: ExportConfig{
			Output:            DefaultOutput,
			Path:              "/",
			NavigationTimeout: DefaultNavTimeout,
		},
		Build: BuildConfig{Dir: DefaultBuildDir},
	}
}

// URL returns the preview address to render.
func (c *Config) URL() string {
	path := c.Export.Path
	if path == "" {
		path = "/"
	}
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("http://localhost:%d%s", port, path)
}

// Marker returns the readiness marker, derived from the port when unset.
func (c *Config) Marker() string {
	if c.Server.ReadyMarker != "" {
		return c.Server.ReadyMarker
	}
	port := c.Server.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("http://localhost:%d/", port)
}

// StartupTimeout returns the parsed startup timeout.
func (c *Config) StartupTimeout() time.Duration {
	return parseDuration(c.Server.StartupTimeout, DefaultStartupTimeout)
}

// SettleDelay returns the parsed settle delay.
func (c *Config) SettleDelay() time.Duration {
	return parseDuration(c.Server.SettleDelay, DefaultSettleDelay)
}

// NavigationTimeout returns the parsed navigation timeout.
func (c *Config) NavigationTimeout() time.Duration {
	return parseDuration(c.Export.NavigationTimeout, DefaultNavTimeout)
}

// Validate rejects values that would only fail later, mid-run.
func (c *Config) Validate() error {
	if c.Server.Command == "" {
		return fmt.Errorf("server.command: cannot be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: invalid port %d", c.Server.Port)
	}
	for field, v := range map[string]string{
		"server.startupTimeout":    c.Server.StartupTimeout,
		"server.settleDelay":       c.Server.SettleDelay,
		"export.navigationTimeout": c.Export.NavigationTimeout,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("%s: invalid duration %q", field, v)
		}
	}
	if c.Export.Output == "" {
		return fmt.Errorf("export.output: cannot be empty")
	}
	return nil
}

// Load reads configuration from path. An empty path searches the current
// directory for site2pdf.yaml / site2pdf.yml and silently falls back to
// DefaultConfig when neither exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		found, ok := findLocalConfig()
		if !ok {
			return DefaultConfig(), nil
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrConfigParse, path, maxConfigSize)
	}

	// Start from defaults so a partial file only overrides what it names.
	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findLocalConfig looks for a default config file in the current directory.
func findLocalConfig() (string, bool) {
	for _, name := range []string{"site2pdf.yaml", "site2pdf.yml"} {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name, true
		}
	}
	return "", false
}

// parseDuration parses v, falling back to def (which must parse).
func parseDuration(v, def string) time.Duration {
	if v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	d, _ := time.ParseDuration(def)
	return d
}
