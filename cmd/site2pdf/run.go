package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	site2pdf "github.com/alnah/go-site2pdf"
	"github.com/alnah/go-site2pdf/internal/config"
)

// run loads the configuration, applies flag overrides, and executes one
// export. stdout gets the success line, stderr the diagnostics.
func run(ctx context.Context, flags *cliFlags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	if err := applyOverrides(cfg, flags); err != nil {
		return err
	}

	if flags.rebuild {
		if err := removeBuildDir(cfg.Build.Dir, stderr, flags.quiet); err != nil {
			return err
		}
	}

	opts := []site2pdf.Option{
		site2pdf.WithNavigationTimeout(cfg.NavigationTimeout()),
	}
	if flags.verbose {
		opts = append(opts, site2pdf.WithLogWriter(stderr))
	}

	svc := site2pdf.New(opts...)
	defer func() {
		if cerr := svc.Close(); cerr != nil && !flags.quiet {
			fmt.Fprintf(stderr, "closing browser: %v\n", cerr)
		}
	}()

	result, err := svc.Run(ctx, buildInput(cfg, flags, stderr))
	if err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(stdout, "Created %s (%d pages, %s)\n",
			result.OutputPath, result.Pages, result.Elapsed.Round(time.Millisecond))
	}
	return nil
}

// buildInput translates the merged configuration into run options.
func buildInput(cfg *config.Config, flags *cliFlags, stderr io.Writer) site2pdf.Input {
	var echo io.Writer
	if flags.verbose {
		echo = stderr
	}

	return site2pdf.Input{
		Server: site2pdf.ServerOptions{
			Command:        cfg.Server.Command,
			Args:           cfg.Server.Args,
			Dir:            cfg.Server.Dir,
			ReadyMarker:    cfg.Marker(),
			StartupTimeout: cfg.StartupTimeout(),
			SettleDelay:    cfg.SettleDelay(),
			Output:         echo,
		},
		Export: site2pdf.ExportOptions{
			URL:        cfg.URL(),
			OutputPath: cfg.Export.Output,
			PrintCSS:   cfg.Export.PrintCSS,
		},
	}
}

// applyOverrides merges flag values over the loaded config.
func applyOverrides(cfg *config.Config, flags *cliFlags) error {
	if flags.output != "" {
		cfg.Export.Output = flags.output
	}
	if flags.timeout != "" {
		if _, err := time.ParseDuration(flags.timeout); err != nil {
			return fmt.Errorf("%w: --timeout %q: %v", errUsage, flags.timeout, err)
		}
		cfg.Export.NavigationTimeout = flags.timeout
	}
	return cfg.Validate()
}

// removeBuildDir deletes the build output directory so the next server
// start triggers a full rebuild by whatever build step precedes it.
func removeBuildDir(dir string, stderr io.Writer, quiet bool) error {
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return fmt.Errorf("%w: refusing to remove build dir %q", errUsage, dir)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing build dir %s: %w", dir, err)
	}
	if !quiet {
		fmt.Fprintf(stderr, "Removed %s for full rebuild\n", dir)
	}
	return nil
}
