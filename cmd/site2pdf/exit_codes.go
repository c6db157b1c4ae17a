package main

import (
	"errors"

	"github.com/alnah/go-site2pdf/internal/config"
)

// errUsage marks flag or configuration mistakes.
var errUsage = errors.New("invalid usage")

// Exit codes. Startup and export failures both exit 1; interrupted runs get
// the conventional 128+SIGINT code instead of reporting success.
const (
	ExitSuccess     = 0   // PDF written and verified
	ExitFailure     = 1   // Any failure during startup or export
	ExitUsage       = 2   // Invalid flags or config
	ExitInterrupted = 130 // Run cancelled by SIGINT/SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) {
		return ExitUsage
	}

	return ExitFailure
}
