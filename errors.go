package site2pdf

import "errors"

// Sentinel errors for library operations.
var (
	// Supervisor errors.
	ErrServerStart    = errors.New("failed to start preview server")
	ErrStartupTimeout = errors.New("preview server did not announce readiness in time")
	ErrProcessExit    = errors.New("preview server exited before becoming ready")
	ErrCleanup        = errors.New("preview server cleanup incomplete")

	// Driver errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrNavigation     = errors.New("failed to load page")
	ErrExport         = errors.New("PDF export failed")

	// Input validation errors.
	ErrNoServerCommand = errors.New("server command cannot be empty")
	ErrNoTargetURL     = errors.New("target URL cannot be empty")
	ErrNoOutputPath    = errors.New("output path cannot be empty")
)
