package site2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pageExporter abstracts the render-and-export step to enable testing
// without a browser.
type pageExporter interface {
	Export(ctx context.Context, opts ExportOptions) error
	Close() error
}

// Compile-time interface check
var _ pageExporter = (*ChromeExporter)(nil)

// Fixed render viewport. Print layout is resolution independent, but sites
// commonly branch on viewport width; a large desktop viewport keeps the
// printed layout consistent.
const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// A4 paper dimensions in inches.
const (
	paperWidthA4Inches  = 8.27
	paperHeightA4Inches = 11.69
)

// marginTopInches is the uniform top margin (10mm) reserved for the
// page-number header. The other three margins are zero; the page content
// manages its own spacing.
const marginTopInches = 10.0 / 25.4

// networkIdleWindow is how long the network must stay quiet before
// navigation counts as settled.
const networkIdleWindow = 300 * time.Millisecond

// DefaultPrintCSS is injected before export. The uniform top margin from
// the print settings is suppressed on the first two printed pages: page one
// via :first, page two by naming the page the cover spread flows onto. The
// cover spread is expected to fill exactly the first two pages.
const DefaultPrintCSS = `@page :first { margin-top: 0; }
@page cover { margin-top: 0; }
body > :first-child { page: cover; }
`

// headerTemplate renders only the current page number, centered.
const headerTemplate = `<div style="font-size: 9px; font-family: sans-serif; color: #666; width: 100%; text-align: center;"><span class="pageNumber"></span></div>`

// footerTemplate is intentionally empty.
const footerTemplate = `<span></span>`

// injectStyleJS appends a print-media <style> node with the given CSS.
const injectStyleJS = `(css) => {
	const style = document.createElement("style");
	style.media = "print";
	style.textContent = css;
	document.head.appendChild(style);
}`

// fontsReadyJS resolves once all declared fonts finished loading. Eval
// awaits the promise.
const fontsReadyJS = `() => document.fonts.ready.then(() => true)`

// ChromeExporter renders a URL to PDF using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type ChromeExporter struct {
	browser *rod.Browser
	timeout time.Duration
}

// NewChromeExporter creates a ChromeExporter with the given navigation
// timeout (<=0 = DefaultNavigationTimeout).
func NewChromeExporter(timeout time.Duration) *ChromeExporter {
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	return &ChromeExporter{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (e *ChromeExporter) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources. Safe to call more than once.
func (e *ChromeExporter) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

// Export navigates to opts.URL, waits for load, network idle and font
// readiness, injects the print stylesheet, and writes the PDF to
// opts.OutputPath. The page is closed on every exit path.
func (e *ChromeExporter) Export(ctx context.Context, opts ExportOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := e.ensureBrowser(); err != nil {
		return err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	// Honor an earlier deadline from the caller's context.
	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}
	p := page.Context(ctx).Timeout(timeout)

	waitIdle := p.WaitRequestIdle(networkIdleWindow, nil, nil, nil)
	if err := p.Navigate(opts.URL); err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}
	waitIdle()

	if _, err := p.Eval(fontsReadyJS); err != nil {
		return fmt.Errorf("%w: waiting for fonts: %v", ErrNavigation, err)
	}

	css := opts.PrintCSS
	if css == "" {
		css = DefaultPrintCSS
	}
	if _, err := p.Eval(injectStyleJS, css); err != nil {
		return fmt.Errorf("%w: injecting print styles: %v", ErrExport, err)
	}

	reader, err := p.PDF(buildPrintOptions())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrExport, err)
	}
	if len(buf) == 0 {
		return fmt.Errorf("%w: empty PDF stream", ErrExport)
	}

	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}
	if err := os.WriteFile(opts.OutputPath, buf, 0o644); err != nil { // #nosec G306 -- artifact is meant to be shared
		return fmt.Errorf("%w: %v", ErrExport, err)
	}

	return nil
}

// buildPrintOptions constructs the PrintToPDF parameters: A4 with
// CSS-declared page sizes honored, 10mm top margin, zero elsewhere, and a
// page-number-only header.
func buildPrintOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PreferCSSPageSize:   true,
		PaperWidth:          floatPtr(paperWidthA4Inches),
		PaperHeight:         floatPtr(paperHeightA4Inches),
		MarginTop:           floatPtr(marginTopInches),
		MarginBottom:        floatPtr(0),
		MarginLeft:          floatPtr(0),
		MarginRight:         floatPtr(0),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      headerTemplate,
		FooterTemplate:      footerTemplate,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
