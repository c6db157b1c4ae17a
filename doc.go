// Package site2pdf exports a locally served web site to a print-formatted
// PDF using headless Chrome.
//
// A run starts the site's preview server as a child process, waits for it to
// announce its listening address, drives the browser to the served page, and
// prints it to a paginated PDF before shutting the server down again. The
// server is always torn down, whether the export succeeds, fails, or is
// interrupted.
//
// # Quick Start
//
//	svc := site2pdf.New()
//	defer svc.Close()
//
//	result, err := svc.Run(ctx, site2pdf.Input{
//	    Server: site2pdf.ServerOptions{
//	        Command: "npm",
//	        Args:    []string{"run", "preview"},
//	    },
//	    Export: site2pdf.ExportOptions{
//	        URL:        "http://localhost:4321/",
//	        OutputPath: "site.pdf",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %s (%d pages)\n", result.OutputPath, result.Pages)
//
// # Run Pipeline
//
// A run moves through these phases:
//
//  1. Server startup: spawn the preview server in its own process group and
//     scan its output for the readiness marker (plus a settle delay, since
//     the address line can precede the socket actually accepting).
//  2. Export: navigate headless Chrome (go-rod) to the preview URL, wait for
//     load, network idle and font readiness, inject print style overrides,
//     and print to an A4 PDF with a page-number header.
//  3. Verification: validate the written PDF and count its pages (pdfcpu).
//  4. Cleanup: terminate the whole server process tree, escalating from a
//     graceful signal to a forced kill when needed.
//
// Cleanup runs on every exit path. Its failures are logged, never surfaced
// as the run's error, so a broken teardown cannot mask an export failure.
package site2pdf
