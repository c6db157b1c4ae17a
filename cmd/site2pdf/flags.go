package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all recognized flags.
type cliFlags struct {
	config  string
	output  string
	timeout string
	rebuild bool
	quiet   bool
	verbose bool
	version bool
}

// parseFlags parses args (including the program name at args[0]).
// Returns the flags, remaining positional arguments, and any parse error.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("site2pdf", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // errors are printed by the caller

	fs.StringVarP(&f.config, "config", "c", "", "config file path (default: site2pdf.yaml if present)")
	fs.StringVarP(&f.output, "output", "o", "", "PDF output path (overrides config)")
	fs.StringVar(&f.timeout, "timeout", "", "navigation timeout, e.g. 45s (overrides config)")
	fs.BoolVar(&f.rebuild, "rebuild", false, "delete the build output directory before running")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show server output and phase transitions")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return f, fs.Args(), nil
}

// printUsage prints the usage message and flag help.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "site2pdf - export a locally served web site to a print PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Starts the site's preview server, renders the page in headless Chrome,")
	fmt.Fprintln(w, "writes the PDF, and shuts the server down again.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: site2pdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
