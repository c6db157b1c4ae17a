package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, _, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}

	if flags.version {
		fmt.Printf("site2pdf %s\n", Version)
		return
	}

	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err = run(ctx, flags, os.Stdout, os.Stderr)

	if code, msg := finalStatus(err, ctx.Err() != nil); code != ExitSuccess {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(code)
	}
}

// finalStatus maps the run outcome and the signal context's state to the
// process exit code and stderr message. A delivered signal pre-empts the
// run and its cancellation error is reported as "interrupted" — but only
// when the run actually failed: a PDF that was written and verified before
// the signal landed is still a success.
func finalStatus(err error, interrupted bool) (int, string) {
	if err == nil {
		return ExitSuccess, ""
	}
	if interrupted {
		return ExitInterrupted, "interrupted"
	}
	return exitCodeFor(err), err.Error()
}
