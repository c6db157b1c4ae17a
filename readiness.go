package site2pdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxOutputLine bounds a single scanned server-output line (1MB). Lines
// beyond this abort the scan rather than grow memory without limit.
const maxOutputLine = 1 << 20

// watchReadiness consumes r until EOF, echoing each line to echo when
// non-nil, and delivers the first line containing marker on the returned
// channel. The stream keeps draining after a match, and after a scanner
// abort (over-long line, read error), so the child process never blocks on
// a full pipe; lines arriving after an abort are no longer matched, the
// startup timeout covers that case.
func watchReadiness(r io.Reader, marker string, echo io.Writer) <-chan string {
	ready := make(chan string, 1)

	go func() {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxOutputLine)

		matched := false
		for sc.Scan() {
			line := sc.Text()
			if echo != nil {
				fmt.Fprintln(echo, line)
			}
			if !matched && strings.Contains(line, marker) {
				matched = true
				ready <- line
			}
		}

		if err := sc.Err(); err != nil {
			if echo != nil {
				fmt.Fprintf(echo, "output scan aborted: %v\n", err)
			}
			// The writer is the child's output pipe; it must be consumed
			// to EOF or the child wedges and its exit never registers.
			_, _ = io.Copy(io.Discard, r)
		}
	}()

	return ready
}
