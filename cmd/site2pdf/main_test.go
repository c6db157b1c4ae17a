package main

import (
	"fmt"
	"testing"

	site2pdf "github.com/alnah/go-site2pdf"
)

// ---------------------------------------------------------------------------
// TestFinalStatus - Exit Code and Message Resolution
// ---------------------------------------------------------------------------

func TestFinalStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		interrupted bool
		wantCode    int
		wantMsg     string
	}{
		{
			name:     "success",
			err:      nil,
			wantCode: ExitSuccess,
			wantMsg:  "",
		},
		{
			name:        "signal after completed run keeps success",
			err:         nil,
			interrupted: true,
			wantCode:    ExitSuccess,
			wantMsg:     "",
		},
		{
			name:        "signal mid-run reports interrupted",
			err:         fmt.Errorf("%w: context canceled", site2pdf.ErrNavigation),
			interrupted: true,
			wantCode:    ExitInterrupted,
			wantMsg:     "interrupted",
		},
		{
			name:     "startup failure",
			err:      site2pdf.ErrStartupTimeout,
			wantCode: ExitFailure,
			wantMsg:  site2pdf.ErrStartupTimeout.Error(),
		},
		{
			name:     "usage failure",
			err:      fmt.Errorf("%w: --timeout", errUsage),
			wantCode: ExitUsage,
			wantMsg:  "invalid usage: --timeout",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, msg := finalStatus(tt.err, tt.interrupted)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}
