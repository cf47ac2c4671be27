package main

import (
	"context"
	"fmt"
	"testing"

	tperrors "github.com/matzehuels/tompkins/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"canceled", fmt.Errorf("render: %w", context.Canceled), exitInterrupted},
		{"invalid parameter", tperrors.New(tperrors.ErrCodeInvalidParameter, "k must be >= 3"), exitInvalid},
		{"invalid format", tperrors.New(tperrors.ErrCodeInvalidFormat, "gif"), exitInvalid},
		{"invalid config", tperrors.New(tperrors.ErrCodeInvalidConfig, "bad key"), exitInvalid},
		{"overflow", tperrors.New(tperrors.ErrCodeOverflow, "too big"), exitInvalid},
		{"render failed", tperrors.New(tperrors.ErrCodeRenderFailed, "disk full"), exitFailure},
		{"unknown flag", fmt.Errorf("unknown flag: --colour"), exitInvalid},
		{"bad flag value", fmt.Errorf(`invalid argument "x" for "-k, --k" flag: strconv.ParseInt: parsing "x": invalid syntax`), exitInvalid},
		{"other", fmt.Errorf("listen tcp: address in use"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
