package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		debugOn   bool
		warningOn bool
	}{
		{"quiet", false, false, true},
		{"verbose", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.verbose)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatalf("expected logger instance")
			}
			defer func() { _ = logger.Sync() }()

			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
			if got := logger.Core().Enabled(zapcore.WarnLevel); got != tt.warningOn {
				t.Errorf("warn enabled = %v, want %v", got, tt.warningOn)
			}
		})
	}
}
