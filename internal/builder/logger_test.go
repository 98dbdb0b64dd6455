package builder

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := setupLogger(level)
		if err != nil {
			t.Fatalf("%s: %v", level, err)
		}
		if !logger.Core().Enabled(mustLevel(t, level)) {
			t.Errorf("%s: level not enabled", level)
		}
	}

	if _, err := setupLogger("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func mustLevel(t *testing.T, level string) zapcore.Level {
	t.Helper()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		t.Fatal(err)
	}
	return lvl
}
