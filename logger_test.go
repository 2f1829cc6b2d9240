package ink

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	Logger().Info("this should produce no output")
}

func TestSetLoggerInstallsHandler(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Warn("hello")
	if buf.Len() == 0 {
		t.Fatal("expected SetLogger's handler to receive the log record")
	}
}

func TestSetLoggerNilRestoresNop(t *testing.T) {
	SetLogger(nil)
	Logger().Error("should not panic or write anywhere visible")
}
