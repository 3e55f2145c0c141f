package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_InvalidLevel(t *testing.T) {
	if err := Init("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestInit_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json.log")
	if err := Init("info", path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("analysis finished", zap.String("symbol", "AAPL"))
	Debug("hidden")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"symbol":"AAPL"`) {
		t.Errorf("expected structured field in %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry should be filtered at info level")
	}
}

func TestCtx_RequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Fatalf("expected req-42, got %q", got)
	}
	Ctx(ctx).Info("served")
	Ctx(context.Background()).Info("no id")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if id, ok := entries[0].ContextMap()["request_id"]; !ok || id != "req-42" {
		t.Errorf("expected request_id field, got %v", entries[0].ContextMap())
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Error("unexpected request_id without context value")
	}
}
