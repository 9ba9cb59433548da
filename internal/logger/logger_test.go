package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod"} {
		l, err := NewLogger(env, Options{})
		if err != nil {
			t.Fatalf("NewLogger(%q): %v", env, err)
		}
		_ = l.Sync()
	}
}

func TestNewLogger_UnknownEnv(t *testing.T) {
	if _, err := NewLogger("staging", Options{}); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", Options{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("expected debug level enabled")
	}

	if _, err := NewLogger("prod", Options{Level: "loud"}); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewLogger_Format(t *testing.T) {
	for _, f := range []string{"json", "console"} {
		l, err := NewLogger("local", Options{Format: f})
		if err != nil {
			t.Fatalf("format %q: %v", f, err)
		}
		_ = l.Sync()
	}
	if _, err := NewLogger("local", Options{Format: "xml"}); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reqLogger := zap.New(core).With(zap.String("request_id", "r-1"))

	ctx := ContextWithLogger(context.Background(), reqLogger)
	FromContext(ctx).Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if logs.All()[0].ContextMap()["request_id"] != "r-1" {
		t.Error("request-scoped fields lost")
	}
}

func TestFromContextOr_Fallback(t *testing.T) {
	base := zap.NewExample()
	if got := FromContextOr(context.Background(), base); got != base {
		t.Error("expected fallback logger")
	}
	if FromContext(context.Background()) == nil {
		t.Error("FromContext must never return nil")
	}
}
