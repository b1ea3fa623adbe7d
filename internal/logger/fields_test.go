package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithModel(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	enriched := WithModel(logger, "  gemini  ", "gemini-2.5-flash")
	enriched.Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	ctx := entries[0].ContextMap()
	if ctx[FieldProvider] != "gemini" {
		t.Fatalf("expected provider field to be gemini, got %q", ctx[FieldProvider])
	}
	if ctx[FieldModel] != "gemini-2.5-flash" {
		t.Fatalf("expected model field to be gemini-2.5-flash, got %q", ctx[FieldModel])
	}
}

func TestWithModelSkipsEmptyValues(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithModel(logger, "", "   ").Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Context) != 0 {
		t.Fatalf("expected no fields, got %+v", entries[0].Context)
	}
}

func TestWithModelNilLogger(t *testing.T) {
	enriched := WithModel(nil, "gemini", "gemini-embedding-001")
	if enriched == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}

	// Must not panic.
	enriched.Info("test log")
}
