package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_RoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := NewContext(context.Background(), zap.New(core))

	FromContext(ctx).Info("carried")
	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
}

func TestFromContext_MissingLoggerIsNop(t *testing.T) {
	log := FromContext(context.Background())
	if log == nil {
		t.Fatal("expected a usable logger")
	}
	log.Info("discarded")
}
