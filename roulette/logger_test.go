package roulette

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestLoggerIsSilentByDefault(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("default logger should discard everything")
	}
}

func TestSetLoggerReceivesFallback(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	if got := ResolveRotations(math.Pi); got != FallbackRotations {
		t.Fatalf("expected fallback, got %d", got)
	}
	if !strings.Contains(buf.String(), "did not converge") {
		t.Fatalf("expected a fallback record, got %q", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	ResolveRotations(math.Pi)
	if buf.Len() != 0 {
		t.Fatalf("logging should stop after SetLogger(nil)")
	}
}
