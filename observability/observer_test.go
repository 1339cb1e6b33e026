package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yemubit/zeroclaw/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{observability.LevelVerbose, slog.LevelDebug},
		{observability.LevelInfo, slog.LevelInfo},
		{observability.LevelWarning, slog.LevelWarn},
		{observability.LevelError, slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestMultiObserver(t *testing.T) {
	obs1 := &captureObserver{}
	obs2 := &captureObserver{}

	multi := observability.NewMultiObserver(nil, obs1, obs2, nil)
	multi.OnEvent(context.Background(), observability.Event{
		Type:  "test.event",
		Level: observability.LevelInfo,
	})

	if len(obs1.events) != 1 || len(obs2.events) != 1 {
		t.Fatalf("got %d and %d events, want 1 each", len(obs1.events), len(obs2.events))
	}
	if obs1.events[0].Type != "test.event" {
		t.Errorf("event type = %q, want %q", obs1.events[0].Type, "test.event")
	}
}

func TestMultiObserver_PanicIsolated(t *testing.T) {
	after := &captureObserver{}
	multi := observability.NewMultiObserver(panicObserver{}, after)

	multi.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(after.events) != 1 {
		t.Errorf("observer after a panicking one received %d events, want 1", len(after.events))
	}
}

func TestEmit(t *testing.T) {
	capture := &captureObserver{}

	observability.Emit(context.Background(), capture, observability.Event{Type: "x"})
	observability.Emit(context.Background(), nil, observability.Event{Type: "x"})
	observability.Emit(context.Background(), panicObserver{}, observability.Event{Type: "x"})

	if len(capture.events) != 1 {
		t.Fatalf("got %d events, want 1", len(capture.events))
	}
	if capture.events[0].Timestamp.IsZero() {
		t.Error("Emit should stamp events without a timestamp")
	}
}

func TestSlogObserver_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "info at warn handler", level: observability.LevelInfo, minLevel: slog.LevelWarn, expectLog: false},
		{name: "warning at warn handler", level: observability.LevelWarning, minLevel: slog.LevelWarn, expectLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
				Type:      "test.event",
				Level:     tt.level,
				Timestamp: time.Now(),
				Source:    "test",
			})

			if hasOutput := buf.Len() > 0; hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:   "kernel.tool.call",
		Level:  observability.LevelInfo,
		Source: "kernel.Execute",
		Data: map[string]any{
			"tool":    "shell",
			"success": true,
		},
	})

	output := buf.String()
	for _, want := range []string{"kernel.tool.call", "source=kernel.Execute", "success=true", "tool=shell"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Index(output, "success=") > strings.Index(output, "tool=") {
		t.Errorf("attributes should be sorted: %s", output)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "noop", key: "noop"},
		{name: "slog", key: "slog"},
		{name: "empty selects slog", key: ""},
		{name: "unknown fails", key: "nonexistent", wantErr: observability.ErrUnknownObserver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := observability.New(tt.key, slog.Default())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("New(%q) error = %v, want %v", tt.key, err, tt.wantErr)
				}
				return
			}
			if err != nil || obs == nil {
				t.Errorf("New(%q) = %v, %v", tt.key, obs, err)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	custom := &captureObserver{}
	observability.Register("test-custom", func(*slog.Logger) observability.Observer { return custom })

	obs, err := observability.New("test-custom", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(custom.events) != 1 {
		t.Errorf("received %d events, want 1", len(custom.events))
	}
}

type captureObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *captureObserver) OnEvent(_ context.Context, event observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

type panicObserver struct{}

func (panicObserver) OnEvent(context.Context, observability.Event) {
	panic("observer failure")
}
