package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	t.Run("development writes debug text", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := Init(&buf, Options{Development: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		log.Debug("checkpoint saved", "goal_id", "g-1")

		out := buf.String()
		if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "goal_id=g-1") {
			t.Errorf("unexpected text output: %q", out)
		}
	})

	t.Run("production writes info json", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := Init(&buf, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		log.Debug("hidden")
		slog.Info("buddy request sent", "status", "PENDING")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
		}
		var record map[string]interface{}
		if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if record["msg"] != "buddy request sent" || record["status"] != "PENDING" {
			t.Errorf("unexpected record: %v", record)
		}
	})

	t.Run("level override", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := Init(&buf, Options{Development: true, Level: slog.LevelWarn})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		log.Info("goal loaded")
		log.Warn("session expired")

		out := buf.String()
		if strings.Contains(out, "goal loaded") {
			t.Errorf("info record should be filtered: %q", out)
		}
		if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "session expired") {
			t.Errorf("warn record missing: %q", out)
		}
	})

	t.Run("invalid sentry dsn", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := Init(&buf, Options{SentryDSN: "not a dsn"}); err == nil {
			t.Error("expected error for malformed DSN")
		}
	})
}
