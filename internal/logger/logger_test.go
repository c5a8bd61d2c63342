package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestSetup_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf, "info")

	l.Info("follow created", slog.String("component", "FollowService"), slog.Int64("follower", 1))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "follow created" {
		t.Errorf("msg = %v, want %q", entry["msg"], "follow created")
	}
	if entry["component"] != "FollowService" {
		t.Errorf("component = %v, want FollowService", entry["component"])
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
	}{
		{level: "debug", debugSeen: true, infoSeen: true},
		{level: "info", debugSeen: false, infoSeen: true},
		{level: "error", debugSeen: false, infoSeen: false},
		{level: "bogus", debugSeen: false, infoSeen: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := Setup(&buf, tt.level)

			l.Debug("d")
			if got := buf.Len() > 0; got != tt.debugSeen {
				t.Errorf("debug written = %v, want %v", got, tt.debugSeen)
			}

			buf.Reset()
			l.Info("i")
			if got := buf.Len() > 0; got != tt.infoSeen {
				t.Errorf("info written = %v, want %v", got, tt.infoSeen)
			}
		})
	}
}
