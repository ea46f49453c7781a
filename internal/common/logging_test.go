package common

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogOptionsLevel(t *testing.T) {
	tests := []struct {
		opts LogOptions
		want slog.Level
	}{
		{LogOptions{}, slog.LevelInfo},
		{LogOptions{Verbose: true}, slog.LevelDebug},
		{LogOptions{Quiet: true}, slog.LevelError},
		{LogOptions{Quiet: true, Verbose: true}, slog.LevelError},
	}
	for _, tt := range tests {
		if got := tt.opts.Level(); got != tt.want {
			t.Errorf("%+v.Level() = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestNewLogger_JSONOnStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closer, err := NewLogger(&stderr, LogOptions{})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer closer()

	logger.Info("hello", "rows", 3)
	logger.Debug("hidden")

	var record map[string]any
	if err := json.Unmarshal(stderr.Bytes(), &record); err != nil {
		t.Fatalf("stderr is not a single JSON record: %v\n%s", err, stderr.String())
	}
	if record["msg"] != "hello" {
		t.Errorf("msg = %v, want hello", record["msg"])
	}
	if id, _ := record["run_id"].(string); len(id) != 36 {
		t.Errorf("run_id = %v, want a uuid", record["run_id"])
	}
}

func TestNewLogger_FanoutToFile(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")

	logger, closer, err := NewLogger(&stderr, LogOptions{File: path, Verbose: true})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("matched author", "score", 91)
	if err := closer(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	if !strings.Contains(stderr.String(), "msg=\"matched author\"") {
		t.Errorf("stderr = %q, want text record", stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("log file is not JSON: %v\n%s", err, data)
	}
	if record["score"] != float64(91) {
		t.Errorf("score = %v, want 91", record["score"])
	}
}

func TestNewLogger_BadFile(t *testing.T) {
	_, _, err := NewLogger(&bytes.Buffer{}, LogOptions{File: filepath.Join(t.TempDir(), "missing", "run.log")})
	if err == nil {
		t.Error("NewLogger() error = nil, want open failure")
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true")
	}
}
