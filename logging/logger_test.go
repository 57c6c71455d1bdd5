package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupLogger(t *testing.T, level Level) string {
	t.Helper()

	logDir := filepath.Join(t.TempDir(), "logs")
	if err := Initialize(logDir, level); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	logPath := GetLogPath()
	if logPath == "" {
		t.Fatal("GetLogPath returned empty path")
	}
	t.Cleanup(func() { _ = Close() })
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	return string(data)
}

func TestInitializeAndLogWrites(t *testing.T) {
	logPath := setupLogger(t, LevelInfo)

	Info("hello %s", "world")
	content := readLog(t, logPath)

	if !strings.HasPrefix(filepath.Base(logPath), "termface-") {
		t.Errorf("Expected dated termface log name, got %q", logPath)
	}
	if !strings.Contains(content, "INFO: hello world") {
		t.Errorf("Expected log line to contain message, got %q", content)
	}
}

func TestSetEnabledDisablesLogging(t *testing.T) {
	logPath := setupLogger(t, LevelDebug)

	SetEnabled(false)
	Info("should not write")
	content := readLog(t, logPath)

	if strings.TrimSpace(content) != "" {
		t.Errorf("Expected no log output when disabled, got %q", content)
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := setupLogger(t, LevelWarn)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	WithError(errors.New("boom"), "resize")
	WithError(nil, "ignored")
	content := readLog(t, logPath)

	if strings.Contains(content, "info message") || strings.Contains(content, "debug message") {
		t.Errorf("Did not expect messages below warn, got %q", content)
	}
	if !strings.Contains(content, "WARN: warn message") {
		t.Errorf("Expected warn log, got %q", content)
	}
	if !strings.Contains(content, "ERROR: resize: boom") {
		t.Errorf("Expected error with context, got %q", content)
	}
	if strings.Contains(content, "ignored") {
		t.Errorf("Expected nil error skipped, got %q", content)
	}
}

func TestUninitializedIsSilent(t *testing.T) {
	Info("nobody listens")
	if GetLogPath() != "" {
		t.Error("Expected no log path without Initialize")
	}
	if err := Close(); err != nil {
		t.Errorf("Expected nil from Close, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
		err  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.name)
		if got != tt.want || (err != nil) != tt.err {
			t.Errorf("ParseLevel(%q): expected %v err=%v, got %v %v", tt.name, tt.want, tt.err, got, err)
		}
	}
}
