package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func initTestLogger(t *testing.T, verbose bool) (*bytes.Buffer, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	consoleBuffer := &bytes.Buffer{}

	if err := Init(consoleBuffer, logPath, verbose); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	t.Cleanup(Close)
	return consoleBuffer, logPath
}

func readLog(t *testing.T, logPath string) string {
	t.Helper()
	logContent, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(logContent)
}

func TestLoggerInit(t *testing.T) {
	consoleBuffer, logPath := initTestLogger(t, false)

	// Test that log file (and its directory) was created
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}

	// Test Info logging
	Info("Test info message")
	consoleOutput := consoleBuffer.String()
	if !strings.Contains(consoleOutput, "Test info message") {
		t.Errorf("Console output missing info message: %s", consoleOutput)
	}

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "level=INFO") {
		t.Error("Log file missing INFO level")
	}
	if !strings.Contains(logStr, `msg="Test info message"`) {
		t.Errorf("Log file missing info message: %s", logStr)
	}
}

func TestLoggerLevels(t *testing.T) {
	consoleBuffer, logPath := initTestLogger(t, false)

	// Test all log levels
	Debug("Debug message")
	Info("Info message")
	Warn("Warn message")
	Error("Error message")

	logStr := readLog(t, logPath)

	// File should contain all levels
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if !strings.Contains(logStr, "level="+level) {
			t.Errorf("Log file missing %s level", level)
		}
	}

	// Console should NOT contain DEBUG (verbose=false)
	consoleStr := consoleBuffer.String()
	if strings.Contains(consoleStr, "[DEBUG]") {
		t.Error("Console should not show DEBUG when verbose=false")
	}
	if !strings.Contains(consoleStr, "Warn message") || !strings.Contains(consoleStr, "Error message") {
		t.Errorf("Console missing warn/error messages: %s", consoleStr)
	}
}

func TestLoggerVerbose(t *testing.T) {
	consoleBuffer, _ := initTestLogger(t, true)

	Debug("Debug message")

	consoleStr := consoleBuffer.String()
	if !strings.Contains(consoleStr, "[DEBUG]") {
		t.Error("Console should show DEBUG when verbose=true")
	}
	if !strings.Contains(consoleStr, "Debug message") {
		t.Error("Console missing debug message content")
	}
}

func TestSetLevel(t *testing.T) {
	consoleBuffer, logPath := initTestLogger(t, false)

	SetLevel(LevelError)
	Warn("quiet warning")
	Error("loud error")
	if IsVerbose() {
		t.Error("IsVerbose() should be false at ERROR level")
	}

	consoleStr := consoleBuffer.String()
	if strings.Contains(consoleStr, "quiet warning") {
		t.Error("Console should hide WARN at ERROR level")
	}
	if !strings.Contains(consoleStr, "loud error") {
		t.Error("Console missing error message")
	}

	Close()
	if !strings.Contains(readLog(t, logPath), "quiet warning") {
		t.Error("Log file should keep every level")
	}
}

func TestLoggerParseError(t *testing.T) {
	consoleBuffer, logPath := initTestLogger(t, false)

	// Log a parse error
	LogParseError("/path/to/File.java", os.ErrNotExist, "test context")

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, `msg="parse error"`) {
		t.Error("Log file missing parse error record")
	}
	if !strings.Contains(logStr, "file=/path/to/File.java") {
		t.Error("Log file missing file path")
	}
	if !strings.Contains(logStr, `context="test context"`) {
		t.Error("Log file missing context")
	}

	// Console should NOT show parse error details (only summary if debug enabled)
	if strings.Contains(consoleBuffer.String(), "File.java") {
		t.Error("Console should not show detailed parse errors")
	}
}

func TestLoggerResolveError(t *testing.T) {
	consoleBuffer, logPath := initTestLogger(t, false)

	LogResolveError("com.acme.PageController", "list", errors.New("unresolved type variable T"))

	logStr := readLog(t, logPath)
	if !strings.Contains(logStr, "level=WARN") || !strings.Contains(logStr, "scope=com.acme.PageController") {
		t.Errorf("Log file missing resolve error: %s", logStr)
	}
	if !strings.Contains(logStr, "element=list") {
		t.Error("Log file missing element")
	}
	if consoleBuffer.Len() != 0 {
		t.Errorf("Console should stay clean, got: %s", consoleBuffer.String())
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("Level.String() = %s, expected %s", result, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"chatty":  LevelInfo,
	}
	for in, expected := range tests {
		if got := ParseLevel(in); got != expected {
			t.Errorf("ParseLevel(%q) = %s, expected %s", in, got, expected)
		}
	}
}

func TestGetLogFilePath(t *testing.T) {
	_, logPath := initTestLogger(t, false)

	retrievedPath := GetLogFilePath()
	if retrievedPath != logPath {
		t.Errorf("GetLogFilePath() = %s, expected %s", retrievedPath, logPath)
	}
}

func TestIsVerbose(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	consoleBuffer := &bytes.Buffer{}

	// Test with verbose=false
	if err := Init(consoleBuffer, logPath, false); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if IsVerbose() {
		t.Error("IsVerbose() should return false when initialized with verbose=false")
	}
	Close()

	// Test with verbose=true
	if err := Init(consoleBuffer, logPath, true); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Close()

	if !IsVerbose() {
		t.Error("IsVerbose() should return true when initialized with verbose=true")
	}
}
