package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSetContext(t *testing.T) {
	ctx = &crashContext{}

	SetContext("generate", "0.1.0-test", "/tmp/test-roadwing")
	SetLastInput("  build a payments service  ")

	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	if ctx.command != "generate" {
		t.Errorf("expected command 'generate', got %q", ctx.command)
	}
	if ctx.version != "0.1.0-test" {
		t.Errorf("expected version '0.1.0-test', got %q", ctx.version)
	}
	if ctx.basePath != "/tmp/test-roadwing" {
		t.Errorf("expected basePath '/tmp/test-roadwing', got %q", ctx.basePath)
	}
	if ctx.input != "build a payments service" {
		t.Errorf("expected trimmed input, got %q", ctx.input)
	}
}

func TestSetLastInputTruncation(t *testing.T) {
	ctx = &crashContext{}

	SetLastInput(strings.Repeat("a", 3000))

	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	if len(ctx.input) > 600 {
		t.Errorf("expected input to be truncated, got length %d", len(ctx.input))
	}
	if !strings.Contains(ctx.input, "[truncated]") {
		t.Error("expected truncated input to contain '[truncated]'")
	}
}

func TestNewCrashLog(t *testing.T) {
	ctx = &crashContext{
		version: "0.1.0",
		command: "timeline",
		input:   "user input",
	}

	log := newCrashLog("test panic")

	if log.PanicValue != "test panic" {
		t.Errorf("expected PanicValue 'test panic', got %q", log.PanicValue)
	}
	if log.Version != "0.1.0" {
		t.Errorf("expected Version '0.1.0', got %q", log.Version)
	}
	if log.Command != "timeline" {
		t.Errorf("expected Command 'timeline', got %q", log.Command)
	}
	if log.LastInput != "user input" {
		t.Errorf("expected LastInput 'user input', got %q", log.LastInput)
	}
	if log.StackTrace == "" {
		t.Error("expected non-empty StackTrace")
	}
}

func TestFormatCrashLog(t *testing.T) {
	log := CrashLog{
		Timestamp:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Version:    "0.1.0",
		Command:    "generate",
		PanicValue: "test panic",
		StackTrace: "goroutine 1 [running]:\nmain.main()",
		LastInput:  "user input",
	}

	formatted := formatCrashLog(log)

	for _, want := range []string{
		"ROADWING CRASH LOG",
		"Timestamp: 2025-01-01T12:00:00Z",
		"Version:   0.1.0",
		"Command:   generate",
		"PANIC VALUE",
		"test panic",
		"STACK TRACE",
		"goroutine 1 [running]",
		"LAST USER INPUT",
		"user input",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("expected formatted log to contain %q", want)
		}
	}
}

func TestWriteCrashLog(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".roadwing")
	ctx = &crashContext{basePath: basePath}

	log := CrashLog{
		Timestamp:  time.Now(),
		Version:    "0.1.0",
		Command:    "stats",
		PanicValue: "test panic",
		StackTrace: "test stack",
	}

	path, err := writeCrashLog(log)
	if err != nil {
		t.Fatalf("writeCrashLog failed: %v", err)
	}

	crashDir := filepath.Join(basePath, CrashLogDir)
	if _, err := os.Stat(crashDir); os.IsNotExist(err) {
		t.Error("expected crash log directory to be created")
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 crash log, got %d", len(logs))
	}
	if logs[0] != path {
		t.Errorf("expected listed log %q to match written path %q", logs[0], path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read crash log: %v", err)
	}
	if !strings.Contains(string(content), "test panic") {
		t.Error("expected crash log to contain panic value")
	}
}

func TestCleanOldCrashLogs(t *testing.T) {
	basePath := filepath.Join(t.TempDir(), ".roadwing")
	crashDir := filepath.Join(basePath, CrashLogDir)
	if err := os.MkdirAll(crashDir, 0755); err != nil {
		t.Fatalf("create crash dir: %v", err)
	}
	ctx = &crashContext{basePath: basePath}

	for i := range MaxCrashLogs + 5 {
		filename := filepath.Join(crashDir, "crash_20250101_1200"+string(rune('0'+i/10))+string(rune('0'+i%10))+".log")
		if err := os.WriteFile(filename, []byte("test"), 0644); err != nil {
			t.Fatalf("create test file: %v", err)
		}
	}

	if err := cleanOldCrashLogs(crashDir); err != nil {
		t.Fatalf("cleanOldCrashLogs failed: %v", err)
	}

	logs, err := ListCrashLogs()
	if err != nil {
		t.Fatalf("ListCrashLogs failed: %v", err)
	}
	if len(logs) != MaxCrashLogs {
		t.Errorf("expected %d crash logs after cleanup, got %d", MaxCrashLogs, len(logs))
	}
}

func TestDefaultBasePath(t *testing.T) {
	ctx = &crashContext{}

	if dir := crashLogDir(); dir != ".roadwing/crash_logs" {
		t.Errorf("expected default dir '.roadwing/crash_logs', got %q", dir)
	}
}
