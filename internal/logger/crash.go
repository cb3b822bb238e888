// Package logger provides crash logging and panic recovery for the CLI.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the crash log directory relative to the data dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs bounds how many crash logs are kept on disk.
	MaxCrashLogs = 10
)

// crashContext carries the state a crash report is annotated with.
type crashContext struct {
	mu       sync.RWMutex
	command  string
	version  string
	basePath string
	input    string
}

var ctx = &crashContext{}

// SetContext records the running command, version and data dir for crash
// reports. Call once from the CLI entry point.
func SetContext(command, version, basePath string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.command = command
	ctx.version = version
	ctx.basePath = basePath
}

// SetLastInput records the most recent user-supplied input, truncated so a
// crash log stays readable.
func SetLastInput(input string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	input = strings.TrimSpace(input)
	if len(input) > 500 {
		input = input[:500] + "... [truncated]"
	}
	ctx.input = input
}

// CrashLog is one recovered panic, serialized to a plain-text report.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastInput  string
}

// HandlePanic recovers a panic, writes a crash report and exits non-zero.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	r := recover()
	if r == nil {
		return
	}

	log := newCrashLog(r)
	path, err := writeCrashLog(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
		fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "\n🔴 RoadWing encountered an unexpected error.\n\n")
	fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n  %s\n\n", path)
	fmt.Fprintf(os.Stderr, "Please report this issue at:\n  https://github.com/josephgoksu/RoadWing/issues\n\n")
	os.Exit(1)
}

func newCrashLog(panicValue any) CrashLog {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    ctx.version,
		Command:    ctx.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  ctx.input,
	}
}

func writeCrashLog(log CrashLog) (string, error) {
	dir := crashLogDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("crash_%s.log", log.Timestamp.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}
	return path, nil
}

func crashLogDir() string {
	ctx.mu.RLock()
	basePath := ctx.basePath
	ctx.mu.RUnlock()

	if basePath == "" {
		basePath = ".roadwing"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder
	rule := strings.Repeat("-", 80)

	sb.WriteString("ROADWING CRASH LOG\n\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Command:   %s\n", log.Command)
	fmt.Fprintf(&sb, "Go:        %s\n", runtime.Version())
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", runtime.GOOS, runtime.GOARCH)

	fmt.Fprintf(&sb, "\n%s\nPANIC VALUE\n%s\n%s\n", rule, rule, log.PanicValue)
	fmt.Fprintf(&sb, "\n%s\nSTACK TRACE\n%s\n%s", rule, rule, log.StackTrace)
	if log.LastInput != "" {
		fmt.Fprintf(&sb, "\n%s\nLAST USER INPUT\n%s\n%s\n", rule, rule, log.LastInput)
	}
	return sb.String()
}

// cleanOldCrashLogs removes the oldest logs once the count exceeds
// MaxCrashLogs. os.ReadDir returns entries sorted by name and the name
// embeds the timestamp, so the oldest sort first.
func cleanOldCrashLogs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var crashLogs []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			crashLogs = append(crashLogs, e)
		}
	}
	if len(crashLogs) <= MaxCrashLogs {
		return nil
	}

	toRemove := len(crashLogs) - MaxCrashLogs
	for i := range toRemove {
		path := filepath.Join(dir, crashLogs[i].Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", crashLogs[i].Name(), err)
		}
	}
	return nil
}

// ListCrashLogs returns the paths of all crash logs on disk.
func ListCrashLogs() ([]string, error) {
	dir := crashLogDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}
