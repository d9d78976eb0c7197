package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()

	if filepath.Base(path) != "docrank.log" {
		t.Errorf("DefaultLogPath should end with docrank.log, got: %s", path)
	}
	if !strings.Contains(path, filepath.Join(".docrank", "logs")) {
		t.Errorf("DefaultLogPath should be under .docrank/logs, got: %s", path)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got: %s", cfg.Level)
	}
	if cfg.FilePath != "" {
		t.Errorf("expected no file logging by default, got: %s", cfg.FilePath)
	}
	if cfg.MaxSizeMB != 10 || cfg.MaxFiles != 5 {
		t.Errorf("unexpected rotation limits: %d MB, %d files", cfg.MaxSizeMB, cfg.MaxFiles)
	}
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()

	if cfg.FilePath != DefaultLogPath() {
		t.Errorf("expected file logging at %s, got: %s", DefaultLogPath(), cfg.FilePath)
	}
}

func TestSetup_StderrOnly(t *testing.T) {
	var stderr bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.Stderr = &stderr

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer cleanup()

	logger.Info("hidden")
	logger.Warn("unit_skipped", "unit", "a.md")

	out := stderr.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=unit_skipped") || !strings.Contains(out, "unit=a.md") {
		t.Errorf("warn record missing: %q", out)
	}
	if strings.Contains(out, "time=") {
		t.Errorf("stderr records should not carry a timestamp: %q", out)
	}
}

func TestSetup_WithFile(t *testing.T) {
	var stderr bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "logs", "test.log")
	cfg := Config{Level: "info", Stderr: &stderr, FilePath: logPath, MaxSizeMB: 1, MaxFiles: 3}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	logger.Debug("scan_started", "units", 3)
	logger.With("run", 1).Info("scan_completed")
	cleanup()

	if strings.Contains(stderr.String(), "scan_started") {
		t.Errorf("debug record should not reach stderr at info level")
	}
	if !strings.Contains(stderr.String(), "scan_completed") {
		t.Errorf("info record should reach stderr")
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSON records in file, got %d: %q", len(lines), content)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("file record is not JSON: %v", err)
	}
	if rec["msg"] != "scan_completed" || rec["run"] != float64(1) {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{"debug", "DEBUG", true},
		{"DEBUG", "DEBUG", true},
		{"info", "INFO", true},
		{"warn", "WARN", true},
		{"warning", "WARN", true},
		{"error", "ERROR", true},
		{"unknown", "INFO", false},
		{"", "INFO", false},
	}

	for _, tc := range tests {
		level, err := ParseLevel(tc.input)
		if level.String() != tc.expected {
			t.Errorf("ParseLevel(%q) = %s, want %s", tc.input, level.String(), tc.expected)
		}
		if (err == nil) != tc.valid {
			t.Errorf("ParseLevel(%q) error = %v, want valid=%v", tc.input, err, tc.valid)
		}
		if got := parseLevel(tc.input); got.String() != tc.expected {
			t.Errorf("parseLevel(%q) = %s, want %s", tc.input, got.String(), tc.expected)
		}
	}
}

func TestRotatingWriter_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")

	w, err := NewRotatingWriter(logPath, 0, 3) // 0 MB rotates on every write
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	data := bytes.Repeat([]byte("x"), 2048)
	for i := 0; i < 2; i++ {
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(logPath); err != nil {
		t.Error("main log file should exist")
	}
	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Error("rotated file .1 should exist")
	}
}

func TestRotatingWriter_MaxFilesLimit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "maxfiles.log")

	w, err := NewRotatingWriter(logPath, 0, 2)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		_, _ = w.Write([]byte(fmt.Sprintf("write %d\n", i)))
	}

	if _, err := os.Stat(logPath + ".2"); err != nil {
		t.Error("rotated file .2 should exist")
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("rotated file .3 should not exist (beyond maxFiles)")
	}

	// The newest rotated file holds the previous write
	content, err := os.ReadFile(logPath + ".1")
	if err != nil {
		t.Fatalf("failed to read .1: %v", err)
	}
	if string(content) != "write 3\n" {
		t.Errorf("unexpected .1 content: %q", content)
	}
}

func TestRotatingWriter_AppendsToExisting(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")
	if err := os.WriteFile(logPath, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(logPath, 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	_, _ = w.Write([]byte("new\n"))
	if err := w.Sync(); err != nil {
		t.Errorf("sync failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close should be a no-op: %v", err)
	}

	content, _ := os.ReadFile(logPath)
	if string(content) != "old\nnew\n" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "concurrent.log")

	w, err := NewRotatingWriter(logPath, 10, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = w.Write([]byte(fmt.Sprintf(`{"id":%d,"iter":%d}`+"\n", id, j)))
			}
		}(i)
	}
	wg.Wait()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file should have content")
	}
}
