package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()
	defer InitWithFileConfig("info", FileConfig{}, false)

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

			if err := InitWithFileConfig(tt.level, cfg, false); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Log.Warn("warn message")
			Log.Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, `"level":"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, `"level":"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/export.log")

	if cfg.Path != "/tmp/export.log" {
		t.Errorf("expected path /tmp/export.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 10 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 30 {
		t.Errorf("unexpected rotation settings %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for input, expected := range tests {
		if got := parseLevel(input); got != expected {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, expected)
		}
	}
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sink := NewZapSink(zap.New(core))

	sink.Message(GroupExportError, "Export failed, empty geometry.")
	Messagef(sink, GroupWarning, "invalid color '%s'", "#xyz")

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel || entries[0].Message != "Export failed, empty geometry." {
		t.Errorf("Unexpected first entry: %v %q", entries[0].Level, entries[0].Message)
	}
	if group := entries[0].ContextMap()["group"]; group != "EXPORT-ERROR" {
		t.Errorf("Expected group EXPORT-ERROR, got %v", group)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "invalid color '#xyz'" {
		t.Errorf("Unexpected second entry: %v %q", entries[1].Level, entries[1].Message)
	}
}

func TestCounterAndTee(t *testing.T) {
	first := NewCounter()
	var second Counter
	sink := Tee{first, &second, Discard}

	sink.Message(GroupError, "a")
	sink.Message(GroupExportError, "b")
	sink.Message(GroupExportWarning, "c")

	for _, c := range []*Counter{first, &second} {
		if c.Errors() != 2 {
			t.Errorf("Expected 2 errors, got %d", c.Errors())
		}
		if c.Warnings() != 1 {
			t.Errorf("Expected 1 warning, got %d", c.Warnings())
		}
		if c.Count(GroupExportError) != 1 || c.Total() != 3 {
			t.Errorf("Unexpected counts: %d export errors, %d total", c.Count(GroupExportError), c.Total())
		}
		if c.Entries[2].Message != "c" {
			t.Errorf("Expected last message c, got %q", c.Entries[2].Message)
		}
	}
}

func TestGroupString(t *testing.T) {
	expected := map[Group]string{
		GroupError:         "ERROR",
		GroupWarning:       "WARNING",
		GroupExportError:   "EXPORT-ERROR",
		GroupExportWarning: "EXPORT-WARNING",
	}
	for group, name := range expected {
		if group.String() != name {
			t.Errorf("Expected %s, got %s", name, group.String())
		}
	}
}
