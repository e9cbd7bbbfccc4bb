package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out, prefix, flags := log.Writer(), log.Prefix(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	})
}

func TestSetupLogging_DisabledWithEmptyPath(t *testing.T) {
	restoreLogger(t)

	logFile, err := setupLogging("", "abcd1234")
	if err != nil || logFile != nil {
		t.Fatalf("expected nil file and no error, got %v %v", logFile, err)
	}
	if log.Writer() != io.Discard {
		t.Errorf("expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLogging_WritesWithRunID(t *testing.T) {
	restoreLogger(t)

	logPath := filepath.Join(t.TempDir(), "logs", "maze-runner.log")
	logFile, err := setupLogging(logPath, "abcd1234")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer logFile.Close()

	if log.Writer() == os.Stdout || log.Writer() == os.Stderr {
		t.Error("log output should not be stdout or stderr")
	}

	log.Println("test log message")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.HasPrefix(string(data), "[abcd1234] ") || !strings.Contains(string(data), "test log message") {
		t.Errorf("unexpected log content %q", data)
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	restoreLogger(t)

	dir := t.TempDir()
	logPath := filepath.Join(dir, "maze-runner.log")
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("failed to create large log file: %v", err)
	}

	logFile, err := setupLogging(logPath, "abcd1234")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer logFile.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read log directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != "maze-runner.log" && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("expected new log file smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}
