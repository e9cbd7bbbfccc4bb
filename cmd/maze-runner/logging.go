package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxLogSize = 10 << 20

// setupLogging points the standard logger at path, rotating the previous file
// aside once it exceeds maxLogSize. An empty path discards all output.
func setupLogging(path, runID string) (*os.File, error) {
	log.SetPrefix("[" + runID + "] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := strings.TrimSuffix(path, ".log") + "-" + time.Now().Format("20060102-150405") + ".log"
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("failed to rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
