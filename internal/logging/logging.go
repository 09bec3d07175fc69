// Package logging configures the process-wide file logger. A TUI owns the
// terminal, so logs go to a dated file under ~/.local/state/skywatch.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var logFile *os.File

// Init points the default charmbracelet logger at a dated log file and
// returns its path. The level can be raised with SKYWATCH_DEBUG=1.
func Init() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	dir := filepath.Join(home, ".local", "state", "skywatch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("skywatch-%s.log", time.Now().Format("2006-01-02")))
	logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(logFile)
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.RFC3339)
	log.SetLevel(log.InfoLevel)
	if os.Getenv("SKYWATCH_DEBUG") != "" {
		log.SetLevel(log.DebugLevel)
	}

	return path, nil
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
