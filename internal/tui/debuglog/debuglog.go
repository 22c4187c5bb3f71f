// ABOUTME: Simple debug logger for the TUI that writes to a log file
// ABOUTME: Avoids interfering with terminal display while capturing errors

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled bool
)

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(configDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	enabled = true
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Printf writes a timestamped line when logging is enabled
func Printf(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	ts := time.Now().Format(time.RFC3339)
	fmt.Fprintf(logFile, "%s %s\n", ts, fmt.Sprintf(format, args...))
}
