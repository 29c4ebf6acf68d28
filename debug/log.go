package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	file   *os.File
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})

	counters = make(map[string]int)
)

// DefaultPath is ~/.config/padseq/debug.log.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "debug.log"
	}
	return filepath.Join(home, ".config", "padseq", "debug.log")
}

// Setup sets the log level and, when path is non-empty, sends output to
// that file instead of stderr. The file is truncated.
func Setup(level, path string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()

	logger.SetLevel(lvl)
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if file != nil {
		file.Close()
	}
	file = f
	logger.SetOutput(f)
	logger.Info("=== debug logging started ===", "level", lvl)
	return nil
}

// Close restores stderr output and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		logger.SetOutput(os.Stderr)
		file.Close()
		file = nil
	}
}

// Log writes a debug line tagged with category.
func Log(category, msg string, keyvals ...any) {
	logger.WithPrefix(category).Debug(msg, keyvals...)
}

func Info(category, msg string, keyvals ...any) {
	logger.WithPrefix(category).Info(msg, keyvals...)
}

func Warn(category, msg string, keyvals ...any) {
	logger.WithPrefix(category).Warn(msg, keyvals...)
}

func Error(category, msg string, keyvals ...any) {
	logger.WithPrefix(category).Error(msg, keyvals...)
}

// LogEvery warns only on every nth call (use for per-tick events).
func LogEvery(n int, category, msg string, keyvals ...any) {
	mu.Lock()
	key := category + msg
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n <= 1 || count%n == 0 {
		Warn(category, msg, append(keyvals, "every", n, "count", count)...)
	}
}
