// Package logger holds the CLI's file logger. Until Init enables it, every
// record is dropped without being formatted.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// L is the process-wide logger.
var L = slog.New(slog.DiscardHandler)

const (
	logPrefix     = "regctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Options configures Init.
type Options struct {
	Enabled bool       // false drops all records
	LogDir  string     // default ~/.regctl/logs
	Level   slog.Level // minimum level written
}

// Init points L at a dated JSON log file, or at a discard handler when
// logging is disabled. A file opened by an earlier Init is closed.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return closeFile()
	}

	dir, err := logDir(opts.LogDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	now := time.Now()
	cleanOldLogs(dir, now)

	f, err := os.OpenFile(filepath.Join(dir, fileName(now)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := closeFile(); err != nil {
		_ = f.Close()
		return err
	}
	logFile = f
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func logDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".regctl", "logs"), nil
}

// fileName is regctl-YYYY-MM-DD.log for the day of t.
func fileName(t time.Time) string {
	return logPrefix + t.Format(time.DateOnly) + logSuffix
}

// cleanOldLogs removes regctl log files dated before the retention window.
// Errors are ignored.
func cleanOldLogs(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		name := entry.Name()
		day, ok := strings.CutPrefix(name, logPrefix)
		if !ok {
			continue
		}
		day, ok = strings.CutSuffix(day, logSuffix)
		if !ok {
			continue
		}
		date, err := time.Parse(time.DateOnly, day)
		if err != nil || !date.Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(dir, name))
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
