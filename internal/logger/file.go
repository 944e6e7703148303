package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/verifier/internal/models"
)

// FileLogger writes a plain-text transcript of each run to
// <dir>/run-YYYYMMDD-HHMMSS.log and keeps <dir>/latest.log pointing at it.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a timestamped
// run log and updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}
	fl.writeRunLog("=== Verification Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogStage logs the start of a verification stage.
func (fl *FileLogger) LogStage(step int, description string) {
	if !enabled(fl.logLevel, "info") {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] %d. %s\n", timestamp(), step, description))
}

// LogCheckResult logs one check outcome with its faults, warnings and
// issue set differences.
func (fl *FileLogger) LogCheckResult(result models.CheckResult) {
	if !enabled(fl.logLevel, "info") {
		return
	}

	ts := timestamp()
	status := "PASS"
	if !result.Passed {
		status = "FAIL"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [CHECK] %s: %s (%.3fs)\n", ts, result.Name, status, result.Duration.Seconds())
	for _, msg := range result.FaultMessages() {
		fmt.Fprintf(&b, "[%s]   fault: %s\n", ts, msg)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "[%s]   warning: %s\n", ts, w)
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "[%s]   missing: %v\n", ts, result.Missing)
	}
	if len(result.Extra) > 0 {
		fmt.Fprintf(&b, "[%s]   extra: %v\n", ts, result.Extra)
	}
	fl.writeRunLog(b.String())
}

// LogSummary logs the final verdict of the run.
func (fl *FileLogger) LogSummary(report *models.Report) {
	if report == nil || !enabled(fl.logLevel, "info") {
		return
	}

	ts := timestamp()
	status := "SUCCESS"
	if !report.Passed {
		status = "FAILED"
	}

	message := fmt.Sprintf(
		"\n[%s] === VERIFICATION SUMMARY ===\n"+
			"[%s] Run ID:       %s\n"+
			"[%s] Repository:   %s\n"+
			"[%s] Mode:         %s\n"+
			"[%s] Checks:       %d/%d passed\n"+
			"[%s] Total time:   %.3fs\n"+
			"[%s] Status:       %s\n"+
			"[%s] Completed at: %s\n",
		ts,
		ts, report.RunID,
		ts, report.Repository,
		ts, report.Mode,
		ts, countPassed(report), len(report.Checks),
		ts, report.Duration.Seconds(),
		ts, status,
		ts, time.Now().Format(time.RFC3339),
	)
	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		fl.runLog.Sync()
	}
}
