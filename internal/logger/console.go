// Package logger provides the progress and diagnostic output of a
// verification run.
//
// Progress (stage lines, check results, the summary) goes to the output
// writer. Warnings, errors and fault details go to the diagnostic writer,
// normally stderr, so they can be separated from the run transcript.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/verifier/internal/models"
	"github.com/mattn/go-isatty"
)

// ConsoleLogger logs verification progress with [HH:MM:SS] timestamps.
// It supports log level filtering and colors output when the writer is a
// terminal.
type ConsoleLogger struct {
	out         io.Writer
	diag        io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger. out receives progress; diag
// receives warn and error messages. A nil diag falls back to out, and a nil
// out discards progress.
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(out, diag io.Writer, logLevel string) *ConsoleLogger {
	if diag == nil {
		diag = out
	}
	return &ConsoleLogger{
		out:         out,
		diag:        diag,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(out),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// NO_COLOR (via fatih/color) always wins.
func isTerminal(w io.Writer) bool {
	if w == nil || color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning to the diagnostic writer.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error to the diagnostic writer.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	w := cl.out
	if level == "WARN" || level == "ERROR" {
		w = cl.diag
	}
	if w == nil || !enabled(cl.logLevel, strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(w, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogStage logs the start of a numbered verification stage at INFO level.
// Format: "[HH:MM:SS] 2. Verifying commit data..."
func (cl *ConsoleLogger) LogStage(step int, description string) {
	if cl.out == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	line := fmt.Sprintf("%d. %s", step, description)
	if cl.colorOutput {
		line = color.New(color.Bold).Sprint(line)
	}
	fmt.Fprintf(cl.out, "[%s] %s\n", timestamp(), line)
}

// LogCheckResult logs the outcome of one check at INFO level.
// Format: "[HH:MM:SS] ✓ commit check passed (12ms)"
func (cl *ConsoleLogger) LogCheckResult(result models.CheckResult) {
	if cl.out == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	mark, status, c := "✓", "passed", color.New(color.FgGreen)
	if !result.Passed {
		mark, status, c = "✗", "failed", color.New(color.FgRed)
	}
	if cl.colorOutput {
		mark, status = c.Sprint(mark), c.Sprint(status)
	}
	fmt.Fprintf(cl.out, "[%s] %s %s check %s (%s)\n", timestamp(), mark, result.Name, status, formatDuration(result.Duration))
}

// LogSummary logs the run summary at INFO level.
func (cl *ConsoleLogger) LogSummary(report *models.Report) {
	if cl.out == nil || report == nil || !enabled(cl.logLevel, "info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	passed := countPassed(report)

	bar := NewProgressBar(len(report.Checks), 10, cl.colorOutput)
	bar.Update(passed)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] === Verification Summary ===\n", ts)
	fmt.Fprintf(&b, "[%s] Repository: %s (%s)\n", ts, report.Repository, report.Mode)
	fmt.Fprintf(&b, "[%s] Checks: %s\n", ts, bar.Render())
	for _, c := range report.Checks {
		status := "PASS"
		if !c.Passed {
			status = "FAIL"
		}
		if cl.colorOutput {
			status = statusColor(c.Passed).Sprint(status)
		}
		fmt.Fprintf(&b, "[%s]   %-10s %s\n", ts, c.Name, status)
	}
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(report.Duration))

	io.WriteString(cl.out, b.String())
}

func statusColor(passed bool) *color.Color {
	if passed {
		return color.New(color.FgGreen)
	}
	return color.New(color.FgRed)
}

func countPassed(report *models.Report) int {
	n := 0
	for _, c := range report.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration renders short durations in milliseconds and longer ones
// with time.Duration's own rounding.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
