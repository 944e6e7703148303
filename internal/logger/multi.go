package logger

import "github.com/harrison/verifier/internal/models"

// Logger is the full logging surface shared by every implementation here.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogStage(step int, description string)
	LogCheckResult(result models.CheckResult)
	LogSummary(report *models.Report)
}

// MultiLogger fans every call out to several loggers, in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) LogTrace(message string) {
	for _, l := range m.loggers {
		l.LogTrace(message)
	}
}

func (m *MultiLogger) LogDebug(message string) {
	for _, l := range m.loggers {
		l.LogDebug(message)
	}
}

func (m *MultiLogger) LogInfo(message string) {
	for _, l := range m.loggers {
		l.LogInfo(message)
	}
}

func (m *MultiLogger) LogWarn(message string) {
	for _, l := range m.loggers {
		l.LogWarn(message)
	}
}

func (m *MultiLogger) LogError(message string) {
	for _, l := range m.loggers {
		l.LogError(message)
	}
}

func (m *MultiLogger) LogStage(step int, description string) {
	for _, l := range m.loggers {
		l.LogStage(step, description)
	}
}

func (m *MultiLogger) LogCheckResult(result models.CheckResult) {
	for _, l := range m.loggers {
		l.LogCheckResult(result)
	}
}

func (m *MultiLogger) LogSummary(report *models.Report) {
	for _, l := range m.loggers {
		l.LogSummary(report)
	}
}

// NoOpLogger discards everything. Useful in tests.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string) {}
func (n *NoOpLogger) LogDebug(string) {}
func (n *NoOpLogger) LogInfo(string) {}
func (n *NoOpLogger) LogWarn(string) {}
func (n *NoOpLogger) LogError(string) {}
func (n *NoOpLogger) LogStage(int, string) {}
func (n *NoOpLogger) LogCheckResult(models.CheckResult) {}
func (n *NoOpLogger) LogSummary(*models.Report) {}
