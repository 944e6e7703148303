package models

import (
	"time"

	"github.com/google/uuid"
)

// Check names, in execution order.
const (
	CheckLoad       = "load"
	CheckCommit     = "commit"
	CheckParameters = "parameters"
	CheckIssues     = "issues"
)

// Execution modes recorded on a report.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)

// CheckResult is the outcome of one validator run.
type CheckResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Faults   []*Fault      `json:"-"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration_ns"`

	// Missing and Extra are only populated by the issue check.
	Missing []int `json:"missing,omitempty"`
	Extra   []int `json:"extra,omitempty"`
}

// Pass returns a passing result.
func Pass(name string) CheckResult {
	return CheckResult{Name: name, Passed: true}
}

// Fail returns a failing result carrying the given fault.
func Fail(name string, fault *Fault) CheckResult {
	return CheckResult{Name: name, Passed: false, Faults: []*Fault{fault}}
}

// FaultMessages returns the rendered faults, for reports.
func (r CheckResult) FaultMessages() []string {
	msgs := make([]string, 0, len(r.Faults))
	for _, f := range r.Faults {
		msgs = append(msgs, f.Error())
	}
	return msgs
}

// Report is the aggregate outcome of a verification run.
type Report struct {
	RunID      string        `json:"run_id"`
	Repository string        `json:"repository"`
	Mode       string        `json:"mode"`
	Document   string        `json:"document"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	Loaded     bool          `json:"loaded"`
	Checks     []CheckResult `json:"checks"`
	Passed     bool          `json:"passed"`
}

// NewReport starts a report with a fresh run ID.
func NewReport(creds Credentials, mode, document string) *Report {
	return &Report{
		RunID:      uuid.NewString(),
		Repository: creds.Slug(),
		Mode:       mode,
		Document:   document,
		StartedAt:  time.Now(),
	}
}

// Add appends a check result.
func (r *Report) Add(result CheckResult) {
	r.Checks = append(r.Checks, result)
}

// Finish computes the aggregate verdict: the logical AND of every check,
// and false when the document never loaded.
func (r *Report) Finish() {
	r.Duration = time.Since(r.StartedAt)
	passed := r.Loaded
	for _, c := range r.Checks {
		if !c.Passed {
			passed = false
		}
	}
	r.Passed = passed
}

// Check returns the named result, if it ran.
func (r *Report) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}
