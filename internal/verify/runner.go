package verify

import (
	"context"
	"fmt"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/document"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
)

// Logger is the progress and diagnostics sink used by the Runner.
// Warnings and errors belong on the diagnostic channel.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogStage(step int, description string)
	LogCheckResult(result models.CheckResult)
	LogSummary(report *models.Report)
}

// stage pairs a check with its progress line.
type stage struct {
	description string
	check       Check
}

// Runner loads the analysis document and runs the enabled checks in order.
type Runner struct {
	loader  *document.Loader
	stages  []stage
	logger  Logger
	mode    string
	docPath string
}

// NewRunner wires the loader and the checks enabled in cfg. mode is recorded
// on the report (models.ModeOnline or models.ModeOffline).
func NewRunner(cfg *config.Config, fetcher remote.Fetcher, logger Logger, mode string) (*Runner, error) {
	r := &Runner{
		loader:  document.NewLoader(fetcher, cfg.Analysis),
		logger:  logger,
		mode:    mode,
		docPath: cfg.Analysis.FilePath,
	}

	if cfg.Checks.Commit.Enabled() {
		commit, err := NewCommitVerifier(fetcher, cfg.Checks.DateFormat)
		if err != nil {
			return nil, err
		}
		r.stages = append(r.stages, stage{"Verifying commit data...", commit})
	}
	if cfg.Checks.Parameters.Enabled() {
		r.stages = append(r.stages, stage{"Verifying parameter changes...", NewParameterVerifier(cfg.Parameters)})
	}
	if cfg.Checks.Issues.Enabled() {
		r.stages = append(r.stages, stage{"Verifying related issues...", NewIssueVerifier(fetcher, cfg.Issues)})
	}

	return r, nil
}

// Checks returns the names of the enabled checks, in run order.
func (r *Runner) Checks() []string {
	names := make([]string, 0, len(r.stages))
	for _, s := range r.stages {
		names = append(names, s.check.Name())
	}
	return names
}

// Run performs one verification pass. It always returns a finished report;
// the overall verdict is report.Passed.
func (r *Runner) Run(ctx context.Context, creds models.Credentials) *models.Report {
	report := models.NewReport(creds, r.mode, r.docPath)
	r.logger.LogDebug(fmt.Sprintf("run %s against %s (%s mode)", report.RunID, report.Repository, r.mode))

	r.logger.LogStage(1, "Loading analysis results...")
	doc, err := r.loader.Load(ctx, creds)
	if err != nil {
		fault := models.AsFault(err)
		r.logger.LogError(fault.Error())
		report.Add(models.Fail(models.CheckLoad, fault))
		report.Finish()
		r.logger.LogSummary(report)
		return report
	}
	report.Loaded = true
	r.logger.LogInfo(fmt.Sprintf("✅ Loaded analysis results from %s", r.docPath))

	for i, s := range r.stages {
		r.logger.LogStage(i+2, s.description)
		result := s.check.Verify(ctx, doc, creds)
		for _, w := range result.Warnings {
			r.logger.LogWarn(w)
		}
		for _, f := range result.Faults {
			r.logger.LogError(f.Error())
		}
		r.logger.LogCheckResult(result)
		report.Add(result)
	}

	report.Finish()
	r.logger.LogSummary(report)
	return report
}
