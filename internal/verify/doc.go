// Package verify holds the three validators and the runner that drives them.
//
// Each validator is a pure function of the analysis document, the policy it
// was built with and, for the commit and issue checks, what the Fetcher
// returns. Validators never print; every problem is returned as a
// *models.Fault inside the CheckResult and the Runner decides how to report it.
//
//	runner := verify.NewRunner(cfg, fetcher, log)
//	report := runner.Run(ctx, creds)
//	if !report.Passed {
//	    os.Exit(1)
//	}
package verify

import (
	"context"

	"github.com/harrison/verifier/internal/models"
)

// Check is one validator.
type Check interface {
	// Name identifies the check in logs and reports.
	Name() string
	// Verify runs the check against a loaded document.
	Verify(ctx context.Context, doc *models.AnalysisDocument, creds models.Credentials) models.CheckResult
}
