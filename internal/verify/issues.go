package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
)

// IssueVerifier checks that every related issue exists and mentions a
// keyword, then reconciles the related set with the repository listing.
type IssueVerifier struct {
	fetcher remote.Fetcher
	policy  config.IssuePolicy
}

// NewIssueVerifier creates a verifier. Non-positive page settings fall back
// to the listing defaults.
func NewIssueVerifier(fetcher remote.Fetcher, policy config.IssuePolicy) *IssueVerifier {
	if policy.PageSize <= 0 {
		policy.PageSize = 100
	}
	if policy.MaxPages <= 0 {
		policy.MaxPages = 100
	}
	return &IssueVerifier{fetcher: fetcher, policy: policy}
}

// Name implements Check.
func (v *IssueVerifier) Name() string {
	return models.CheckIssues
}

// Verify runs the per-issue check and, if it passes, the set reconciliation.
func (v *IssueVerifier) Verify(ctx context.Context, doc *models.AnalysisDocument, creds models.Credentials) models.CheckResult {
	start := time.Now()

	var result models.CheckResult
	if _, bad := doc.InvalidField(models.FieldRelatedIssues); bad {
		result = models.Fail(v.Name(), models.NewFault(models.FaultFormat, "related_issue_number_list must be a list"))
		result.Duration = time.Since(start)
		return result
	}

	provided, fault := v.checkIssues(ctx, doc.RelatedIssues, creds)
	if fault != nil {
		result = models.Fail(v.Name(), fault)
	} else {
		result = v.reconcile(ctx, provided, creds)
	}

	result.Duration = time.Since(start)
	return result
}

// checkIssues validates and fetches each listed issue, stopping at the first
// failure. It returns the validated numbers in document order.
func (v *IssueVerifier) checkIssues(ctx context.Context, related []interface{}, creds models.Credentials) ([]int, *models.Fault) {
	if len(related) == 0 && !v.policy.AllowEmpty.Enabled() {
		return nil, models.NewFault(models.FaultFormat, "related_issue_number_list cannot be empty")
	}

	numbers := make([]int, 0, len(related))
	for _, raw := range related {
		n, ok := models.IssueNumber(raw)
		if !ok {
			return nil, models.NewFault(models.FaultFormat, "invalid issue number: %s", models.FormatValue(raw))
		}

		payload, err := v.fetcher.Fetch(ctx, creds, remote.IssuePath(n))
		if err != nil {
			category := models.FaultNotFound
			if models.IsCategory(err, models.FaultTransport) {
				category = models.FaultTransport
			}
			return nil, models.WrapFault(category, err, "issue #%d not found", n)
		}

		var issue models.Issue
		if err := json.Unmarshal(payload, &issue); err != nil {
			return nil, models.WrapFault(models.FaultFormat, err, "unexpected response for issue #%d", n)
		}
		if !issue.MatchesAny(v.policy.Keywords) {
			return nil, models.NewFault(models.FaultMismatch, "issue #%d missing keywords %v", n, v.policy.Keywords)
		}

		numbers = append(numbers, n)
	}
	return numbers, nil
}

func (v *IssueVerifier) reconcile(ctx context.Context, provided []int, creds models.Credentials) models.CheckResult {
	result := models.Pass(v.Name())

	expected, warning := v.ExpectedIssues(ctx, creds)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	got := make(map[int]bool, len(provided))
	for _, n := range provided {
		got[n] = true
	}

	for n := range expected {
		if !got[n] {
			result.Missing = append(result.Missing, n)
		}
	}
	for n := range got {
		if !expected[n] {
			result.Extra = append(result.Extra, n)
		}
	}
	sort.Ints(result.Missing)
	sort.Ints(result.Extra)

	if len(result.Missing) == 0 && len(result.Extra) == 0 {
		return result
	}

	msg := describeDiff(result.Missing, result.Extra)
	if v.policy.StrictMatch.Enabled() {
		result.Passed = false
		result.Faults = append(result.Faults, models.NewFault(models.FaultMismatch, "issue set mismatch: %s", msg))
		return result
	}
	result.Warnings = append(result.Warnings, "issue set mismatch: "+msg)
	return result
}

// ExpectedIssues walks the issue listing and collects the numbers of issues
// that mention a keyword. Pull requests are skipped unless the policy
// includes them. The walk ends on the first page that is unavailable, not a
// list, empty or shorter than the page size. Reaching MaxPages also ends it
// and is returned as a warning.
func (v *IssueVerifier) ExpectedIssues(ctx context.Context, creds models.Credentials) (map[int]bool, string) {
	expected := make(map[int]bool)

	for page := 1; page <= v.policy.MaxPages; page++ {
		payload, err := v.fetcher.Fetch(ctx, creds, remote.IssueListPath(v.policy.PageSize, page))
		if err != nil {
			if page == 1 {
				return expected, fmt.Sprintf("issue listing unavailable: %v", err)
			}
			return expected, ""
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(payload, &entries); err != nil || len(entries) == 0 {
			return expected, ""
		}

		for _, entry := range entries {
			var issue models.Issue
			if err := json.Unmarshal(entry, &issue); err != nil {
				continue
			}
			if issue.IsPullRequest() && !v.policy.IncludePullRequests.Enabled() {
				continue
			}
			if issue.MatchesAny(v.policy.Keywords) {
				expected[issue.Number] = true
			}
		}

		if len(entries) < v.policy.PageSize {
			return expected, ""
		}
	}

	return expected, fmt.Sprintf("issue listing truncated after %d pages", v.policy.MaxPages)
}

func describeDiff(missing, extra []int) string {
	switch {
	case len(missing) > 0 && len(extra) > 0:
		return fmt.Sprintf("missing issues %v, extra issues %v", missing, extra)
	case len(missing) > 0:
		return fmt.Sprintf("missing issues %v", missing)
	default:
		return fmt.Sprintf("extra issues %v", extra)
	}
}
