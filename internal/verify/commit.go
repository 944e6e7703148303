package verify

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
)

var shaPattern = regexp.MustCompile(`(?i)^[a-f0-9]{40}$`)

// ValidSHA reports whether sha is a full 40-character hex commit id,
// in either case.
func ValidSHA(sha string) bool {
	return shaPattern.MatchString(sha)
}

// CommitVerifier checks that the document's commit exists and was made by
// the claimed author on a well-formed date.
type CommitVerifier struct {
	fetcher     remote.Fetcher
	dateFormat  *regexp.Regexp
	datePattern string
}

// NewCommitVerifier creates a verifier. dateFormat is the pattern
// commit_date must match from its first character; it is compiled once here.
func NewCommitVerifier(fetcher remote.Fetcher, dateFormat string) (*CommitVerifier, error) {
	if _, err := regexp.Compile(dateFormat); err != nil {
		return nil, models.WrapFault(models.FaultPolicy, err, "invalid date format %q", dateFormat)
	}
	re, err := regexp.Compile(`^(?:` + dateFormat + `)`)
	if err != nil {
		return nil, models.WrapFault(models.FaultPolicy, err, "invalid date format %q", dateFormat)
	}
	return &CommitVerifier{fetcher: fetcher, dateFormat: re, datePattern: dateFormat}, nil
}

// Name implements Check.
func (v *CommitVerifier) Name() string {
	return models.CheckCommit
}

// Verify runs the four commit checks in order and stops at the first failure.
func (v *CommitVerifier) Verify(ctx context.Context, doc *models.AnalysisDocument, creds models.Credentials) models.CheckResult {
	start := time.Now()
	result := v.verify(ctx, doc, creds)
	result.Duration = time.Since(start)
	return result
}

func (v *CommitVerifier) verify(ctx context.Context, doc *models.AnalysisDocument, creds models.Credentials) models.CheckResult {
	if raw, bad := doc.InvalidField(models.FieldCommitSHA); bad {
		return models.Fail(v.Name(), models.NewFault(models.FaultFormat, "invalid commit SHA format: %s", models.FormatValue(raw)))
	}
	sha := doc.TargetCommitSHA
	if !ValidSHA(sha) {
		return models.Fail(v.Name(), models.NewFault(models.FaultFormat, "invalid commit SHA format: %q", sha))
	}

	payload, err := v.fetcher.Fetch(ctx, creds, remote.CommitPath(sha))
	if err != nil {
		category := models.FaultNotFound
		if models.IsCategory(err, models.FaultTransport) {
			category = models.FaultTransport
		}
		return models.Fail(v.Name(), models.WrapFault(category, err, "commit %s not found", sha))
	}

	var commit models.Commit
	if err := json.Unmarshal(payload, &commit); err != nil {
		return models.Fail(v.Name(), models.WrapFault(models.FaultFormat, err, "unexpected commit response for %s", sha))
	}

	if raw, bad := doc.InvalidField(models.FieldCommitAuthor); bad {
		return models.Fail(v.Name(), models.NewFault(models.FaultMismatch,
			"author mismatch - expected: %s, actual: %s", models.FormatValue(raw), commit.AuthorName()))
	}
	if actual := commit.AuthorName(); actual != doc.CommitAuthor {
		return models.Fail(v.Name(), models.NewFault(models.FaultMismatch,
			"author mismatch - expected: %s, actual: %s", doc.CommitAuthor, actual))
	}

	if raw, bad := doc.InvalidField(models.FieldCommitDate); bad {
		return models.Fail(v.Name(), models.NewFault(models.FaultFormat,
			"invalid date format: %s, expected: %s", models.FormatValue(raw), v.datePattern))
	}
	if !v.dateFormat.MatchString(doc.CommitDate) {
		return models.Fail(v.Name(), models.NewFault(models.FaultFormat,
			"invalid date format: %q, expected: %s", doc.CommitDate, v.datePattern))
	}

	return models.Pass(v.Name())
}
