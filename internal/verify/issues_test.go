package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/fixture"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
	"github.com/harrison/verifier/internal/remote/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func issuePolicy() config.IssuePolicy {
	return config.IssuePolicy{
		Keywords:    []string{"oom", "memory", "显存"},
		StrictMatch: true,
		PageSize:    100,
		MaxPages:    100,
	}
}

func issuesDoc(t *testing.T, list string) *models.AnalysisDocument {
	t.Helper()
	return parseDoc(t, fmt.Sprintf(`{"related_issue_number_list": %s}`, list))
}

// fixtureWithIssues returns a mock client whose repository holds issues.
func fixtureWithIssues(issues ...models.Issue) *remote.MockClient {
	set := fixture.Sample()
	set.Issues = issues
	return remote.NewMockClient(set)
}

func TestIssueVerifier_SamplePasses(t *testing.T) {
	v := NewIssueVerifier(remote.NewMockClient(fixture.Sample()), issuePolicy())

	result := v.Verify(context.Background(), issuesDoc(t, `[101, 102]`), testCreds)

	assert.True(t, result.Passed, "faults: %v", result.FaultMessages())
	assert.Empty(t, result.Missing)
	assert.Empty(t, result.Extra)
	assert.Empty(t, result.Warnings)
}

func TestIssueVerifier_ContentCheck(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		policy  func(*config.IssuePolicy)
		wantCat models.FaultCategory
		wantMsg string
	}{
		{name: "empty list", list: `[]`, wantCat: models.FaultFormat, wantMsg: "related_issue_number_list cannot be empty"},
		{name: "string instead of list", list: `"101,102"`, wantCat: models.FaultFormat, wantMsg: "related_issue_number_list must be a list"},
		{
			name:    "object instead of list with allow_empty",
			list:    `{"101": true}`,
			policy:  func(p *config.IssuePolicy) { p.AllowEmpty = true },
			wantCat: models.FaultFormat,
			wantMsg: "related_issue_number_list must be a list",
		},
		{name: "zero", list: `[0]`, wantCat: models.FaultFormat, wantMsg: "invalid issue number: 0"},
		{name: "negative", list: `[-3]`, wantCat: models.FaultFormat, wantMsg: "invalid issue number"},
		{name: "fraction", list: `[101.5]`, wantCat: models.FaultFormat, wantMsg: "invalid issue number"},
		{name: "string", list: `["101"]`, wantCat: models.FaultFormat, wantMsg: `invalid issue number: "101"`},
		{name: "unknown issue", list: `[101, 999]`, wantCat: models.FaultNotFound, wantMsg: "issue #999 not found"},
		{
			name:    "no keyword",
			list:    `[101]`,
			policy:  func(p *config.IssuePolicy) { p.Keywords = []string{"deadlock"} },
			wantCat: models.FaultMismatch,
			wantMsg: "issue #101 missing keywords",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := issuePolicy()
			if tt.policy != nil {
				tt.policy(&policy)
			}
			v := NewIssueVerifier(remote.NewMockClient(fixture.Sample()), policy)

			result := v.Verify(context.Background(), issuesDoc(t, tt.list), testCreds)

			fault := requireFault(t, result, tt.wantCat)
			assert.Contains(t, fault.Message, tt.wantMsg)
		})
	}
}

func TestIssueVerifier_KeywordMatchIsCaseInsensitive(t *testing.T) {
	client := fixtureWithIssues(models.Issue{Number: 5, Title: "Out Of MEMORY", Body: ""})
	v := NewIssueVerifier(client, issuePolicy())

	result := v.Verify(context.Background(), issuesDoc(t, `[5]`), testCreds)

	assert.True(t, result.Passed, "faults: %v", result.FaultMessages())
}

func TestIssueVerifier_ContentFailureSkipsReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssuePath(7)).
		Return(nil, models.NewFault(models.FaultNotFound, "issues/7 not found"))
	// No listing call is expected.

	v := NewIssueVerifier(fetcher, issuePolicy())
	result := v.Verify(context.Background(), issuesDoc(t, `[7]`), testCreds)

	requireFault(t, result, models.FaultNotFound)
}

func TestIssueVerifier_AllowEmpty(t *testing.T) {
	policy := issuePolicy()
	policy.AllowEmpty = true
	policy.StrictMatch = false
	v := NewIssueVerifier(remote.NewMockClient(fixture.Sample()), policy)

	result := v.Verify(context.Background(), issuesDoc(t, `[]`), testCreds)

	assert.True(t, result.Passed)
	assert.Equal(t, []int{101, 102}, result.Missing)
}

func TestIssueVerifier_StrictMismatch(t *testing.T) {
	client := fixtureWithIssues(
		models.Issue{Number: 101, Title: "oom"},
		models.Issue{Number: 103, Title: "memory leak"},
		models.Issue{Number: 102, Title: "显存"},
		models.Issue{Number: 104, Title: "unrelated"},
		models.Issue{Number: 105, Title: "oom again"},
	)

	t.Run("strict fails with sorted diff", func(t *testing.T) {
		v := NewIssueVerifier(client, issuePolicy())

		result := v.Verify(context.Background(), issuesDoc(t, `[101]`), testCreds)

		fault := requireFault(t, result, models.FaultMismatch)
		assert.Equal(t, []int{102, 103, 105}, result.Missing)
		assert.Empty(t, result.Extra)
		assert.Contains(t, fault.Message, "missing issues [102 103 105]")
	})

	t.Run("non-strict warns and passes", func(t *testing.T) {
		policy := issuePolicy()
		policy.StrictMatch = false
		v := NewIssueVerifier(client, policy)

		result := v.Verify(context.Background(), issuesDoc(t, `[101]`), testCreds)

		assert.True(t, result.Passed)
		assert.Equal(t, []int{102, 103, 105}, result.Missing)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "issue set mismatch")
	})
}

func TestIssueVerifier_ExtraIssue(t *testing.T) {
	// Issue 9 matches a keyword when fetched directly but is absent from
	// the listing the mock serves for page 1.
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssuePath(9)).
		Return(mustJSON(t, models.Issue{Number: 9, Title: "oom"}), nil)
	fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(100, 1)).
		Return(json.RawMessage(`[]`), nil)

	v := NewIssueVerifier(fetcher, issuePolicy())
	result := v.Verify(context.Background(), issuesDoc(t, `[9]`), testCreds)

	requireFault(t, result, models.FaultMismatch)
	assert.Equal(t, []int{9}, result.Extra)
	assert.Empty(t, result.Missing)
}

func TestIssueVerifier_PullRequestsExcluded(t *testing.T) {
	pr := models.Issue{Number: 200, Title: "fix oom", PullRequest: json.RawMessage(`{"url":"x"}`)}
	client := fixtureWithIssues(models.Issue{Number: 101, Title: "oom"}, pr)

	t.Run("excluded by default", func(t *testing.T) {
		v := NewIssueVerifier(client, issuePolicy())
		result := v.Verify(context.Background(), issuesDoc(t, `[101]`), testCreds)
		assert.True(t, result.Passed, "faults: %v", result.FaultMessages())
	})

	t.Run("included when enabled", func(t *testing.T) {
		policy := issuePolicy()
		policy.IncludePullRequests = true
		v := NewIssueVerifier(client, policy)
		result := v.Verify(context.Background(), issuesDoc(t, `[101]`), testCreds)
		assert.False(t, result.Passed)
		assert.Equal(t, []int{200}, result.Missing)
	})
}

func TestIssueVerifier_FullFinalPageTerminates(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)

	page := make([]models.Issue, 100)
	for i := range page {
		page[i] = models.Issue{Number: i + 1, Title: "unrelated"}
	}

	gomock.InOrder(
		fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(100, 1)).
			Return(mustJSON(t, page), nil),
		fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(100, 2)).
			Return(json.RawMessage(`[]`), nil),
	)

	v := NewIssueVerifier(fetcher, issuePolicy())
	expected, warning := v.ExpectedIssues(context.Background(), testCreds)

	assert.Empty(t, expected)
	assert.Empty(t, warning)
}

func TestIssueVerifier_ListingStops(t *testing.T) {
	tests := []struct {
		name  string
		page2 json.RawMessage
		err   error
	}{
		{name: "not a list", page2: json.RawMessage(`{"message":"odd"}`)},
		{name: "unavailable", err: models.NewFault(models.FaultTransport, "API error 502")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := mocks.NewMockFetcher(ctrl)

			page1 := []models.Issue{{Number: 1, Title: "oom"}, {Number: 2, Title: "memory"}}
			gomock.InOrder(
				fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(2, 1)).
					Return(mustJSON(t, page1), nil),
				fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(2, 2)).
					Return(tt.page2, tt.err),
			)

			policy := issuePolicy()
			policy.PageSize = 2
			expected, warning := NewIssueVerifier(fetcher, policy).ExpectedIssues(context.Background(), testCreds)

			assert.Equal(t, map[int]bool{1: true, 2: true}, expected)
			assert.Empty(t, warning)
		})
	}
}

func TestIssueVerifier_FirstPageUnavailableWarns(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), testCreds, remote.IssueListPath(100, 1)).
		Return(nil, models.NewFault(models.FaultTransport, "API error 403"))

	expected, warning := NewIssueVerifier(fetcher, issuePolicy()).ExpectedIssues(context.Background(), testCreds)

	assert.Empty(t, expected)
	assert.Contains(t, warning, "issue listing unavailable")
}

func TestIssueVerifier_MaxPagesGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), testCreds, gomock.Any()).
		Return(mustJSON(t, []models.Issue{{Number: 1, Title: "oom"}}), nil).
		Times(3)

	policy := issuePolicy()
	policy.PageSize = 1
	policy.MaxPages = 3
	expected, warning := NewIssueVerifier(fetcher, policy).ExpectedIssues(context.Background(), testCreds)

	assert.Equal(t, map[int]bool{1: true}, expected)
	assert.Equal(t, "issue listing truncated after 3 pages", warning)
}

func TestNewIssueVerifier_DefaultsPaging(t *testing.T) {
	v := NewIssueVerifier(nil, config.IssuePolicy{})

	assert.Equal(t, 100, v.policy.PageSize)
	assert.Equal(t, 100, v.policy.MaxPages)
}
