package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_AuthorName(t *testing.T) {
	var linked Commit
	require.NoError(t, json.Unmarshal([]byte(`{"sha":"a","author":{"login":"octocat"},"commit":{"author":{"name":"The Octocat"}}}`), &linked))
	assert.Equal(t, "octocat", linked.AuthorName())

	var unlinked Commit
	require.NoError(t, json.Unmarshal([]byte(`{"sha":"a","author":null,"commit":{"author":{"name":"The Octocat"}}}`), &unlinked))
	assert.Equal(t, "The Octocat", unlinked.AuthorName())
}

func TestIssue_PullRequestDetection(t *testing.T) {
	var issues []Issue
	require.NoError(t, json.Unmarshal([]byte(`[
		{"number": 1, "title": "bug"},
		{"number": 2, "title": "fix", "pull_request": {"url": "u"}}
	]`), &issues))

	assert.False(t, issues[0].IsPullRequest())
	assert.True(t, issues[1].IsPullRequest())
}

func TestIssue_MatchesAny(t *testing.T) {
	issue := Issue{Title: "CUDA OOM on step 3", Body: "显存不足"}

	assert.True(t, issue.MatchesAny([]string{"oom"}))
	assert.True(t, issue.MatchesAny([]string{"显存"}))
	assert.True(t, issue.MatchesAny([]string{"", "Step 3"}))
	assert.False(t, issue.MatchesAny([]string{"deadlock"}))
	assert.False(t, issue.MatchesAny([]string{""}))
	assert.False(t, issue.MatchesAny(nil))
}

func TestIssue_NullBody(t *testing.T) {
	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(`{"number": 3, "title": "memory", "body": null}`), &issue))

	assert.Equal(t, "memory ", issue.SearchText())
}
