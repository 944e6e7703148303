package models

import (
	"encoding/json"
	"strings"
)

// ContentsResponse is the subset of a contents-API response the loader needs.
type ContentsResponse struct {
	Path     string `json:"path,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content"`
}

// Account is a hosting-service user linked to a commit.
type Account struct {
	Login string `json:"login"`
}

// GitSignature is the raw git author or committer recorded in a commit.
type GitSignature struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Date  string `json:"date,omitempty"`
}

// GitCommit is the git-level part of a commit response.
type GitCommit struct {
	Author  GitSignature `json:"author"`
	Message string       `json:"message,omitempty"`
}

// Commit is a single-commit API response. Author is nil when the git
// author is not linked to an account.
type Commit struct {
	SHA    string    `json:"sha"`
	Author *Account  `json:"author"`
	Commit GitCommit `json:"commit"`
}

// AuthorName resolves the commit author: the linked account login when
// present, otherwise the raw git author name.
func (c Commit) AuthorName() string {
	if c.Author != nil && c.Author.Login != "" {
		return c.Author.Login
	}
	return c.Commit.Author.Name
}

// Issue is an issue (or pull request) as returned by the issues API.
type Issue struct {
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether the listing entry carries a pull_request key.
func (i Issue) IsPullRequest() bool {
	return len(i.PullRequest) > 0
}

// SearchText is the case-folded title and body used for keyword matching.
func (i Issue) SearchText() string {
	return strings.ToLower(i.Title + " " + i.Body)
}

// MatchesAny reports whether the issue text contains any keyword,
// compared case-insensitively.
func (i Issue) MatchesAny(keywords []string) bool {
	text := i.SearchText()
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
