package remote

import (
	"fmt"
	"net/url"
	"strings"
)

// ContentsPath is the file-contents lookup for a repository file.
func ContentsPath(file, ref string) string {
	p := "contents/" + strings.TrimPrefix(file, "/")
	if ref != "" {
		p += "?ref=" + url.QueryEscape(ref)
	}
	return p
}

// CommitPath is the single-commit lookup.
func CommitPath(sha string) string {
	return "commits/" + sha
}

// IssuePath is the single-issue lookup.
func IssuePath(number int) string {
	return fmt.Sprintf("issues/%d", number)
}

// IssueListPath is one page of the all-states issue listing.
func IssueListPath(perPage, page int) string {
	return fmt.Sprintf("issues?state=all&per_page=%d&page=%d", perPage, page)
}
