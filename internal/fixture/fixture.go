// Package fixture holds the deterministic offline data set used in mock mode
// and serves it as a GitHub-shaped HTTP API.
//
// The bundled sample is a passing scenario: the analysis document names
// commit 0f4b0c1e…, author "example-author", two parameter changes and
// issues 101 and 102, and the commit and issue fixtures agree with it.
package fixture

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harrison/verifier/internal/models"
)

//go:embed data/*.json
var sampleData embed.FS

// Set is one self-consistent group of fixtures.
type Set struct {
	// Document is the raw analysis document served by the contents lookup
	Document []byte

	// Commits are keyed by lower-case SHA
	Commits map[string]models.Commit

	// Issues are listed in order; pull requests are included as entries
	// carrying a pull_request key
	Issues []models.Issue
}

// Sample returns a fresh copy of the bundled fixture set.
func Sample() *Set {
	doc := mustRead("data/analysis_results.json")

	var commit models.Commit
	mustDecode("data/commit.json", &commit)

	var issues []models.Issue
	mustDecode("data/issues.json", &issues)

	return &Set{
		Document: doc,
		Commits:  map[string]models.Commit{strings.ToLower(commit.SHA): commit},
		Issues:   issues,
	}
}

// EditDocument decodes the document into a generic map, applies fn and
// re-encodes it. Used to derive failing scenarios from the sample.
func (s *Set) EditDocument(fn func(doc map[string]interface{})) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(s.Document, &doc); err != nil {
		return fmt.Errorf("decode fixture document: %w", err)
	}
	fn(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode fixture document: %w", err)
	}
	s.Document = out
	return nil
}

// Contents returns a contents-API response carrying the base64 document.
func (s *Set) Contents(path string) json.RawMessage {
	resp := models.ContentsResponse{
		Path:     path,
		Encoding: "base64",
		Content:  base64.StdEncoding.EncodeToString(s.Document),
	}
	return mustMarshal(resp)
}

// Commit returns the commit response for sha, if the fixture has it.
func (s *Set) Commit(sha string) (json.RawMessage, bool) {
	c, ok := s.Commits[strings.ToLower(sha)]
	if !ok {
		return nil, false
	}
	return mustMarshal(c), true
}

// Issue returns the single-issue response for number.
func (s *Set) Issue(number int) (json.RawMessage, bool) {
	for _, issue := range s.Issues {
		if issue.Number == number {
			return mustMarshal(issue), true
		}
	}
	return nil, false
}

// IssuePage returns one page of the issue listing. Pages are 1-based; a
// page past the end is an empty list, as the live API returns.
func (s *Set) IssuePage(page, perPage int) json.RawMessage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 30
	}
	start := (page - 1) * perPage
	if start >= len(s.Issues) {
		return json.RawMessage("[]")
	}
	end := start + perPage
	if end > len(s.Issues) {
		end = len(s.Issues)
	}
	return mustMarshal(s.Issues[start:end])
}

func mustRead(name string) []byte {
	data, err := sampleData.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fixture: missing embedded file %s: %v", name, err))
	}
	return data
}

func mustDecode(name string, v interface{}) {
	if err := json.Unmarshal(mustRead(name), v); err != nil {
		panic(fmt.Sprintf("fixture: invalid embedded file %s: %v", name, err))
	}
}

func mustMarshal(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("fixture: marshal: %v", err))
	}
	return data
}
