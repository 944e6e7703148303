// Package document fetches and decodes the analysis document under test.
package document

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
)

// FormatJSON is the only supported document format.
const FormatJSON = "json"

// Loader retrieves the analysis document through a Fetcher.
type Loader struct {
	fetcher remote.Fetcher
	target  config.AnalysisConfig
}

// NewLoader creates a loader for the configured document.
func NewLoader(fetcher remote.Fetcher, target config.AnalysisConfig) *Loader {
	return &Loader{fetcher: fetcher, target: target}
}

// Path returns the contents-API path the loader fetches.
func (l *Loader) Path() string {
	return remote.ContentsPath(l.target.FilePath, l.target.Ref)
}

// Load fetches the document, decodes its base64 transport encoding and
// parses it. Any failure returns a nil document and a fault; a partially
// decoded document is never returned.
func (l *Loader) Load(ctx context.Context, creds models.Credentials) (*models.AnalysisDocument, error) {
	payload, err := l.fetcher.Fetch(ctx, creds, l.Path())
	if err != nil {
		f := models.AsFault(err)
		return nil, models.WrapFault(f.Category, f, "analysis file %s not available", l.target.FilePath)
	}

	var contents models.ContentsResponse
	if err := json.Unmarshal(payload, &contents); err != nil {
		return nil, models.WrapFault(models.FaultFormat, err, "unexpected contents response for %s", l.target.FilePath)
	}

	text, err := decodeContent(contents.Content)
	if err != nil {
		return nil, models.WrapFault(models.FaultFormat, err, "decoding %s", l.target.FilePath)
	}

	return Parse(text, l.target.Format)
}

// Parse decodes document text in the given format. Only JSON is
// implemented; every other format is an unsupported-format fault.
func Parse(text []byte, format string) (*models.AnalysisDocument, error) {
	if !strings.EqualFold(format, FormatJSON) {
		return nil, models.NewFault(models.FaultFormat, "unsupported analysis format %q", format)
	}
	doc, err := models.ParseAnalysisDocument(text)
	if err != nil {
		return nil, models.WrapFault(models.FaultFormat, err, "parsing analysis document")
	}
	if doc.IsEmpty() {
		return nil, models.NewFault(models.FaultFormat, "analysis document is empty")
	}
	return doc, nil
}

// decodeContent strips the line breaks the contents API inserts into its
// base64 payload before decoding.
func decodeContent(content string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)
	return base64.StdEncoding.DecodeString(cleaned)
}
