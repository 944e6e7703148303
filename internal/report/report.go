// Package report renders a finished verification report and writes it to
// disk. Three formats are supported: JSON for machines, Markdown for pull
// request comments and HTML (Markdown rendered through goldmark) for
// browsing.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harrison/verifier/internal/models"
)

// Format selects the report encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name, case-insensitively. "md" is an alias
// for markdown. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (want json, markdown or html)", s)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return FormatMarkdown
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return FormatHTML
	default:
		return FormatJSON
	}
}

// Render encodes r in the given format.
func Render(r *models.Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(r)
	case FormatMarkdown:
		return []byte(RenderMarkdown(r)), nil
	case FormatHTML:
		return RenderHTML(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// document is the serialized shape of a report. Faults are flattened to
// their messages with the category kept alongside.
type document struct {
	RunID      string      `json:"run_id"`
	Repository string      `json:"repository"`
	Mode       string      `json:"mode"`
	Document   string      `json:"document"`
	StartedAt  time.Time   `json:"started_at"`
	DurationMS int64       `json:"duration_ms"`
	Loaded     bool        `json:"loaded"`
	Passed     bool        `json:"passed"`
	Checks     []checkView `json:"checks"`
}

type checkView struct {
	Name       string      `json:"name"`
	Passed     bool        `json:"passed"`
	DurationMS int64       `json:"duration_ms"`
	Faults     []faultView `json:"faults,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	Missing    []int       `json:"missing,omitempty"`
	Extra      []int       `json:"extra,omitempty"`
}

type faultView struct {
	Category models.FaultCategory `json:"category"`
	Message  string               `json:"message"`
}

func newDocument(r *models.Report) document {
	doc := document{
		RunID:      r.RunID,
		Repository: r.Repository,
		Mode:       r.Mode,
		Document:   r.Document,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Loaded:     r.Loaded,
		Passed:     r.Passed,
		Checks:     make([]checkView, 0, len(r.Checks)),
	}
	for _, c := range r.Checks {
		view := checkView{
			Name:       c.Name,
			Passed:     c.Passed,
			DurationMS: c.Duration.Milliseconds(),
			Warnings:   c.Warnings,
			Missing:    c.Missing,
			Extra:      c.Extra,
		}
		for _, f := range c.Faults {
			view.Faults = append(view.Faults, faultView{Category: f.Category, Message: faultMessage(f)})
		}
		doc.Checks = append(doc.Checks, view)
	}
	return doc
}

// faultMessage drops the category prefix, which is reported separately.
func faultMessage(f *models.Fault) string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

// RenderJSON encodes the report as indented JSON.
func RenderJSON(r *models.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(newDocument(r)); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}
