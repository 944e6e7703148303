package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/harrison/verifier/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RenderMarkdown produces a GitHub-flavoured Markdown summary.
func RenderMarkdown(r *models.Report) string {
	var b strings.Builder

	verdict := "✅ passed"
	if !r.Passed {
		verdict = "❌ failed"
	}

	fmt.Fprintf(&b, "# Verification report\n\n")
	fmt.Fprintf(&b, "- **Result:** %s\n", verdict)
	fmt.Fprintf(&b, "- **Repository:** `%s` (%s)\n", r.Repository, r.Mode)
	fmt.Fprintf(&b, "- **Document:** `%s`\n", r.Document)
	fmt.Fprintf(&b, "- **Run:** `%s` at %s\n\n", r.RunID, r.StartedAt.Format("2006-01-02 15:04:05 MST"))

	if len(r.Checks) == 0 {
		b.WriteString("_No checks ran._\n")
		return b.String()
	}

	b.WriteString("| Check | Result | Duration |\n")
	b.WriteString("|---|---|---|\n")
	for _, c := range r.Checks {
		status := "pass"
		if !c.Passed {
			status = "**fail**"
		}
		fmt.Fprintf(&b, "| %s | %s | %dms |\n", c.Name, status, c.Duration.Milliseconds())
	}

	for _, c := range r.Checks {
		if len(c.Faults) == 0 && len(c.Warnings) == 0 && len(c.Missing) == 0 && len(c.Extra) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", c.Name)
		for _, f := range c.Faults {
			fmt.Fprintf(&b, "- %s: %s\n", f.Category, escape(faultMessage(f)))
		}
		for _, w := range c.Warnings {
			fmt.Fprintf(&b, "- warning: %s\n", escape(w))
		}
		if len(c.Missing) > 0 {
			fmt.Fprintf(&b, "- missing issues: %s\n", issueList(c.Missing))
		}
		if len(c.Extra) > 0 {
			fmt.Fprintf(&b, "- extra issues: %s\n", issueList(c.Extra))
		}
	}

	return b.String()
}

// RenderHTML renders the Markdown report to a standalone HTML page.
func RenderHTML(r *models.Report) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(r)), &body); err != nil {
		return nil, fmt.Errorf("failed to render report HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>Verification report %s</title>\n", r.RunID)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func issueList(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(parts, ", ")
}

// escape keeps table pipes and emphasis markers in messages literal.
func escape(s string) string {
	r := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
