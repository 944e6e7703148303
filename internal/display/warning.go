package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Details    []string // Itemised specifics (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning in yellow.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	for i, d := range w.Details {
		fmt.Fprintf(&b, "      %d. %s\n", i+1, d)
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// NoTokenWarning is shown when no API token is configured and the run falls
// back to the bundled fixtures.
func NoTokenWarning(tokenVar string) Warning {
	return Warning{
		Title:      "No API token found, using mock data",
		Message:    fmt.Sprintf("%s is not set in the environment or the .env file.", tokenVar),
		Suggestion: fmt.Sprintf("Export %s to verify against the live repository.", tokenVar),
	}
}

// ConfigWarning is shown when a policy file could not be used.
func ConfigWarning(path string, err error) Warning {
	return Warning{
		Title:   "Configuration problem",
		Message: fmt.Sprintf("%s: %v", path, err),
	}
}
