package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/verifier/internal/models"
)

const bannerWidth = 60

// Banner is the final verdict block printed after every run.
type Banner struct {
	Passed  bool
	Failed  []string // names of failed checks
	Report  string   // path of the written report, if any
	LogFile string   // path of the run log, if any
}

// NewBanner builds a banner from a finished report.
func NewBanner(report *models.Report) Banner {
	b := Banner{Passed: report.Passed}
	for _, c := range report.Checks {
		if !c.Passed {
			b.Failed = append(b.Failed, c.Name)
		}
	}
	return b
}

// Display writes the banner.
func (b Banner) Display(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", bannerWidth))

	if b.Passed {
		color.New(color.FgGreen, color.Bold).Fprintln(out, "✅ All verification checks passed!")
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(out, "❌ Some verification checks failed")
		if len(b.Failed) > 0 {
			fmt.Fprintf(out, "   Failed: %s\n", strings.Join(b.Failed, ", "))
		}
	}

	if b.Report != "" {
		fmt.Fprintf(out, "   Report: %s\n", b.Report)
	}
	if b.LogFile != "" {
		fmt.Fprintf(out, "   Log:    %s\n", b.LogFile)
	}
}
