package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for verifier
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verifier",
		Short: "Verify analysis results against a GitHub repository",
		Long: `Verifier checks that an analysis results document matches the
repository it describes: the commit exists and was made by the named
author, the recorded parameter changes match policy, and the related
issues exist and mention the expected keywords.

Without an API token it runs against bundled mock data.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewVerifyCommand())
	cmd.AddCommand(NewConfigCommand())
	cmd.AddCommand(NewServeFixturesCommand())

	return cmd
}
