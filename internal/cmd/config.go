package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/verifier/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// effectiveConfig is what `verifier config` prints: the resolved
// repository and a masked token ahead of the policy itself.
type effectiveConfig struct {
	Repository    string `yaml:"repository"`
	Token         string `yaml:"token"`
	config.Config `yaml:",inline"`
}

// NewConfigCommand creates and returns the config subcommand
func NewConfigCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration verify would run with: defaults merged with
the config file, plus the repository and token resolved from the
environment. The token value is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(configPath, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: .verifier/config.yaml)")

	return cmd
}

func printConfig(path string, out io.Writer) error {
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}

	creds, err := config.LoadCredentials(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	view := effectiveConfig{
		Repository: creds.Slug(),
		Token:      maskToken(creds.Token),
		Config:     *cfg,
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	return "****"
}
