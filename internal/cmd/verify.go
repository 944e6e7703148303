package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/harrison/verifier/internal/config"
	"github.com/harrison/verifier/internal/display"
	"github.com/harrison/verifier/internal/logger"
	"github.com/harrison/verifier/internal/models"
	"github.com/harrison/verifier/internal/remote"
	"github.com/harrison/verifier/internal/report"
	"github.com/harrison/verifier/internal/verify"
	"github.com/spf13/cobra"
)

// ErrVerificationFailed is returned when the run completes but at least one
// check failed or the document could not be loaded.
var ErrVerificationFailed = errors.New("verification failed")

type verifyOptions struct {
	configPath   string
	mock         bool
	reportPath   string
	reportFormat string
	logLevel     string
	logDir       string
	baseURL      string
}

// NewVerifyCommand creates and returns the verify subcommand
func NewVerifyCommand() *cobra.Command {
	opts := &verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run all enabled verification checks",
		Long: `Load the analysis results document from the repository and run
the enabled checks in order:
  1. Load analysis results
  2. Commit: SHA format, existence, author and date format
  3. Parameters: required changes present and valid for the policy mode
  4. Issues: each issue exists and mentions a keyword, and the set
     matches the repository's matching issues

If no API token is configured the run uses bundled mock data.

Exit code: 0 if every check passes, 1 otherwise`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default: .verifier/config.yaml)")
	cmd.Flags().BoolVar(&opts.mock, "mock", false, "Use bundled mock data instead of the live API")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Write a report to this path")
	cmd.Flags().StringVar(&opts.reportFormat, "report-format", "", "Report format: json, markdown or html (default: from --report extension)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "", "Directory for run log files (overrides config)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "API base URL (overrides config)")

	return cmd
}

func runVerify(ctx context.Context, opts *verifyOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logDir != "" {
		cfg.LogDir = opts.logDir
	}
	if opts.baseURL != "" {
		cfg.Remote.BaseURL = opts.baseURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var format report.Format
	if opts.reportFormat != "" {
		if format, err = report.ParseFormat(opts.reportFormat); err != nil {
			return err
		}
	}

	creds, err := config.LoadCredentials(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	offline := opts.mock
	if !offline && !creds.HasToken() {
		display.NoTokenWarning(cfg.Environment.TokenVar).Display(stderr)
		offline = true
	}
	mode := models.ModeOnline
	if offline {
		mode = models.ModeOffline
	}

	console := logger.NewConsoleLogger(stdout, stderr, cfg.LogLevel)
	var log verify.Logger = console
	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return err
		}
		defer fileLog.Close()
		log = logger.NewMultiLogger(console, fileLog)
	}

	fetcher, err := remote.New(cfg, offline)
	if err != nil {
		log.LogError(err.Error())
		return fmt.Errorf("failed to create API client: %w", err)
	}

	runner, err := verify.NewRunner(cfg, fetcher, log, mode)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	result := runner.Run(ctx, creds)

	banner := display.NewBanner(result)
	var reportErr error
	if opts.reportPath != "" {
		if reportErr = report.Write(opts.reportPath, result, format); reportErr != nil {
			log.LogError(fmt.Sprintf("failed to write report: %v", reportErr))
		} else {
			banner.Report = opts.reportPath
		}
	}
	if fileLog != nil {
		banner.LogFile = fileLog.Path()
	}
	banner.Display(stdout)

	if !result.Passed {
		if !result.Loaded {
			return fmt.Errorf("%w: analysis document could not be loaded", ErrVerificationFailed)
		}
		return fmt.Errorf("%w: %d of %d check(s) failed", ErrVerificationFailed, len(banner.Failed), len(result.Checks))
	}
	if reportErr != nil {
		return fmt.Errorf("failed to write report: %w", reportErr)
	}
	return nil
}

// loadConfig loads from an explicit path when given, otherwise from the
// default location in the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
