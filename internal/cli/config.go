package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/configloader"
	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
	"github.com/yaklabco/cfreplace/pkg/reporter"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// commandContext returns the command's context with the default logger
// attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the configuration for a command, with cliCfg
// holding the values of flags the user set.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", configError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		logging.FieldStrategy, cfg.Strategy,
		logging.FieldEncoding, cfg.OffsetEncoding,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// reporterOptions builds reporter options shared by apply and batch.
func reporterOptions(cmd *cobra.Command, cfg *config.Config, workDir string, verbose bool) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return reporter.Options{}, usageError(err)
	}

	encoding, err := textedit.ParseEncoding(cfg.OffsetEncoding)
	if err != nil {
		return reporter.Options{}, configError(err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	return reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     verbose,
		Encoding:    encoding,
		WorkingDir:  workDir,
	}, nil
}
