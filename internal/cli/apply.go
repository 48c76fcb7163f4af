package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
	"github.com/yaklabco/cfreplace/pkg/reporter"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

// applyFlags holds flags shared by apply and batch.
type applyFlags struct {
	format           string
	strategy         string
	encoding         string
	check            bool
	verbose          bool
	backup           bool
	failOnIncomplete bool
	noLanguageCheck  bool
}

func newApplyCommand() *cobra.Command {
	var cfg config.Config
	flags := &applyFlags{}
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "apply <source> [response.xml]",
		Short: "Apply a replacements response to a source file",
		Long: `Apply the output of clang-format --output-replacements-xml to a source file.

The response is read from the given file, or from stdin when it is omitted
or "-". Offsets in the response are byte offsets into the source as it is
on disk; the file is rewritten atomically unless it changed in the meantime.`,
		Example: `  clang-format --output-replacements-xml main.cpp | cfreplace apply main.cpp
  cfreplace apply main.cpp main.cpp.replacements.xml
  cfreplace apply main.cpp response.xml --dry-run --format diff
  cfreplace apply main.cpp response.xml --stdout > formatted.cpp
  cfreplace apply main.cpp response.xml --format lsp   # LSP TextEdits`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			responsePath := ""
			if len(args) == 2 {
				responsePath = args[1]
			}
			return runApply(cmd, args[0], responsePath, &cfg, flags, toStdout)
		},
	}

	addApplyFlags(cmd, &cfg, flags)
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the formatted content instead of writing the file")

	return cmd
}

func addApplyFlags(cmd *cobra.Command, cfg *config.Config, flags *applyFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&flags.check, "check", false, "dry run that exits 1 when files need formatting")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, lsp")
	cmd.Flags().StringVar(&flags.strategy, "strategy", "", "edit application strategy: descending, delta")
	cmd.Flags().StringVar(&flags.encoding, "offset-encoding", "", "offset unit in JSON output: utf8, utf16, runes")
	cmd.Flags().BoolVar(&flags.failOnIncomplete, "fail-on-incomplete", false,
		"refuse to write when the formatter reports an incomplete format")
	cmd.Flags().BoolVar(&flags.noLanguageCheck, "no-language-check", false,
		"edit files even when they are not a clang-format language")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a sidecar backup of each rewritten file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().BoolVar(&cfg.Force, "force", false, "write even if a file changed since it was read")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list unchanged files")
}

// resolveApplyConfig folds the explicitly set flags into cfg and loads the
// merged configuration.
func resolveApplyConfig(cmd *cobra.Command, cfg *config.Config, flags *applyFlags) (*config.Config, string, error) {
	format, err := config.ParseOutputFormat(flags.format)
	if err != nil {
		return nil, "", usageError(err)
	}
	cfg.Format = format
	if flags.check {
		cfg.DryRun = true
	}
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = flags.strategy
	}
	if cmd.Flags().Changed("offset-encoding") {
		cfg.OffsetEncoding = flags.encoding
	}
	if cmd.Flags().Changed("fail-on-incomplete") {
		cfg.FailOnIncomplete = config.Bool(flags.failOnIncomplete)
	}
	if cmd.Flags().Changed("no-language-check") {
		cfg.CheckLanguage = config.Bool(!flags.noLanguageCheck)
	}
	if cmd.Flags().Changed("backup") {
		cfg.Backups.Enabled = config.Bool(flags.backup)
	}

	return loadConfig(commandContext(cmd), cmd, cfg)
}

func runApply(cmd *cobra.Command, source, responsePath string, cliCfg *config.Config, flags *applyFlags, toStdout bool) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if toStdout {
		cliCfg.DryRun = true
	}

	cfg, workDir, err := resolveApplyConfig(cmd, cliCfg, flags)
	if err != nil {
		return err
	}

	pipelineOpts, err := runner.PipelineOptionsFromConfig(cfg)
	if err != nil {
		return configError(err)
	}

	response, responsePath, err := readResponse(cmd.InOrStdin(), responsePath, cfg.MaxResponseSize)
	if err != nil {
		return err
	}

	logger.Debug("applying response",
		logging.FieldPath, source,
		logging.FieldResponse, displayName(responsePath),
		logging.FieldBytes, len(response),
	)

	jr, err := runner.NewPipeline(pipelineOpts).ApplyResponse(ctx, source, response)
	if err != nil {
		return err
	}
	jr.ResponsePath = responsePath

	if toStdout {
		content := jr.Original
		if jr.Changed && !jr.Skipped {
			content = jr.Modified
		}
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	result := runner.NewResult(runner.Outcome{
		Job:    runner.Job{Source: source, Response: responsePath},
		Result: jr,
	})
	if err := report(cmd, cfg, workDir, flags.verbose, result); err != nil {
		return err
	}

	if flags.check && jr.Changed && !jr.Skipped {
		return ErrChangesPending
	}
	return nil
}

// report renders a run result in the configured format.
func report(cmd *cobra.Command, cfg *config.Config, workDir string, verbose bool, result *runner.Result) error {
	opts, err := reporterOptions(cmd, cfg, workDir, verbose)
	if err != nil {
		return err
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return usageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return errors.Join(errors.New("report results"), err)
	}
	return nil
}
