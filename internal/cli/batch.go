package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

type batchFlags struct {
	applyFlags

	manifest   string
	suffix     string
	extensions []string
	ignore     []string
}

func newBatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &batchFlags{}

	cmd := &cobra.Command{
		Use:   "batch [paths...]",
		Short: "Apply saved responses to many source files",
		Long: `Apply saved clang-format responses to many files in parallel.

Each source file is paired with the response saved next to it
(<file>.replacements.xml by default). Directories are walked for source
files with a configured extension; hidden, vendored, and ignored paths are
skipped. Alternatively, a YAML manifest lists explicit source/response pairs.`,
		Example: `  cfreplace batch                       # Walk the current directory
  cfreplace batch src/ include/         # Walk specific directories
  cfreplace batch --check               # Exit 1 if any file needs formatting
  cfreplace batch --manifest jobs.yml   # Use explicit pairs
  cfreplace batch --format json --jobs 8`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, &cfg, flags)
		},
	}

	addApplyFlags(cmd, &cfg, &flags.applyFlags)
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.manifest, "manifest", "", "YAML file listing source/response pairs")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "response file suffix (default .replacements.xml)")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "source extensions to discover")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *batchFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if flags.manifest != "" && len(args) > 0 {
		return usageError(errors.New("paths and --manifest are mutually exclusive"))
	}

	cliCfg.ResponseSuffix = flags.suffix
	cliCfg.Extensions = flags.extensions
	cliCfg.Ignore = flags.ignore

	cfg, workDir, err := resolveApplyConfig(cmd, cliCfg, &flags.applyFlags)
	if err != nil {
		return err
	}

	pipelineOpts, err := runner.PipelineOptionsFromConfig(cfg)
	if err != nil {
		return configError(err)
	}
	batchRunner := runner.New(runner.NewPipeline(pipelineOpts))

	var result *runner.Result
	if flags.manifest != "" {
		jobs, err := runner.LoadManifest(flags.manifest, cfg.ResponseSuffix)
		if err != nil {
			return &ExitError{Code: ExitDataError, Err: err}
		}
		logger.Debug("loaded manifest", logging.FieldPath, flags.manifest, logging.FieldJobsTotal, len(jobs))
		result, err = batchRunner.RunJobs(ctx, jobs, cfg.Jobs)
		if err != nil {
			return errors.Join(errors.New("batch run failed"), err)
		}
	} else {
		runOpts := runner.OptionsFromConfig(cfg, args)
		runOpts.WorkingDir = workDir

		logger.Debug("starting batch run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)

		result, err = batchRunner.Run(ctx, runOpts)
		if err != nil {
			return errors.Join(errors.New("batch run failed"), err)
		}
	}

	logger.Debug("batch run finished",
		logging.FieldJobsTotal, result.Stats.JobsTotal,
		logging.FieldFilesModified, result.Stats.FilesWritten,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldEditsApplied, result.Stats.EditsApplied,
	)

	if err := report(cmd, cfg, workDir, flags.verbose, result); err != nil {
		return err
	}

	switch code := ExitCodeFromResult(result, flags.check); code {
	case ExitSuccess:
		return nil
	case ExitChangesPending:
		return ErrChangesPending
	default:
		return &ExitError{
			Code: code,
			Err:  fmt.Errorf("%d of %d responses could not be applied", result.Stats.FilesErrored, result.Stats.JobsTotal),
		}
	}
}
