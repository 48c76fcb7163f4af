package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	schema bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cfreplace configuration file",
		Long: `Create a new .cfreplace.yml configuration file in the current directory
with sensible defaults. The file can be customized to pick the application
strategy, the offset unit for reports, discovery settings, and backups.`,
		Example: `  cfreplace init                       # minimal .cfreplace.yml
  cfreplace init --full                # every setting filled in
  cfreplace init --format json         # .cfreplace.json instead
  cfreplace init --output custom.yml   # custom file path
  cfreplace init --schema              # JSON Schema for config files`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting")
	cmd.Flags().BoolVar(&flags.schema, "schema", false, "Write the JSON Schema for config files (stdout unless --output)")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .cfreplace.yml or .cfreplace.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.schema {
		return writeSchema(cmd, flags)
	}

	// Validate format
	if flags.format != "yaml" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".cfreplace.json"
		} else {
			outputPath = ".cfreplace.yml"
		}
	}

	// Make path absolute
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	// Generate template
	opts := config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	}

	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	// Write file
	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	if flags.full {
		logger.Info("full template lists every setting with its default")
	}

	logger.Info("customize your configuration by editing the file")

	return nil
}

func writeSchema(cmd *cobra.Command, flags *initFlags) error {
	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}

	if flags.output == "" {
		if _, err := cmd.OutOrStdout().Write(schema); err != nil {
			return fmt.Errorf("write schema: %w", err)
		}
		return nil
	}

	if _, err := os.Stat(flags.output); err == nil && !flags.force {
		return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
	}
	if err := os.WriteFile(flags.output, schema, configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logging.NewInteractive().Info("created schema file", logging.FieldPath, flags.output)
	return nil
}
