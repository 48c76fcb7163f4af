package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
	"github.com/yaklabco/cfreplace/pkg/replacements"
	"github.com/yaklabco/cfreplace/pkg/reporter"
)

type parseFlags struct {
	format  string
	source  string
	compact bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [response.xml]",
		Short: "Parse a replacements response and print its edits",
		Long: `Parse the output of clang-format --output-replacements-xml and print the
edits it describes. The response is read from the given file, or from stdin
when no file or "-" is given. Empty input means there is nothing to change.`,
		Example: `  clang-format --output-replacements-xml main.cpp | cfreplace parse
  cfreplace parse main.cpp.replacements.xml --format json
  cfreplace parse response.xml --source main.cpp   # also check offsets fit
  cfreplace parse response.xml --format xml         # normalize the XML`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runParse(cmd, path, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, xml")
	cmd.Flags().StringVar(&flags.source, "source", "", "source file the edits must fit")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}
	if !format.IsValidForSet() {
		return usageError(fmt.Errorf("invalid format %q for parse: must be text, json, or xml", flags.format))
	}

	raw, responsePath, err := readResponse(cmd.InOrStdin(), path, config.DefaultMaxResponseSize)
	if err != nil {
		return err
	}

	set := replacements.NewReplacementSet(nil)
	if len(bytes.TrimSpace(raw)) > 0 {
		set, err = replacements.ParseBytes(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", displayName(responsePath), err)
		}
	}

	logger.Debug("parsed response",
		logging.FieldResponse, displayName(responsePath),
		logging.FieldEdits, set.Len(),
		logging.FieldIncomplete, set.IncompleteFormat(),
	)

	if flags.source != "" {
		content, err := os.ReadFile(flags.source)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read source: %w", err)}
		}
		if err := set.Validate(len(content)); err != nil {
			return fmt.Errorf("%s: %w", flags.source, err)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	return reporter.ReportSet(ctx, reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
	}, set)
}

func displayName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
