// Package cli provides the Cobra command structure for cfreplace.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root cfreplace command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "cfreplace",
		Short: "Apply clang-format replacement responses to source files",
		Long: `cfreplace applies the output of clang-format --output-replacements-xml to
source files.

clang-format can describe the changes it would make as a list of byte-offset
replacements instead of rewriting a file. cfreplace parses that list, checks
that every edit fits the file and that edits do not overlap, and applies them
with an atomic write, optional backups, and a guard against files that
changed while they were being processed. Responses can be applied one file
at a time, from stdin, or in parallel across a tree of saved responses.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddGroup(commandGroups()...)
	for _, sub := range []*cobra.Command{newParseCommand(), newApplyCommand(), newBatchCommand()} {
		sub.GroupID = groupFormatting
		rootCmd.AddCommand(sub)
	}
	for _, sub := range []*cobra.Command{newRestoreCommand(), newInitCommand(), newVersionCommand(info)} {
		sub.GroupID = groupMaintenance
		rootCmd.AddCommand(sub)
	}
	rootCmd.SetHelpCommandGroupID(groupMaintenance)
	rootCmd.SetCompletionCommandGroupID(groupMaintenance)

	installHelp(rootCmd)

	return rootCmd
}
