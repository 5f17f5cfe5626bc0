// Package cli wires the cobra command tree for the archivus binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/archivus-ai/archivus/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "archivus",
	Short: "Document Q&A service with retrieval-augmented generation",
	Long: `Archivus ingests documents into searchable collections and answers
questions about them using semantic retrieval and an LLM.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verboseFlag {
			logger.SetVerbose(true)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
