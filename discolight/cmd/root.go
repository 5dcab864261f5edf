// Package cmd provides the command-line interface of discolight.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCmd creates the discolight command with all its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "discolight",
		Short: "Cycle a light through random colours on a simulated render view.",
		Long: `discolight repeatedly picks a colour with one channel at full ` +
			`intensity, sends it to a simulated render view, waits for the ` +
			`view to start rendering it and reports how long that took.`,
		SilenceUsage: true,
	}

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("discolight version {{.Version}}\n")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
