// Package cli implements the Ka Pai Putea command-line interface using Cobra.
// Each subcommand maps to one learner-facing surface (lessons, invest,
// hustle, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kapai",
	Short: "Ka Pai Putea — Learn money skills, NZ style",
	Long: `Ka Pai Putea is a financial literacy trainer for young Kiwis.
Complete lessons, hold a streak, trade virtual stocks, and run a side
hustle, all from your terminal or the local API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
