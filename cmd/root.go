package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "incident-desk",
	Short: "IT incident desk API with cached AI root cause analysis",
	Long: `incident-desk serves the incident dashboard API: incident tracking,
team assignment with notifications, analytics, and root cause analysis
that is cached per incident until its title or description changes.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(schemaCmd)
}
