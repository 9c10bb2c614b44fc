package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "trendbot",
	Short: "Market trend analysis bot",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
