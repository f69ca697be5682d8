package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagKeyword string
	flagDemo    bool
)

var rootCmd = &cobra.Command{
	Use:   "repscan",
	Short: "TUI reputation monitor for YouTube comments",
	Long:  "repscan polls YouTube comments for a monitored keyword, classifies sentiment, ranks repeat posters, and renders a live threat dashboard.",
	RunE:  runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().StringVar(&flagKeyword, "keyword", "", "override the monitored keyword")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "run with simulated signals, no API keys needed")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("repscan %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
