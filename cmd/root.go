package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "AI career guidance in your terminal",
	Long: "Career Compass helps you discover careers through interest quizzes, " +
		"AI career predictions and personalized guidance.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COMPASS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides COMPASS_CONFIG env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output (to stderr for non-interactive commands)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then COMPASS_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" && !envSet("COMPASS_DB") {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
