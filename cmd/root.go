package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "qaboard",
	Short: "A question and answer board with keyword-based ranking",
	Long: `Qaboard stores questions, answers and votes in SQLite and ranks them
with keyword similarity, tag overlap and engagement.

Write:  ask → answer → accept → vote
Read:   similar, recommend, search, trends, quality, suggest-tags
Serve:  HTTP API, websocket notifications and the badge sweep`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logging.Init(logging.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: os.Stderr,
		})
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = "0.1.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
