package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Recommend questions for a user",
	Long: `Ranks questions the user neither asked nor answered by overlap with the
tags of questions they asked or answered, and by popularity.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

var recommendLimit int

func init() {
	rootCmd.AddCommand(recommendCmd)
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "l", 10, "Maximum results to show")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.lookupUser(args[0])
	if err != nil {
		return err
	}

	results, err := a.engine().ForUser(u.ID, recommendLimit)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s %s\n\n", headerStyle.Render("RECOMMENDED FOR"), u.Username)
	printScored(results, "Nothing to recommend yet.")
	return nil
}
