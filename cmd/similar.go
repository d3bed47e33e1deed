package cmd

import (
	"github.com/spf13/cobra"
)

var similarCmd = &cobra.Command{
	Use:   "similar <question-id>",
	Short: "Find questions similar to a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

var similarLimit int

func init() {
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "l", 5, "Maximum results to show")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.engine().SimilarQuestions(id, similarLimit)
	if err != nil {
		return err
	}
	printScored(results, "No similar questions found.")
	return nil
}
