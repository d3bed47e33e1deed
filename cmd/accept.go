package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var acceptCmd = &cobra.Command{
	Use:   "accept <answer-id>",
	Short: "Mark an answer as accepted",
	Long:  `Accepts the answer and clears the flag on every other answer to the same question.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAccept,
}

func init() {
	rootCmd.AddCommand(acceptCmd)
}

func runAccept(cmd *cobra.Command, args []string) error {
	answerID, err := parseID(args[0], "answer")
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ans, err := a.service().Accept(answerID)
	if err != nil {
		return err
	}
	fmt.Printf("%s Answer #%d accepted for question #%d\n", okStyle.Render("✓"), ans.ID, ans.QuestionID)
	return nil
}
