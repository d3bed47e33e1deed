package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var answerCmd = &cobra.Command{
	Use:   "answer <question-id> <content>",
	Short: "Answer a question",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnswer,
}

var answerUser string

func init() {
	rootCmd.AddCommand(answerCmd)
	answerCmd.Flags().StringVarP(&answerUser, "user", "u", "", "Author username or ID")
	answerCmd.MarkFlagRequired("user")
}

func runAnswer(cmd *cobra.Command, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.lookupUser(answerUser)
	if err != nil {
		return err
	}

	ans, err := a.service().Answer(questionID, u.ID, args[1])
	if err != nil {
		return err
	}
	fmt.Printf("%s Answer #%d on question #%d\n", okStyle.Render("✓"), ans.ID, questionID)
	return nil
}
