package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/question"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions",
	Long:  `List questions, newest first, with their answer and vote counts.`,
	RunE:  runList,
}

var (
	listTop    int
	listOffset int
	listUser   string
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVarP(&listTop, "top", "n", 20, "Number of questions to show")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Skip this many questions")
	listCmd.Flags().StringVarP(&listUser, "user", "u", "", "Only questions asked by this user")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var qs []question.Question
	if listUser != "" {
		u, err := a.lookupUser(listUser)
		if err != nil {
			return err
		}
		qs, err = a.questions.ListByUser(u.ID)
		if err != nil {
			return err
		}
	} else {
		qs, err = a.questions.List(listTop, listOffset)
		if err != nil {
			return err
		}
	}

	if len(qs) == 0 {
		fmt.Println("No questions found. Run 'qaboard ask' or 'qaboard import' to add some.")
		return nil
	}

	printQuestionHeader("A/V")
	for i, q := range qs {
		if i >= listTop {
			break
		}
		printQuestionRow(q, fmt.Sprintf("%d/%d", q.AnswerCount, q.VoteCount))
	}

	return nil
}
