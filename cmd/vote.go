package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var voteCmd = &cobra.Command{
	Use:   "vote <question-id>",
	Short: "Vote for a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runVote,
}

var voteUser string

func init() {
	rootCmd.AddCommand(voteCmd)
	voteCmd.Flags().StringVarP(&voteUser, "user", "u", "", "Voter username or ID")
	voteCmd.MarkFlagRequired("user")
}

func runVote(cmd *cobra.Command, args []string) error {
	questionID, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.lookupUser(voteUser)
	if err != nil {
		return err
	}

	created, err := a.service().Vote(questionID, u.ID)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("%s already voted for question #%d\n", u.Username, questionID)
		return nil
	}
	fmt.Printf("%s Vote recorded for question #%d\n", okStyle.Render("✓"), questionID)
	return nil
}
