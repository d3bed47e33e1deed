package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/feed"
)

var showCmd = &cobra.Command{
	Use:   "show <question-id>",
	Short: "Show a question with its answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0], "question")
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	q, err := a.questions.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("question not found: %d", id)
	}
	if err != nil {
		return err
	}

	divider := labelStyle.Render(strings.Repeat("━", 70))

	fmt.Println(divider)
	fmt.Println(titleStyle.Render(q.Title))
	fmt.Println(divider)

	if u, err := a.users.Get(q.UserID); err == nil {
		fmt.Printf("%s %s\n", labelStyle.Render("Asked by:"), valueStyle.Render(u.Username))
	}
	fmt.Printf("%s %s\n", labelStyle.Render("Asked:"), valueStyle.Render(q.CreatedAt.Format("2006-01-02 15:04")))
	if len(q.Tags) > 0 {
		fmt.Printf("%s %s\n", labelStyle.Render("Tags:"), tagStyle.Render(strings.Join(q.Tags, ", ")))
	}
	fmt.Printf("%s %d answers, %d votes\n", labelStyle.Render("Activity:"), q.AnswerCount, q.VoteCount)
	if s, err := a.scores.Get(id); err == nil {
		fmt.Printf("%s %.2f\n", labelStyle.Render("Quality:"), s.Quality)
	}

	if preview := feed.Preview(q.Content, 500); preview != "" {
		fmt.Println()
		fmt.Println(valueStyle.Render(preview))
	}

	answers, err := a.answers.ListForQuestion(id)
	if err != nil {
		return err
	}
	if len(answers) > 0 {
		fmt.Printf("\n%s\n", labelStyle.Render("ANSWERS:"))
		for _, ans := range answers {
			mark := " "
			if ans.IsAccepted {
				mark = okStyle.Render("✓")
			}
			fmt.Printf(" %s %s %s\n", mark, idStyle.Render(fmt.Sprintf("#%d", ans.ID)), feed.Preview(ans.Content, 200))
		}
	}

	links, err := a.links.GetForQuestion(id)
	if err == nil && len(links) > 0 {
		if len(links) > 5 {
			links = links[:5]
		}
		fmt.Printf("\n%s\n", labelStyle.Render("RELATED:"))
		for _, l := range links {
			other := l.QuestionIDB
			if other == id {
				other = l.QuestionIDA
			}
			title := ""
			if rq, err := a.questions.Get(other); err == nil {
				title = rq.Title
			}
			fmt.Printf("  → #%d %s %s\n", other, title, scoreStyle.Render(fmt.Sprintf("(%.2f)", l.Strength)))
		}
	}

	return nil
}
