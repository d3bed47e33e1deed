package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/scorer"
)

var qualityCmd = &cobra.Command{
	Use:   "quality [question-id]",
	Short: "Score question quality",
	Long: `With an ID, prints the quality rubric for that question. Without one,
scores every question that has no stored score yet and lists the weakest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuality,
}

var (
	qualityLimit  int
	qualityRescan bool
)

func init() {
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.Flags().IntVarP(&qualityLimit, "limit", "l", 10, "Number of weakest questions to list")
	qualityCmd.Flags().BoolVar(&qualityRescan, "all", false, "Rescore every question, not only new ones")
}

func runQuality(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 {
		id, err := parseID(args[0], "question")
		if err != nil {
			return err
		}
		return showQuality(a, id)
	}

	var ids []int64
	if qualityRescan {
		qs, err := a.questions.ListAll()
		if err != nil {
			return err
		}
		for _, q := range qs {
			ids = append(ids, q.ID)
		}
	} else {
		ids, err = a.scores.GetUnscoredQuestionIDs(10000)
		if err != nil {
			return err
		}
	}

	qs, err := a.questions.GetMany(ids)
	if err != nil {
		return err
	}
	for _, q := range qs {
		if err := a.scores.Upsert(q.ID, scorer.Quality(q.Title, q.Content, len(q.Tags))); err != nil {
			return err
		}
	}
	fmt.Printf("Scored %d questions\n\n", len(qs))

	lowest, err := a.scores.Lowest(qualityLimit)
	if err != nil {
		return err
	}
	if len(lowest) == 0 {
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-4s  %-7s  %s", "#", "QUALITY", "TITLE")))
	for _, s := range lowest {
		title := ""
		if q, err := a.questions.Get(s.QuestionID); err == nil {
			title = truncate(q.Title, 60)
		}
		fmt.Printf(" %s  %s  %s\n",
			idStyle.Render(fmt.Sprintf("%-4d", s.QuestionID)),
			scoreStyle.Render(fmt.Sprintf("%-7.2f", s.Quality)),
			title)
	}
	return nil
}

func showQuality(a *app, id int64) error {
	q, err := a.questions.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("question not found: %d", id)
	}
	if err != nil {
		return err
	}

	report := scorer.AnalyzeQuality(q.Title, q.Content, len(q.Tags))
	if err := a.scores.Upsert(q.ID, report.Score); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(q.Title))
	for _, c := range report.Checks {
		mark := labelStyle.Render("✗")
		if c.Passed {
			mark = okStyle.Render("✓")
		}
		fmt.Printf("  %s %-28s +%.2f\n", mark, c.Name, c.Bonus)
	}
	fmt.Printf("\n%s %s\n", labelStyle.Render("Quality:"), scoreStyle.Render(fmt.Sprintf("%.2f", report.Score)))
	return nil
}
