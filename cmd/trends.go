package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/topics"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show trending tags",
	Long:  `Ranks tags by questions, answers and votes on questions asked within the window.`,
	RunE:  runTrends,
}

var (
	trendsDays  int
	trendsLimit int
)

func init() {
	rootCmd.AddCommand(trendsCmd)
	trendsCmd.Flags().IntVar(&trendsDays, "days", 7, "Time window in days")
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "l", 10, "Maximum trends to show")
}

func runTrends(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	trends, err := topics.NewAggregator(a.questions, a.tags, a.cfg.Scoring.TrendingSamples).Trending(trendsDays, trendsLimit)
	if err != nil {
		return err
	}

	if len(trends) == 0 {
		fmt.Println("No trending tags found.")
		return nil
	}

	fmt.Printf("\n%s (last %d days)\n\n", headerStyle.Render("TRENDING TAGS"), trendsDays)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	maxActivity := trends[0].Activity

	for i, trend := range trends {
		barWidth := 0
		if maxActivity > 0 {
			barWidth = trend.Activity * 20 / maxActivity
		}

		fmt.Printf("%2d. %-20s %s %d\n",
			i+1,
			trend.Tag.Name,
			barStyle.Render(strings.Repeat("█", barWidth)),
			trend.Activity)
		for _, q := range trend.Samples {
			fmt.Printf("      %s %s\n", idStyle.Render(fmt.Sprintf("#%d", q.ID)), truncate(q.Title, 60))
		}
	}

	fmt.Println()
	return nil
}
