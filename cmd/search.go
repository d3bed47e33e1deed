package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/feed"
	"github.com/julienpequegnot/qaboard/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search questions",
	Long: `Finds questions whose title or content contains the query, or that carry
a tag named like it, ranked by similarity, popularity and recency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var (
	searchLimit   int
	searchVerbose bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "Maximum results to show")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Show the score breakdown")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := search.NewRanker(a.questions, a.tags, a.cfg.Scoring).Search(query, 0, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No results found for '%s'\n", query)
		return nil
	}

	fmt.Printf("\n%s '%s' (%d results)\n\n", headerStyle.Render("SEARCH:"), query, len(results))

	for _, r := range results {
		fmt.Printf("%s %s\n", idStyle.Render(fmt.Sprintf("[%d]", r.Question.ID)), r.Question.Title)
		fmt.Printf("    %s", scoreStyle.Render(fmt.Sprintf("Score: %.3f", r.Score)))
		if len(r.Question.Tags) > 0 {
			fmt.Printf(" • %s", tagStyle.Render(strings.Join(r.Question.Tags, ", ")))
		}
		fmt.Println()

		if searchVerbose {
			fmt.Printf("    title %.3f  content %.3f  popularity %.3f  recency %.3f\n",
				r.TitleSimilarity, r.ContentSimilarity, r.Popularity, r.Recency)
		}
		if snippet := feed.Preview(r.Question.Content, 120); snippet != "" {
			fmt.Printf("    %s\n", valueStyle.Render(snippet))
		}
		fmt.Println()
	}

	return nil
}
