package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/topics"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest-tags <title> [content]",
	Short: "Suggest existing tags for a draft question",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSuggest,
}

var suggestLimit int

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "l", 5, "Maximum tags to suggest")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	content := ""
	if len(args) > 1 {
		content = args[1]
	}

	tags, err := topics.NewSuggester(a.tags).Suggest(args[0], content, suggestLimit)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		fmt.Println("No matching tags.")
		return nil
	}
	for _, t := range tags {
		fmt.Println(tagStyle.Render(t.Name))
	}
	return nil
}
