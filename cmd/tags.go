package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags with their question counts",
	RunE:  runTags,
}

var tagsMin int

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().IntVar(&tagsMin, "min", 0, "Hide tags used on fewer questions")
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tags, err := a.tags.List()
	if err != nil {
		return err
	}

	shown := 0
	for _, t := range tags {
		if t.QuestionCount < tagsMin {
			continue
		}
		fmt.Printf(" %s %s\n", tagStyle.Render(fmt.Sprintf("%-24s", t.Name)), valueStyle.Render(fmt.Sprintf("%d", t.QuestionCount)))
		shown++
	}
	if shown == 0 {
		fmt.Println("No tags found.")
	}
	return nil
}
