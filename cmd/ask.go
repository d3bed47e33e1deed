package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <title> [content]",
	Short: "Ask a question",
	Long: `Stores a question for the given user. Answerers of the same tags are
notified and the author's badges are re-checked.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

var (
	askUser string
	askTags []string
)

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "Author username or ID")
	askCmd.Flags().StringSliceVarP(&askTags, "tags", "t", nil, "Comma-separated tags")
	askCmd.MarkFlagRequired("user")
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.lookupUser(askUser)
	if err != nil {
		return err
	}

	content := ""
	if len(args) > 1 {
		content = args[1]
	}

	q, err := a.service().Ask(u.ID, args[0], content, askTags)
	if err != nil {
		return err
	}

	fmt.Printf("%s Question #%d: %s\n", okStyle.Render("✓"), q.ID, q.Title)
	if len(q.Tags) > 0 {
		fmt.Printf("  %s %s\n", labelStyle.Render("Tags:"), tagStyle.Render(strings.Join(q.Tags, ", ")))
	}
	return nil
}
