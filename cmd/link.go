package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link related questions",
	Long: `Compares every pair of questions by keyword similarity and stores a link
for each pair above the threshold. Links back 'show' and the related API.`,
	RunE: runLink,
}

var (
	linkMinSimilarity float64
	linkRebuild       bool
)

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.Flags().Float64Var(&linkMinSimilarity, "min-similarity", 0, "Minimum similarity (0 = scoring.similar_threshold)")
	linkCmd.Flags().BoolVar(&linkRebuild, "rebuild", false, "Drop existing links first")
}

func runLink(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	threshold := linkMinSimilarity
	if threshold <= 0 {
		threshold = a.cfg.Scoring.SimilarThreshold
	}

	if linkRebuild {
		qs, err := a.questions.ListAll()
		if err != nil {
			return err
		}
		for _, q := range qs {
			if err := a.links.DeleteForQuestion(q.ID); err != nil {
				return err
			}
		}
	}

	linked, err := a.engine().RefreshLinks(threshold)
	if err != nil {
		return err
	}

	total, err := a.links.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Created/updated %d links (threshold %.2f, %d total)\n", linked, threshold, total)
	return nil
}
