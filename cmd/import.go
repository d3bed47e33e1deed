package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/feed"
)

var importCmd = &cobra.Command{
	Use:   "import [feed-url...]",
	Short: "Import questions from Atom/RSS feeds",
	Long: `Fetches each feed (or every feed in import.feeds when none is given) and
stores unseen entries as questions, with entry categories as tags.`,
	RunE: runImport,
}

var importDiscover bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDiscover, "discover", false, "Treat arguments as site URLs and discover their feeds")
}

func runImport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	feeds := args
	if len(feeds) == 0 {
		feeds = a.cfg.Import.Feeds
	}
	if len(feeds) == 0 {
		fmt.Println("No feeds configured. Pass a feed URL or set import.feeds in config.yaml.")
		return nil
	}

	fetcher := feed.NewFetcher(time.Duration(a.cfg.Import.TimeoutSeconds)*time.Second, a.cfg.Import.UserAgent)
	importer := feed.NewImporter(fetcher, a.users, a.questions, a.tags, a.cfg.Import.Username)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	total := 0
	for _, url := range feeds {
		if importDiscover {
			found, err := fetcher.DiscoverFeed(ctx, url)
			if err != nil {
				fmt.Printf("  Error discovering %s: %v\n", url, err)
				continue
			}
			url = found
		}

		res, err := importer.Import(ctx, url)
		if err != nil {
			fmt.Printf("  Error importing %s: %v\n", url, err)
			continue
		}
		fmt.Printf("%s %s: %d new, %d skipped\n", okStyle.Render("✓"), url, res.Imported, res.Skipped)
		total += res.Imported
	}

	fmt.Printf("\nImported %d questions\n", total)
	return nil
}
