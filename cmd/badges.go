package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/badge"
)

var badgesCmd = &cobra.Command{
	Use:   "badges [user]",
	Short: "Show badges",
	Long: `Without a user, lists the badge catalogue. With one, checks and awards
anything newly earned, then shows earned badges and progress.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBadges,
}

var badgesSweep bool

func init() {
	rootCmd.AddCommand(badgesCmd)
	badgesCmd.Flags().BoolVar(&badgesSweep, "award-all", false, "Check every user once, as serve does on its schedule")
}

func runBadges(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	awarder := a.awarder(a.dispatcher(nil))

	if badgesSweep {
		total, err := awarder.AwardAll()
		if err != nil {
			return err
		}
		fmt.Printf("Awarded %d badges\n", total)
		return nil
	}

	all, err := a.badges.List()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, b := range all {
			fmt.Printf(" %s %-16s %s\n", b.Icon, b.Name, labelStyle.Render(b.Description))
		}
		return nil
	}

	u, err := a.lookupUser(args[0])
	if err != nil {
		return err
	}
	if _, err := awarder.CheckAndAward(u.ID); err != nil {
		return err
	}

	earned, err := a.badges.ForUser(u.ID)
	if err != nil {
		return err
	}
	stats, err := a.users.Stats(u.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s (reputation %d)\n\n", headerStyle.Render("BADGES"), u.Username, badge.Reputation(*stats))
	held := make(map[int64]bool, len(earned))
	for _, e := range earned {
		held[e.ID] = true
		fmt.Printf(" %s %-16s %s\n", e.Icon, e.Name, dateStyle.Render(e.EarnedAt.Format("2006-01-02")))
	}

	progress := awarder.Progress(u, *stats)
	fmt.Printf("\n%s\n", labelStyle.Render("IN PROGRESS:"))
	for _, b := range all {
		if held[b.ID] {
			continue
		}
		fmt.Printf("   %-16s %d/%d %s\n", b.Name, min(progress[b.RequirementType], b.RequirementValue), b.RequirementValue, b.RequirementType)
	}
	return nil
}
