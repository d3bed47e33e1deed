package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add sample users, tags and badges",
	Long:  `Creates the sample users and basic tags. Existing rows are left alone, so seeding twice is harmless.`,
	RunE:  runSeed,
}

var seedUsers = []struct {
	username string
	email    string
}{
	{"admin", "admin@qa.com"},
	{"john_doe", "john@example.com"},
	{"jane_smith", "jane@example.com"},
	{"testuser", "test@example.com"},
}

var seedTags = []string{"python", "javascript", "flask", "database", "web-development", "api"}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, su := range seedUsers {
		u, err := a.users.Ensure(su.username, su.email)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", su.username, err)
		}
		fmt.Printf("%s user %s (#%d)\n", okStyle.Render("✓"), u.Username, u.ID)
	}

	for _, name := range seedTags {
		if _, err := a.tags.Ensure(name); err != nil {
			return fmt.Errorf("failed to create tag %s: %w", name, err)
		}
	}
	fmt.Printf("%s %d tags\n", okStyle.Render("✓"), len(seedTags))

	created, err := a.badges.Seed()
	if err != nil {
		return err
	}
	fmt.Printf("%s %d new badges\n", okStyle.Render("✓"), created)
	return nil
}
