package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/julienpequegnot/qaboard/internal/badge"
	"github.com/julienpequegnot/qaboard/internal/config"
	"github.com/julienpequegnot/qaboard/internal/database"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize qaboard configuration and database",
	Long:  `Creates the ~/.qaboard directory with config.yaml, the SQLite database and the badge catalogue.`,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := config.Dir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	cfg := config.Default()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Created config at %s/config.yaml\n", dir)

	db, err := database.New(config.DBPath())
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	fmt.Printf("Created database at %s\n", config.DBPath())

	created, err := badge.NewRepository(db).Seed()
	if err != nil {
		return fmt.Errorf("failed to seed badges: %w", err)
	}
	fmt.Printf("Created %d badges\n", created)

	fmt.Println("\nQaboard initialized! Next steps:")
	fmt.Println("  qaboard seed                          Add sample users and tags")
	fmt.Println("  qaboard ask -u admin \"Title\" \"Body\"   Ask a question")
	fmt.Println("  qaboard serve                         Start the API")

	return nil
}
