package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"macrotracker/internal/database"
	"macrotracker/internal/logging"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Run:   runMigrate,
}

var migrateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List embedded migrations",
	Run:   runMigrateList,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateListCmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := loadConfig()
	db := openDB(ctx, cfg)
	defer db.Close()

	n, err := db.Migrate(ctx)
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to run migrations")
	}
	fmt.Printf("Applied %d migration(s)\n", n)
}

func runMigrateList(cmd *cobra.Command, args []string) {
	migrations, err := database.Migrations()
	if err != nil {
		logging.CLI().WithError(err).Fatal("Failed to read migrations")
	}
	for _, m := range migrations {
		fmt.Println(m.Version)
	}
}
