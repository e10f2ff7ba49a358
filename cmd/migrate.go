package cmd

import (
	"context"
	"time"

	"github.com/jjenkins/polls/internal/store"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the polls database tables",
	Long:  `Create the questions and choices tables. Existing tables are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := store.Migrate(ctx, db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Info("Database schema ready")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
