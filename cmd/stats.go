package cmd

import (
	"context"
	"time"

	"github.com/jjenkins/polls/internal/service"
	"github.com/jjenkins/polls/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print poll totals",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stats, err := service.NewStatsService(db, store.NewQuestionStore(db)).Calculate(ctx, time.Now())
		if err != nil {
			log.Fatalf("Failed to calculate stats: %v", err)
		}

		log.Printf("Total questions:       %d", stats.TotalQuestions)
		log.Printf("Published questions:   %d", stats.PublishedQuestions)
		log.Printf("Displayable questions: %d", stats.DisplayableQuestions)
		log.Printf("Total choices:         %d", stats.TotalChoices)
		log.Printf("Total votes:           %d", stats.TotalVotes)
		if stats.TopQuestion != "" {
			log.Printf("Top question:          %s (%d votes)", stats.TopQuestion, stats.TopQuestionVotes)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
