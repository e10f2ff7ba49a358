package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/service"
	"github.com/jjenkins/polls/internal/store"
	"github.com/spf13/cobra"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import questions and choices from a YAML fixture file",
	Long: `Import loads questions with their choices from a YAML file.

Each entry is validated like a submission of the add question form and
stored in its own transaction. Invalid entries are skipped.

Example fixture:
  questions:
    - question_text: "What's new?"
      pub_date: "2024-01-02 10:00:00"
      choices: ["Not much", "The sky"]

Examples:
  ./polls import --file fixtures.yaml`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML fixture file to import")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received interrupt signal, stopping import...")
		cancel()
	}()

	f, err := os.Open(importFile)
	if err != nil {
		log.Fatalf("Failed to open fixture file: %v", err)
	}
	defer f.Close()

	fixtures, err := service.ParseFixtures(f)
	if err != nil {
		log.Fatalf("Invalid fixture file: %v", err)
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	importer := service.NewImporter(store.NewQuestionStore(db), forms.NewValidator(), cfg.Location, log)
	stats, err := importer.Import(ctx, fixtures)
	importer.PrintSummary(stats)
	if err != nil {
		log.Fatalf("Import cancelled: %v", err)
	}

	if stats.Invalid > 0 || stats.Failed > 0 {
		os.Exit(1)
	}
}
