package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/handlers"
	"github.com/jjenkins/polls/internal/metrics"
	"github.com/jjenkins/polls/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the polls web server",
	Long:  `Start the web server that lists questions, takes votes and shows results.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Flag wins over PORT when given explicitly
		if !cmd.Flags().Changed("port") {
			port = cfg.Port
		}

		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		app := handlers.NewApp(handlers.Deps{
			Questions:   store.NewQuestionStore(db),
			Choices:     store.NewChoiceStore(db),
			Validator:   forms.NewValidator(),
			Metrics:     metrics.New(prometheus.DefaultRegisterer),
			Gatherer:    prometheus.DefaultGatherer,
			Log:         log,
			Location:    cfg.Location,
			LatestLimit: cfg.LatestLimit,
			AccessLog:   true,
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			log.Info("Received interrupt signal, shutting down...")
			if err := app.Shutdown(); err != nil {
				log.WithError(err).Error("Shutdown failed")
			}
		}()

		log.Infof("Starting server on :%s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
