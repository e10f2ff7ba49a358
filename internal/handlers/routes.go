package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/metrics"
	"github.com/jjenkins/polls/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators shared by the polls handlers
type Deps struct {
	Questions   *store.QuestionStore
	Choices     *store.ChoiceStore
	Validator   *forms.Validator
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // serves /metrics when set
	Log         *logrus.Logger
	Location    *time.Location
	LatestLimit int
	AccessLog   bool
}

// NewApp builds the fiber application with every polls route registered
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Polls",
		ErrorHandler: ErrorHandler(d.Log),
	})

	if d.AccessLog {
		app.Use(logger.New(logger.Config{Output: d.Log.Writer()}))
	}
	// Metrics wrap recover so recovered panics are counted as 500s
	app.Use(d.Metrics.Middleware())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	if d.Gatherer != nil {
		app.Get("/metrics", metrics.Handler(d.Gatherer))
	}

	// Fixed paths first so they are not taken for question ids
	app.Get("/", IndexHandler(d.Questions, d.LatestLimit, d.Log))
	app.Get("/published_questions/", PublishedQuestionsHandler(d.Questions, d.Log))
	app.Get("/add_question/", AddQuestionHandler(d))
	app.Post("/add_question/", AddQuestionHandler(d))

	// Question routes
	app.Get("/:id<int>/", DetailHandler(d.Questions, d.Choices, d.Log))
	app.Get("/:id<int>/results/", ResultsHandler(d.Questions, d.Choices, d.Log))
	app.Post("/:id<int>/vote/", VoteHandler(d.Questions, d.Choices, d.Metrics, d.Log))

	return app
}
