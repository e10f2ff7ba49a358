package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/polls/internal/store"
	"github.com/jjenkins/polls/internal/templates"
	"github.com/sirupsen/logrus"
)

func IndexHandler(questionStore *store.QuestionStore, limit int, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()

		questions, err := questionStore.ListLatest(c.UserContext(), now, limit)
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"limit": limit}, "Error loading polls")
		}

		return render(c, templates.Index(questions, now), fiber.StatusOK)
	}
}

func PublishedQuestionsHandler(questionStore *store.QuestionStore, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()

		questions, err := questionStore.ListDisplayable(c.UserContext(), now)
		if err != nil {
			return serverError(c, log, err, nil, "Error loading polls")
		}

		return render(c, templates.PublishedQuestions(questions, now), fiber.StatusOK)
	}
}
