package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/polls/internal/model"
	"github.com/jjenkins/polls/internal/store"
	"github.com/jjenkins/polls/internal/templates"
	"github.com/sirupsen/logrus"
)

func DetailHandler(questionStore *store.QuestionStore, choiceStore *store.ChoiceStore, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		question, err := lookupQuestion(c, questionStore, time.Now())
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"question_id": c.Params("id")}, "Error loading question")
		}
		if question == nil {
			return fiber.ErrNotFound
		}

		choices, err := choiceStore.ListForQuestion(c.UserContext(), question.ID)
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"question_id": question.ID}, "Error loading choices")
		}

		return render(c, templates.Detail(question, choices, ""), fiber.StatusOK)
	}
}

func ResultsHandler(questionStore *store.QuestionStore, choiceStore *store.ChoiceStore, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		question, err := lookupQuestion(c, questionStore, time.Now())
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"question_id": c.Params("id")}, "Error loading question")
		}
		if question == nil {
			return fiber.ErrNotFound
		}

		choices, err := choiceStore.ListForQuestion(c.UserContext(), question.ID)
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"question_id": question.ID}, "Error loading choices")
		}

		return render(c, templates.Results(question, model.WithShares(choices)), fiber.StatusOK)
	}
}
