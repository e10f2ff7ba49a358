package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/polls/internal/metrics"
	"github.com/jjenkins/polls/internal/model"
	"github.com/jjenkins/polls/internal/store"
	"github.com/jjenkins/polls/internal/templates"
	"github.com/sirupsen/logrus"
)

func VoteHandler(questionStore *store.QuestionStore, choiceStore *store.ChoiceStore, m *metrics.Metrics, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		question, err := lookupQuestion(c, questionStore, time.Now())
		if err != nil {
			return serverError(c, log, err, logrus.Fields{"question_id": c.Params("id")}, "Error loading question")
		}
		if question == nil {
			return fiber.ErrNotFound
		}

		choiceID, ok := parseRowID(c.FormValue("choice"))
		if !ok {
			return rerenderDetail(c, choiceStore, question, log)
		}

		err = choiceStore.Vote(ctx, question.ID, choiceID)
		if errors.Is(err, store.ErrChoiceNotFound) {
			return rerenderDetail(c, choiceStore, question, log)
		}
		if err != nil {
			return serverError(c, log, err, logrus.Fields{
				"question_id": question.ID,
				"choice_id":   choiceID,
			}, "Error recording vote")
		}

		m.VotesCast.Inc()
		log.WithFields(logrus.Fields{
			"question_id": question.ID,
			"choice_id":   choiceID,
		}).Debug("Vote recorded")

		return c.Redirect(templates.ResultsURL(question.ID), fiber.StatusFound)
	}
}

// rerenderDetail shows the voting form again with the missing-choice message
func rerenderDetail(c *fiber.Ctx, choiceStore *store.ChoiceStore, question *model.Question, log *logrus.Logger) error {
	choices, err := choiceStore.ListForQuestion(c.UserContext(), question.ID)
	if err != nil {
		return serverError(c, log, err, logrus.Fields{"question_id": question.ID}, "Error loading choices")
	}

	return render(c, templates.Detail(question, choices, templates.NoChoiceSelected), fiber.StatusOK)
}
