package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/templates"
	"github.com/sirupsen/logrus"
)

// AddQuestionHandler serves the question form on GET and creates the question
// with its choices on a valid POST. Nothing is written unless the question
// form and every choice slot validate.
func AddQuestionHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			page := templates.AddQuestion(forms.NewQuestionForm(d.Location), forms.NewChoiceFormSet())
			return render(c, page, fiber.StatusOK)
		}

		get := func(key string) string { return c.FormValue(key) }
		form := forms.BindQuestionForm(get, d.Location)
		formset := forms.BindChoiceFormSet(get)

		questionValid := form.Validate(d.Validator)
		choicesValid := formset.Validate(d.Validator)
		if !questionValid || !choicesValid {
			return render(c, templates.AddQuestion(form, formset), fiber.StatusOK)
		}

		question := form.Question()
		choices, err := d.Questions.CreateWithChoices(c.UserContext(), &question, formset.ChoiceTexts())
		if err != nil {
			return serverError(c, d.Log, err, nil, "Error saving question")
		}

		d.Metrics.QuestionsCreated.Inc()
		d.Log.WithFields(logrus.Fields{
			"question_id": question.ID,
			"choices":     len(choices),
		}).Info("Question created")

		return c.Redirect(templates.IndexURL(), fiber.StatusFound)
	}
}
