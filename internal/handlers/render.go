package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jjenkins/polls/internal/model"
	"github.com/jjenkins/polls/internal/store"
	"github.com/jjenkins/polls/internal/templates"
	"github.com/sirupsen/logrus"
)

func render(c *fiber.Ctx, page templ.Component, status int) error {
	handler := adaptor.HTTPHandler(templ.Handler(page, templ.WithStatus(status)))
	return handler(c)
}

// ErrorHandler renders the not-found page for 404s and a plain message otherwise
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		if code == fiber.StatusNotFound {
			return render(c, templates.NotFound(), fiber.StatusNotFound)
		}

		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("Request failed")
		}
		return c.Status(code).SendString(utils.StatusMessage(code))
	}
}

// lookupQuestion resolves the :id parameter to a displayable question. A nil
// question with a nil error means the id names nothing the public may see,
// including ids past the range of the integer id columns.
func lookupQuestion(c *fiber.Ctx, questionStore *store.QuestionStore, now time.Time) (*model.Question, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 || id > math.MaxInt32 {
		return nil, nil
	}
	return questionStore.GetDisplayable(c.UserContext(), id, now)
}

// parseRowID parses a positive id that fits the integer id columns
func parseRowID(s string) (int, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int(id), true
}

func serverError(c *fiber.Ctx, log *logrus.Logger, err error, fields logrus.Fields, msg string) error {
	log.WithFields(fields).WithError(err).Error(msg)
	return c.Status(fiber.StatusInternalServerError).SendString(msg)
}
