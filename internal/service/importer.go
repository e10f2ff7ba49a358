package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/store"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk form of a question and its choices
type Fixture struct {
	QuestionText string   `yaml:"question_text"`
	PubDate      string   `yaml:"pub_date"`
	Choices      []string `yaml:"choices"`
}

// FixtureFile is the top-level document read by the importer
type FixtureFile struct {
	Questions []Fixture `yaml:"questions"`
}

// ImportStats tracks import statistics
type ImportStats struct {
	Total    int
	Imported int
	Invalid  int
	Failed   int
}

// Importer loads question fixtures through the same validation as the add
// question form
type Importer struct {
	questionStore *store.QuestionStore
	validator     *forms.Validator
	location      *time.Location
	logger        *logrus.Logger
}

// NewImporter creates a new Importer
func NewImporter(questionStore *store.QuestionStore, validator *forms.Validator, loc *time.Location, logger *logrus.Logger) *Importer {
	return &Importer{
		questionStore: questionStore,
		validator:     validator,
		location:      loc,
		logger:        logger,
	}
}

// ParseFixtures decodes a YAML fixture document
func ParseFixtures(r io.Reader) (*FixtureFile, error) {
	var file FixtureFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &file, nil
}

// Import validates and stores every fixture. Each question is written in its
// own transaction; invalid fixtures are skipped and counted.
func (i *Importer) Import(ctx context.Context, file *FixtureFile) (*ImportStats, error) {
	stats := &ImportStats{Total: len(file.Questions)}

	for n, fx := range file.Questions {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		get := fixtureValues(fx)
		form := forms.BindQuestionForm(get, i.location)
		formset := forms.BindChoiceFormSet(get)

		questionValid := form.Validate(i.validator)
		choicesValid := formset.Validate(i.validator)
		if !questionValid || !choicesValid {
			i.logger.WithFields(logrus.Fields{
				"fixture":  n + 1,
				"question": fx.QuestionText,
				"errors":   describeErrors(form, formset),
			}).Warn("Skipping invalid fixture")
			stats.Invalid++
			continue
		}

		question := form.Question()
		choices, err := i.questionStore.CreateWithChoices(ctx, &question, formset.ChoiceTexts())
		if err != nil {
			i.logger.WithError(err).WithField("fixture", n+1).Error("Failed to import fixture")
			stats.Failed++
			continue
		}

		i.logger.WithFields(logrus.Fields{
			"question_id": question.ID,
			"choices":     len(choices),
		}).Info("Imported question")
		stats.Imported++
	}

	return stats, nil
}

// PrintSummary logs the import statistics
func (i *Importer) PrintSummary(stats *ImportStats) {
	i.logger.WithFields(logrus.Fields{
		"total":    stats.Total,
		"imported": stats.Imported,
		"invalid":  stats.Invalid,
		"failed":   stats.Failed,
	}).Info("Import summary")
}

// fixtureValues exposes a fixture with the field names of the add question form
func fixtureValues(fx Fixture) forms.Getter {
	values := map[string]string{
		"question_text":         fx.QuestionText,
		"pub_date":              fx.PubDate,
		forms.TotalFormsField(): strconv.Itoa(len(fx.Choices)),
	}
	for n, text := range fx.Choices {
		c := forms.ChoiceForm{Index: n}
		values[c.FieldName("choice_text")] = text
	}
	return func(key string) string { return values[key] }
}

func describeErrors(form *forms.QuestionForm, formset *forms.ChoiceFormSet) string {
	var parts []string
	for field, msg := range form.Errors {
		parts = append(parts, field+": "+msg)
	}
	parts = append(parts, formset.NonFormErrors...)
	for _, c := range formset.Forms {
		for _, msg := range c.Errors {
			parts = append(parts, fmt.Sprintf("choice %d: %s", c.Index+1, msg))
		}
	}
	return strings.Join(parts, "; ")
}
