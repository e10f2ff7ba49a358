package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
questions:
  - question_text: "What's new?"
    pub_date: "2024-01-02 10:00:00"
    choices: ["Not much", "The sky"]
  - question_text: ""
    pub_date: "2024-01-02"
    choices: ["Orphan"]
  - question_text: "Coming soon?"
    pub_date: "2099-01-01"
    choices: ["Yes"]
`

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestParseFixtures(t *testing.T) {
	file, err := ParseFixtures(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	require.Len(t, file.Questions, 3)
	assert.Equal(t, "What's new?", file.Questions[0].QuestionText)
	assert.Equal(t, []string{"Not much", "The sky"}, file.Questions[0].Choices)

	_, err = ParseFixtures(strings.NewReader("questions:\n  - unknown_field: 1\n"))
	assert.Error(t, err)

	empty, err := ParseFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Questions)
}

func TestImport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO questions`).
		WithArgs("What's new?", time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO choices`).WithArgs(1, "Not much").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO choices`).WithArgs(1, "The sky").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO questions`).
		WithArgs("Coming soon?", sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	file, err := ParseFixtures(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	importer := NewImporter(store.NewQuestionStore(db), forms.NewValidator(), time.UTC, quietLogger())
	stats, err := importer.Import(context.Background(), file)

	require.NoError(t, err)
	assert.Equal(t, &ImportStats{Total: 3, Imported: 1, Invalid: 1, Failed: 1}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportStopsOnCancelledContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	file := &FixtureFile{Questions: []Fixture{{QuestionText: "Q?", PubDate: "2024-01-01", Choices: []string{"A"}}}}
	importer := NewImporter(store.NewQuestionStore(db), forms.NewValidator(), time.UTC, quietLogger())
	stats, err := importer.Import(ctx, file)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Imported)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFixtureValuesTooManyChoices(t *testing.T) {
	choices := make([]string, forms.MaxChoices+1)
	for i := range choices {
		choices[i] = "choice"
	}

	formset := forms.BindChoiceFormSet(fixtureValues(Fixture{Choices: choices}))
	assert.False(t, formset.Validate(forms.NewValidator()))
	assert.NotEmpty(t, formset.NonFormErrors)
}
