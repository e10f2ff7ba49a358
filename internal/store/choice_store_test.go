package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jjenkins/polls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const voteQueryPattern = `UPDATE choices\s+SET vote = vote \+ 1\s+WHERE id = \$1 AND question_id = \$2`

func TestListForQuestion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "question_id", "choice_text", "vote"}).
		AddRow(1, 4, "Yes", 3).
		AddRow(2, 4, "No", 0)
	mock.ExpectQuery(`SELECT id, question_id, choice_text, vote\s+FROM choices\s+WHERE question_id = \$1\s+ORDER BY id`).
		WithArgs(4).
		WillReturnRows(rows)

	choices, err := NewChoiceStore(db).ListForQuestion(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, []model.Choice{
		{ID: 1, QuestionID: 4, ChoiceText: "Yes", Votes: 3},
		{ID: 2, QuestionID: 4, ChoiceText: "No", Votes: 0},
	}, choices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVote(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		expectErr error
		anyErr    bool
	}{
		{
			name: "increments in a single relative update",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(voteQueryPattern).
					WithArgs(9, 4).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "choice of another question",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(voteQueryPattern).
					WithArgs(9, 4).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectErr: ErrChoiceNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(voteQueryPattern).
					WillReturnError(sql.ErrConnDone)
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			err = NewChoiceStore(db).Vote(context.Background(), 4, 9)

			switch {
			case tt.expectErr != nil:
				assert.ErrorIs(t, err, tt.expectErr)
			case tt.anyErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrChoiceNotFound)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS questions(.+)CREATE TABLE IF NOT EXISTS choices(.+)ON DELETE CASCADE`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
