package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jjenkins/polls/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCalculate(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(sqlmock.Sqlmock)
		expected    *PollStats
		expectError bool
	}{
		{
			name: "totals with a top question",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM questions`).
					WillReturnRows(sqlmock.NewRows([]string{"total_questions", "published_questions"}).AddRow(4, 3))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "questions"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
				mock.ExpectQuery(`FROM choices`).
					WillReturnRows(sqlmock.NewRows([]string{"total_choices", "total_votes"}).AddRow(7, 12))
				mock.ExpectQuery(`JOIN choices`).
					WillReturnRows(sqlmock.NewRows([]string{"question_text", "votes"}).AddRow("Tea or coffee?", 9))
			},
			expected: &PollStats{
				TotalQuestions:       4,
				PublishedQuestions:   3,
				DisplayableQuestions: 2,
				TotalChoices:         7,
				TotalVotes:           12,
				TopQuestion:          "Tea or coffee?",
				TopQuestionVotes:     9,
			},
		},
		{
			name: "empty database",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM questions`).
					WillReturnRows(sqlmock.NewRows([]string{"total_questions", "published_questions"}).AddRow(0, 0))
				mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "questions"`).
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
				mock.ExpectQuery(`FROM choices`).
					WillReturnRows(sqlmock.NewRows([]string{"total_choices", "total_votes"}).AddRow(0, 0))
				mock.ExpectQuery(`JOIN choices`).
					WillReturnError(sql.ErrNoRows)
			},
			expected: &PollStats{},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM questions`).WillReturnError(sql.ErrConnDone)
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)

			svc := NewStatsService(db, store.NewQuestionStore(db))
			stats, err := svc.Calculate(context.Background(), time.Now())

			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, stats)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
