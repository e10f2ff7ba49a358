package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jjenkins/polls/internal/store"
)

// StatsService calculates poll-wide totals
type StatsService struct {
	db            *sql.DB
	questionStore *store.QuestionStore
}

// NewStatsService creates a new StatsService
func NewStatsService(db *sql.DB, questionStore *store.QuestionStore) *StatsService {
	return &StatsService{db: db, questionStore: questionStore}
}

// PollStats represents calculated poll-wide totals
type PollStats struct {
	TotalQuestions       int
	PublishedQuestions   int
	DisplayableQuestions int
	TotalChoices         int
	TotalVotes           int
	TopQuestion          string
	TopQuestionVotes     int
}

// Calculate computes the totals as of now
func (s *StatsService) Calculate(ctx context.Context, now time.Time) (*PollStats, error) {
	stats := &PollStats{}

	questionQuery := `
		SELECT
			COUNT(*) AS total_questions,
			COUNT(*) FILTER (WHERE pub_date <= $1) AS published_questions
		FROM questions
	`
	err := s.db.QueryRowContext(ctx, questionQuery, now).Scan(
		&stats.TotalQuestions,
		&stats.PublishedQuestions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	stats.DisplayableQuestions, err = s.questionStore.CountDisplayable(ctx, now)
	if err != nil {
		return nil, err
	}

	choiceQuery := `
		SELECT
			COUNT(*) AS total_choices,
			COALESCE(SUM(vote), 0) AS total_votes
		FROM choices
	`
	err = s.db.QueryRowContext(ctx, choiceQuery).Scan(
		&stats.TotalChoices,
		&stats.TotalVotes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count choices: %w", err)
	}

	// Most voted question overall
	topQuery := `
		SELECT q.question_text, SUM(c.vote) AS votes
		FROM questions q
		JOIN choices c ON c.question_id = q.id
		GROUP BY q.id, q.question_text
		ORDER BY votes DESC, q.id
		LIMIT 1
	`
	err = s.db.QueryRowContext(ctx, topQuery).Scan(
		&stats.TopQuestion,
		&stats.TopQuestionVotes,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find top question: %w", err)
	}

	return stats, nil
}
