package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jjenkins/polls/internal/model"
)

// QuestionStore handles database operations for questions
type QuestionStore struct {
	db *sql.DB
}

// NewQuestionStore creates a new QuestionStore
func NewQuestionStore(db *sql.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// ListLatest retrieves up to limit displayable questions, most recent first
func (s *QuestionStore) ListLatest(ctx context.Context, now time.Time, limit int) ([]model.Question, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid limit %d", limit)
	}
	return s.listDisplayable(ctx, now, uint(limit))
}

// ListDisplayable retrieves every displayable question, most recent first
func (s *QuestionStore) ListDisplayable(ctx context.Context, now time.Time) ([]model.Question, error) {
	return s.listDisplayable(ctx, now, 0)
}

func (s *QuestionStore) listDisplayable(ctx context.Context, now time.Time, limit uint) ([]model.Question, error) {
	ds := displayableQuestions(now).
		Order(QuestionsTablePubDateCol.Desc(), QuestionsTableIDCol.Desc())
	if limit > 0 {
		ds = ds.Limit(limit)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build question list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.PubDate); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetDisplayable retrieves a question by id if it is displayable at now.
// Returns nil without an error when the question does not exist, is not yet
// published, or has no choices.
func (s *QuestionStore) GetDisplayable(ctx context.Context, id int, now time.Time) (*model.Question, error) {
	query, args, err := displayableQuestions(now).
		Where(QuestionsTableIDCol.Eq(id)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build question query: %w", err)
	}

	var q model.Question
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&q.ID, &q.QuestionText, &q.PubDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	return &q, nil
}

// CreateWithChoices inserts a question and its choices in one transaction.
// On success q.ID is set and the created choices are returned.
func (s *QuestionStore) CreateWithChoices(ctx context.Context, q *model.Question, choiceTexts []string) ([]model.Choice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuestion := `
		INSERT INTO questions (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, insertQuestion, q.QuestionText, q.PubDate).Scan(&q.ID); err != nil {
		return nil, fmt.Errorf("failed to insert question: %w", err)
	}

	insertChoice := `
		INSERT INTO choices (question_id, choice_text, vote)
		VALUES ($1, $2, 0)
		RETURNING id
	`
	choices := make([]model.Choice, 0, len(choiceTexts))
	for _, text := range choiceTexts {
		c := model.Choice{QuestionID: q.ID, ChoiceText: text}
		if err := tx.QueryRowContext(ctx, insertChoice, q.ID, text).Scan(&c.ID); err != nil {
			return nil, fmt.Errorf("failed to insert choice for question %d: %w", q.ID, err)
		}
		choices = append(choices, c)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit question %d: %w", q.ID, err)
	}

	return choices, nil
}

// CountDisplayable counts the questions currently visible on the public pages
func (s *QuestionStore) CountDisplayable(ctx context.Context, now time.Time) (int, error) {
	query, args, err := dialect.From(QuestionsTable).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(displayable(now)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count displayable questions: %w", err)
	}
	return count, nil
}
