package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jjenkins/polls/internal/model"
)

// ErrChoiceNotFound is returned when a choice id does not belong to the question
var ErrChoiceNotFound = errors.New("choice not found for question")

// ChoiceStore handles database operations for choices
type ChoiceStore struct {
	db *sql.DB
}

// NewChoiceStore creates a new ChoiceStore
func NewChoiceStore(db *sql.DB) *ChoiceStore {
	return &ChoiceStore{db: db}
}

// ListForQuestion retrieves the choices of a question in creation order
func (s *ChoiceStore) ListForQuestion(ctx context.Context, questionID int) ([]model.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, vote
		FROM choices
		WHERE question_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choices for question %d: %w", questionID, err)
	}
	defer rows.Close()

	var choices []model.Choice
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}

	return choices, rows.Err()
}

// Vote increments a choice's counter by one. The increment is evaluated by the
// database so concurrent votes are never lost. Returns ErrChoiceNotFound when
// choiceID is not a choice of questionID.
func (s *ChoiceStore) Vote(ctx context.Context, questionID, choiceID int) error {
	query := `
		UPDATE choices
		SET vote = vote + 1
		WHERE id = $1 AND question_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("failed to record vote for choice %d: %w", choiceID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read vote result for choice %d: %w", choiceID, err)
	}
	if n == 0 {
		return ErrChoiceNotFound
	}

	return nil
}
