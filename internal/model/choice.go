package model

// Choice represents one answer option of a question and its vote tally
type Choice struct {
	ID         int
	QuestionID int
	ChoiceText string
	Votes      int
}

// ChoiceWithShare wraps a Choice with its fraction of the question's total votes
type ChoiceWithShare struct {
	Choice
	Share float64 // 0.0 when the question has no votes yet
}

// WithShares computes each choice's share of the total vote count
func WithShares(choices []Choice) []ChoiceWithShare {
	total := 0
	for _, c := range choices {
		total += c.Votes
	}

	out := make([]ChoiceWithShare, len(choices))
	for i, c := range choices {
		out[i].Choice = c
		if total > 0 {
			out[i].Share = float64(c.Votes) / float64(total)
		}
	}
	return out
}
