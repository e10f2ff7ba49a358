package store

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	QuestionsTableName = "questions"
	ChoicesTableName   = "choices"
)

var (
	dialect = goqu.Dialect("postgres")

	QuestionsTable           = goqu.T(QuestionsTableName)
	QuestionsTableIDCol      = QuestionsTable.Col("id")
	QuestionsTableTextCol    = QuestionsTable.Col("question_text")
	QuestionsTablePubDateCol = QuestionsTable.Col("pub_date")

	ChoicesTable              = goqu.T(ChoicesTableName)
	ChoicesTableQuestionIDCol = ChoicesTable.Col("question_id")
)

// displayable is the one definition of which questions the public pages may
// show: published at or before now, with at least one choice.
func displayable(now time.Time) exp.Expression {
	hasChoice := dialect.From(ChoicesTable).
		Select(goqu.L("1")).
		Where(ChoicesTableQuestionIDCol.Eq(QuestionsTableIDCol))

	return goqu.And(
		QuestionsTablePubDateCol.Lte(now),
		goqu.L("EXISTS ?", hasChoice),
	)
}

// displayableQuestions selects question columns restricted to the displayable set
func displayableQuestions(now time.Time) *goqu.SelectDataset {
	return dialect.From(QuestionsTable).
		Prepared(true).
		Select(QuestionsTableIDCol, QuestionsTableTextCol, QuestionsTablePubDateCol).
		Where(displayable(now))
}
