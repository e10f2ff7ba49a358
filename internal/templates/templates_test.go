package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/jjenkins/polls/internal/forms"
	"github.com/jjenkins/polls/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestIndexEmpty(t *testing.T) {
	html := render(t, Index(nil, time.Now()))

	assert.Contains(t, html, NoPollsMessage)
	assert.NotContains(t, html, `<ul class="questions">`)
}

func TestIndexListsQuestions(t *testing.T) {
	now := time.Now()
	html := render(t, Index([]model.Question{
		{ID: 2, QuestionText: "Fresh <question>?", PubDate: now.Add(-time.Hour)},
		{ID: 1, QuestionText: "Old question?", PubDate: now.Add(-72 * time.Hour)},
	}, now))

	assert.Contains(t, html, `<a href="/2/">Fresh &lt;question&gt;?</a>`)
	assert.Contains(t, html, `<a href="/1/">Old question?</a>`)
	assert.Equal(t, 1, strings.Count(html, `class="badge"`))
	assert.Less(t, strings.Index(html, "/2/"), strings.Index(html, "/1/"))
	assert.NotContains(t, html, NoPollsMessage)
}

func TestDetail(t *testing.T) {
	q := &model.Question{ID: 5, QuestionText: "Tea or coffee?"}
	choices := []model.Choice{{ID: 8, QuestionID: 5, ChoiceText: "Tea"}, {ID: 9, QuestionID: 5, ChoiceText: "Coffee"}}

	html := render(t, Detail(q, choices, ""))
	assert.Contains(t, html, `action="/5/vote/"`)
	assert.Contains(t, html, `name="choice" id="choice8" value="8"`)
	assert.Contains(t, html, "Coffee")
	assert.NotContains(t, html, `class="error"`)

	html = render(t, Detail(q, choices, NoChoiceSelected))
	assert.Contains(t, html, templ.EscapeString(NoChoiceSelected))
}

func TestResults(t *testing.T) {
	q := &model.Question{ID: 5, QuestionText: "Tea or coffee?"}
	html := render(t, Results(q, model.WithShares([]model.Choice{
		{ID: 8, ChoiceText: "Tea", Votes: 1},
		{ID: 9, ChoiceText: "Coffee", Votes: 3},
	})))

	assert.Contains(t, html, "Tea -- 1 vote ")
	assert.Contains(t, html, "Coffee -- 3 votes")
	assert.Contains(t, html, `<a href="/5/">Vote again?</a>`)
}

func TestAddQuestionShowsErrors(t *testing.T) {
	v := forms.NewValidator()
	form := forms.BindQuestionForm(func(string) string { return "" }, time.UTC)
	form.Validate(v)
	formset := forms.NewChoiceFormSet()

	html := render(t, AddQuestion(form, formset))

	assert.Equal(t, 2, strings.Count(html, templ.EscapeString(forms.MsgRequired)))
	assert.Contains(t, html, `name="form-TOTAL_FORMS" value="3"`)
	assert.Contains(t, html, `name="form-2-choice_text"`)
}

func TestNotFound(t *testing.T) {
	assert.Contains(t, render(t, NotFound()), "<h1>Not found</h1>")
}

func TestAddQuestionEscapesSubmittedValues(t *testing.T) {
	get := func(key string) string {
		switch key {
		case "question_text":
			return `"><script>alert(1)</script>`
		case "form-TOTAL_FORMS":
			return "1"
		case "form-0-choice_text":
			return `a" onfocus="x`
		}
		return ""
	}
	form := forms.BindQuestionForm(get, time.UTC)
	formset := forms.BindChoiceFormSet(get)

	html := render(t, AddQuestion(form, formset))

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, `value="&#34;&gt;&lt;script&gt;alert(1)&lt;/script&gt;"`)
	assert.Contains(t, html, `value="a&#34; onfocus=&#34;x"`)
	assert.Contains(t, html, `name="form-TOTAL_FORMS" value="1"`)
}

func TestLayoutNavigation(t *testing.T) {
	html := render(t, NotFound())

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, `<title>Not found | Polls</title>`)
	assert.Contains(t, html, `<a href="/">Polls</a> <a href="/published_questions/">All published</a>`)
}
