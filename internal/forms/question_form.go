package forms

import (
	"strings"
	"time"

	"github.com/jjenkins/polls/internal/model"
)

// Getter returns the submitted value of a form field, or "" when absent
type Getter func(key string) string

// pubDateLayouts are the accepted pub_date formats, tried in order
var pubDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// QuestionForm holds a submitted question and its field errors
type QuestionForm struct {
	QuestionText string `form:"question_text" validate:"required,max=200"`
	PubDate      string `form:"pub_date" validate:"required"`

	Errors map[string]string

	pubDate time.Time
	loc     *time.Location
}

// NewQuestionForm returns an empty, unbound form
func NewQuestionForm(loc *time.Location) *QuestionForm {
	if loc == nil {
		loc = time.UTC
	}
	return &QuestionForm{loc: loc}
}

// BindQuestionForm reads question fields from a submission
func BindQuestionForm(get Getter, loc *time.Location) *QuestionForm {
	f := NewQuestionForm(loc)
	f.QuestionText = strings.TrimSpace(get("question_text"))
	f.PubDate = strings.TrimSpace(get("pub_date"))
	return f
}

// Validate checks the form, filling Errors. Returns true when valid.
func (f *QuestionForm) Validate(v *Validator) bool {
	f.Errors = v.Fields(f)
	if _, bad := f.Errors["pub_date"]; !bad && f.PubDate != "" {
		t, ok := parsePubDate(f.PubDate, f.loc)
		if !ok {
			if f.Errors == nil {
				f.Errors = make(map[string]string)
			}
			f.Errors["pub_date"] = MsgInvalidDate
		}
		f.pubDate = t
	}
	return len(f.Errors) == 0
}

// Question converts a validated form into a model.Question
func (f *QuestionForm) Question() model.Question {
	return model.Question{QuestionText: f.QuestionText, PubDate: f.pubDate}
}

func parsePubDate(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
