package forms

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ChoicePrefix prefixes every field of the choice formset
	ChoicePrefix = "form"
	// ExtraChoices is the number of blank choice slots offered
	ExtraChoices = 3
	// MaxChoices bounds the slots accepted in one submission
	MaxChoices = 10

	MsgManagementForm = "ManagementForm data is missing or has been tampered with."
)

// ChoiceForm is one choice slot of the formset
type ChoiceForm struct {
	Index      int    `form:"-"`
	ChoiceText string `form:"choice_text" validate:"max=200"`

	Errors map[string]string
}

// FieldName returns the submitted name of a slot field, e.g. form-0-choice_text
func (c *ChoiceForm) FieldName(field string) string {
	return fmt.Sprintf("%s-%d-%s", ChoicePrefix, c.Index, field)
}

// Blank reports whether the slot was left empty
func (c *ChoiceForm) Blank() bool {
	return c.ChoiceText == ""
}

// ChoiceFormSet is the bounded set of choice slots submitted with a question
type ChoiceFormSet struct {
	Forms         []*ChoiceForm
	NonFormErrors []string
}

// TotalFormsField is the management field carrying the number of slots
func TotalFormsField() string { return ChoicePrefix + "-TOTAL_FORMS" }

// InitialFormsField is the management field carrying the number of pre-existing slots
func InitialFormsField() string { return ChoicePrefix + "-INITIAL_FORMS" }

// NewChoiceFormSet returns ExtraChoices blank slots
func NewChoiceFormSet() *ChoiceFormSet {
	fs := &ChoiceFormSet{}
	for i := 0; i < ExtraChoices; i++ {
		fs.Forms = append(fs.Forms, &ChoiceForm{Index: i})
	}
	return fs
}

// BindChoiceFormSet reads choice slots from a submission. A missing
// TOTAL_FORMS field is treated as the default number of blank slots.
func BindChoiceFormSet(get Getter) *ChoiceFormSet {
	fs := &ChoiceFormSet{}

	total := ExtraChoices
	if raw := strings.TrimSpace(get(TotalFormsField())); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n < 0:
			fs.NonFormErrors = append(fs.NonFormErrors, MsgManagementForm)
			return fs
		case n > MaxChoices:
			fs.NonFormErrors = append(fs.NonFormErrors, fmt.Sprintf("Please submit at most %d forms.", MaxChoices))
			return fs
		}
		total = n
	}

	for i := 0; i < total; i++ {
		c := &ChoiceForm{Index: i}
		c.ChoiceText = strings.TrimSpace(get(c.FieldName("choice_text")))
		fs.Forms = append(fs.Forms, c)
	}
	return fs
}

// Validate checks every non-blank slot. Blank slots are skipped.
func (fs *ChoiceFormSet) Validate(v *Validator) bool {
	valid := len(fs.NonFormErrors) == 0
	for _, c := range fs.Forms {
		c.Errors = nil
		if c.Blank() {
			continue
		}
		if c.Errors = v.Fields(c); len(c.Errors) > 0 {
			valid = false
		}
	}
	return valid
}

// ChoiceTexts returns the non-blank submitted choices in slot order
func (fs *ChoiceFormSet) ChoiceTexts() []string {
	var texts []string
	for _, c := range fs.Forms {
		if !c.Blank() {
			texts = append(texts, c.ChoiceText)
		}
	}
	return texts
}

// ErrorCount is the number of slot and non-form errors
func (fs *ChoiceFormSet) ErrorCount() int {
	n := len(fs.NonFormErrors)
	for _, c := range fs.Forms {
		n += len(c.Errors)
	}
	return n
}
