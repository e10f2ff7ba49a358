package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MsgRequired    = "This field is required."
	MsgInvalidDate = "Enter a valid date/time."
)

// Validator wraps go-playground validator and turns its field errors into
// user-facing messages keyed by form field name
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their form tag
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Fields validates a struct and returns one message per invalid field
func (v *Validator) Fields(s interface{}) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"": err.Error()}
	}

	msgs := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := msgs[fe.Field()]; seen {
			continue
		}
		msgs[fe.Field()] = message(fe)
	}
	return msgs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		s, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(s))
	default:
		return fmt.Sprintf("Enter a valid value (%s).", fe.Tag())
	}
}
