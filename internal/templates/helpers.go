//go:generate templ generate

package templates

import (
	"fmt"
	"sort"

	"github.com/jjenkins/polls/internal/forms"
)

// NoPollsMessage is shown instead of an empty question list
const NoPollsMessage = "No polls are available."

// NoChoiceSelected is the message shown when a vote names no valid choice
const NoChoiceSelected = "You didn't select a choice."

func choiceInputID(choiceID int) string {
	return fmt.Sprintf("choice%d", choiceID)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// choiceSlots falls back to the default blank slots for an unbound formset
func choiceSlots(formset *forms.ChoiceFormSet) []*forms.ChoiceForm {
	if len(formset.Forms) == 0 {
		return forms.NewChoiceFormSet().Forms
	}
	return formset.Forms
}

func nonEmpty(msgs []string) []string {
	var shown []string
	for _, m := range msgs {
		if m != "" {
			shown = append(shown, m)
		}
	}
	return shown
}

func sortedMessages(errs map[string]string) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, errs[k])
	}
	return msgs
}
