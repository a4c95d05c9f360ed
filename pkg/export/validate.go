package export

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// Issue is one finding of the deferred validation report. Index is the
// position in the collection, since exported fields carry no id.
type Issue struct {
	Index   int           `json:"index"`
	ID      model.FieldID `json:"id,omitempty"`
	Name    string        `json:"name,omitempty"`
	Key     model.Key     `json:"key"`
	Message string        `json:"message"`
}

func (i Issue) Error() string {
	subject := i.Name
	if subject == "" {
		subject = fmt.Sprintf("#%d", i.Index+1)
	}
	return fmt.Sprintf("field %s: %s: %s", subject, i.Key, i.Message)
}

// Validate reports problems the builder tolerates while editing but that
// make a form unusable. It never mutates fields.
func Validate(fields []model.Field) []Issue {
	var issues []Issue
	add := func(idx int, field model.Field, key model.Key, msg string) {
		issues = append(issues, Issue{Index: idx, ID: field.ID, Name: field.Name, Key: key, Message: msg})
	}

	seen := make(map[string]int, len(fields))
	for idx, field := range fields {
		if field.Name == "" {
			add(idx, field, model.KeyName, "name is required")
		} else if first, ok := seen[field.Name]; ok {
			add(idx, field, model.KeyName, fmt.Sprintf("name duplicates field #%d", first+1))
		} else {
			seen[field.Name] = idx
		}

		if field.Type.RequiresQuestion() && field.Question == "" {
			add(idx, field, model.KeyQuestion, "question is required")
		}
		if field.Type.HasOptions() && len(field.Options()) == 0 {
			add(idx, field, model.KeyOptions, "at least one option is required")
		}
		if field.IsMandatory && field.ErrorMessage == "" {
			add(idx, field, model.KeyErrorMessage, "mandatory field has no error message")
		}
		if date, ok := field.Date(); ok && date.MinDate != "" && date.MaxDate != "" && date.MinDate > date.MaxDate {
			add(idx, field, model.KeyMaxDate, "latest date is before earliest date")
		}
		if num, ok := field.Number(); ok && num.MinValue != nil && num.MaxValue != nil && *num.MinValue > *num.MaxValue {
			add(idx, field, model.KeyMaxValue, "maximum is below minimum")
		}
	}
	return issues
}

// Err combines issues into a single error, or nil when there are none.
func Err(issues []Issue) error {
	var err error
	for _, issue := range issues {
		err = multierr.Append(err, issue)
	}
	return err
}
