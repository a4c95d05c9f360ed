package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// ErrFieldNotFound is returned by Editor reads when the field was removed
// from the collection after the editor was opened.
var ErrFieldNotFound = errors.New("editor: field not found")

// Source is the slice of the collection store the editor depends on.
type Source interface {
	Get(id model.FieldID) (model.Field, bool)
	Update(id model.FieldID, key model.Key, value any) error
	SetDateRange(id model.FieldID, minDate, maxDate string) error
}

// Editor edits one field. It keeps no copy of the field; every read goes to
// the Source and every write is a single Source call.
type Editor struct {
	src Source
	id  model.FieldID
}

// New returns an editor for the field identified by id.
func New(src Source, id model.FieldID) *Editor {
	return &Editor{src: src, id: id}
}

// ID returns the edited field id.
func (e *Editor) ID() model.FieldID { return e.id }

// Field returns the current state of the edited field.
func (e *Editor) Field() (model.Field, error) {
	field, ok := e.src.Get(e.id)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %s", ErrFieldNotFound, e.id)
	}
	return field, nil
}

// Controls lists the controls for the current state of the field.
func (e *Editor) Controls() ([]Control, error) {
	field, err := e.Field()
	if err != nil {
		return nil, err
	}
	return Controls(field), nil
}

// Set forwards one attribute change to the store.
func (e *Editor) Set(key model.Key, value any) error {
	return e.src.Update(e.id, key, value)
}

// SetDisplayName updates the display name and, when the field has no
// machine name yet, derives one from it.
func (e *Editor) SetDisplayName(displayName string) error {
	if err := e.Set(model.KeyDisplayName, displayName); err != nil {
		return err
	}
	field, ok := e.src.Get(e.id)
	if !ok || field.Name != "" {
		return nil
	}
	if name := SuggestName(displayName); name != "" {
		return e.Set(model.KeyName, name)
	}
	return nil
}

// SetOptions replaces the option list from free-form tag input.
func (e *Editor) SetOptions(input string) error {
	return e.Set(model.KeyOptions, ParseTags(input))
}

// SetMandatory toggles the required flag. Turning it on fills in the
// default error message when none is set.
func (e *Editor) SetMandatory(required bool) error {
	return e.Set(model.KeyIsMandatory, required)
}

// SetVisibility switches between Show and Hide.
func (e *Editor) SetVisibility(v model.Visibility) error {
	return e.Set(model.KeyVisibility, v)
}

// SetDateRange replaces both date bounds at once. A rejected range leaves
// the current bounds in place.
func (e *Editor) SetDateRange(minDate, maxDate string) error {
	return e.src.SetDateRange(e.id, minDate, maxDate)
}

// SetDateBound changes one bound of the range and keeps the other.
func (e *Editor) SetDateBound(key model.Key, value string) error {
	field, err := e.Field()
	if err != nil {
		return err
	}
	cfg, _ := field.Date()
	switch key {
	case model.KeyMinDate:
		return e.SetDateRange(value, cfg.MaxDate)
	case model.KeyMaxDate:
		return e.SetDateRange(cfg.MinDate, value)
	}
	return e.Set(key, value)
}

// ParseTags splits comma or newline separated input into options. Entries
// are trimmed, empty entries dropped and duplicates kept.
func ParseTags(input string) []string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SuggestName derives a snake_case machine name from a display name.
func SuggestName(displayName string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, displayName)
	return strcase.ToSnake(strings.Join(strings.Fields(cleaned), " "))
}
