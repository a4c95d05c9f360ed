package preview

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-smartexit/pkg/fieldtypes"
	"github.com/goliatone/go-smartexit/pkg/model"
)

// Choice is one option of a checkbox group, radio group or dropdown.
type Choice struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked,omitempty"`
}

// Item is the read-only projection of one enabled field.
type Item struct {
	ID          model.FieldID   `json:"id"`
	InputID     string          `json:"inputId"`
	Name        string          `json:"name"`
	Type        model.FieldType `json:"type"`
	Widget      string          `json:"widget"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
	Required    bool            `json:"required"`
	// Dimmed marks fields with visibility Hide. They stay in the preview so
	// the operator can audit them.
	Dimmed  bool     `json:"dimmed"`
	Choices []Choice `json:"choices,omitempty"`
	// Group is the exclusive-choice group shared by radio buttons.
	Group        string   `json:"group,omitempty"`
	Rows         int      `json:"rows,omitempty"`
	Value        string   `json:"value,omitempty"`
	MinDate      string   `json:"minDate,omitempty"`
	MaxDate      string   `json:"maxDate,omitempty"`
	MinDateLabel string   `json:"minDateLabel,omitempty"`
	MaxDateLabel string   `json:"maxDateLabel,omitempty"`
	DateFormat   string   `json:"dateFormat,omitempty"`
	MinValue     *float64 `json:"minValue,omitempty"`
	MaxValue     *float64 `json:"maxValue,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// View is the full preview: enabled fields in collection order plus the
// header counts.
type View struct {
	Items []Item `json:"items"`
	Stats Stats  `json:"stats"`
}

type config struct {
	registry *fieldtypes.Registry
	values   map[model.FieldID]string
}

// Option customises Build.
type Option func(*config)

// WithRegistry resolves widgets through reg instead of the default registry.
func WithRegistry(reg *fieldtypes.Registry) Option {
	return func(c *config) {
		if reg != nil {
			c.registry = reg
		}
	}
}

// WithValues simulates end-user input. Values override field defaults and
// feed date validation.
func WithValues(values map[model.FieldID]string) Option {
	return func(c *config) {
		c.values = values
	}
}

// Build projects fields into a preview. It is a pure function of its inputs
// and is meant to be called again after every mutation; nothing is cached.
func Build(fields []model.Field, opts ...Option) View {
	cfg := config{registry: fieldtypes.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	enabled := Enabled(fields)
	items := make([]Item, 0, len(enabled))
	for _, field := range enabled {
		items = append(items, buildItem(field, cfg))
	}
	return View{Items: items, Stats: Counts(fields)}
}

func buildItem(field model.Field, cfg config) Item {
	inputID := field.Name
	if inputID == "" {
		inputID = "field-" + string(field.ID)
	}
	widget, _ := cfg.registry.Widget(field)

	item := Item{
		ID:          field.ID,
		InputID:     inputID,
		Name:        field.Name,
		Type:        field.Type,
		Widget:      widget,
		Label:       field.Label(),
		Description: field.Description,
		Placeholder: placeholder(field),
		Required:    field.IsMandatory,
		Dimmed:      field.Visibility == model.VisibilityHide,
		Value:       field.DefaultValue.String(),
	}
	if v, ok := cfg.values[field.ID]; ok {
		item.Value = v
	}

	if field.Type.HasOptions() {
		item.Choices = choices(inputID, field)
		if field.Type == model.FieldTypeRadio {
			item.Group = inputID
		}
	}
	if area, ok := field.Textarea(); ok {
		item.Rows = area.Rows
	}
	if num, ok := field.Number(); ok {
		item.MinValue = num.MinValue
		item.MaxValue = num.MaxValue
	}
	if date, ok := field.Date(); ok {
		item.MinDate = date.MinDate
		item.MaxDate = date.MaxDate
		item.MinDateLabel = date.MinDateLabel
		item.MaxDateLabel = date.MaxDateLabel
		item.DateFormat = string(date.DateFormat)
		item.Error = ValidateDate(field, item.Value)
	}
	return item
}

func choices(inputID string, field model.Field) []Choice {
	selected := map[string]bool{}
	for _, v := range field.DefaultValue.List() {
		selected[v] = true
	}
	options := field.Options()
	out := make([]Choice, len(options))
	for i, option := range options {
		out[i] = Choice{
			ID:      fmt.Sprintf("%s-%d", inputID, i),
			Label:   option,
			Checked: selected[option],
		}
	}
	return out
}

func placeholder(field model.Field) string {
	name := strings.ToLower(field.DisplayName)
	switch field.Type {
	case model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeEmail, model.FieldTypeNumber:
		return "Enter " + name
	case model.FieldTypeSelect, model.FieldTypeMultiSelect:
		return "Select " + name
	case model.FieldTypeDate:
		date, _ := field.Date()
		return date.Placeholder
	}
	return ""
}
