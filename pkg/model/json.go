package model

import (
	"encoding/json"
	"fmt"
)

// wireField is the flat object stored in form-config.json. Pointer members
// let variant keys be emitted (even when empty) for their own type and
// omitted for every other type.
type wireField struct {
	ID           FieldID     `json:"id,omitempty"`
	Type         FieldType   `json:"type"`
	Name         string      `json:"name"`
	DisplayName  string      `json:"displayName"`
	Question     string      `json:"question"`
	Options      *[]string   `json:"options,omitempty"`
	DefaultValue Value       `json:"defaultValue"`
	IsMandatory  bool        `json:"isMandatory"`
	IsEnabled    bool        `json:"isEnabled"`
	Visibility   Visibility  `json:"visibility"`
	ErrorMessage string      `json:"errorMessage"`
	Description  string      `json:"description"`
	MinDate      *string     `json:"minDate,omitempty"`
	MaxDate      *string     `json:"maxDate,omitempty"`
	DateFormat   *DateFormat `json:"dateFormat,omitempty"`
	Placeholder  *string     `json:"placeholder,omitempty"`
	MinDateLabel *string     `json:"minDateLabel,omitempty"`
	MaxDateLabel *string     `json:"maxDateLabel,omitempty"`
	MinValue     *float64    `json:"minValue,omitempty"`
	MaxValue     *float64    `json:"maxValue,omitempty"`
	Rows         *int        `json:"rows,omitempty"`
}

// MarshalJSON flattens the base record and the config variant into one
// object.
func (f Field) MarshalJSON() ([]byte, error) {
	w := wireField{
		ID:           f.ID,
		Type:         f.Type,
		Name:         f.Name,
		DisplayName:  f.DisplayName,
		Question:     f.Question,
		DefaultValue: f.DefaultValue,
		IsMandatory:  f.IsMandatory,
		IsEnabled:    f.IsEnabled,
		Visibility:   f.Visibility,
		ErrorMessage: f.ErrorMessage,
		Description:  f.Description,
	}
	if w.Visibility == "" {
		w.Visibility = VisibilityShow
	}

	switch cfg := f.Config.(type) {
	case ChoiceConfig:
		options := append([]string{}, cfg.Options...)
		w.Options = &options
	case DateConfig:
		format := cfg.DateFormat
		if format == "" {
			format = DateFormatISO
		}
		w.MinDate = &cfg.MinDate
		w.MaxDate = &cfg.MaxDate
		w.DateFormat = &format
		w.Placeholder = &cfg.Placeholder
		w.MinDateLabel = &cfg.MinDateLabel
		w.MaxDateLabel = &cfg.MaxDateLabel
	case NumberConfig:
		w.MinValue = cfg.MinValue
		w.MaxValue = cfg.MaxValue
	case TextareaConfig:
		rows := cfg.Rows
		w.Rows = &rows
	}
	return json.Marshal(w)
}

// UnmarshalJSON rebuilds the config variant from the type tag. Keys that
// belong to a different variant are ignored.
func (f *Field) UnmarshalJSON(data []byte) error {
	var w wireField
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	fieldType, ok := ParseFieldType(string(w.Type))
	if !ok {
		return fmt.Errorf("model: unknown field type %q", w.Type)
	}

	visibility := VisibilityShow
	if w.Visibility != "" {
		parsed, ok := ParseVisibility(string(w.Visibility))
		if !ok {
			return fmt.Errorf("model: field %q: unknown visibility %q", w.Name, w.Visibility)
		}
		visibility = parsed
	}

	out := Field{
		ID:           w.ID,
		Type:         fieldType,
		Name:         w.Name,
		DisplayName:  w.DisplayName,
		Description:  w.Description,
		Question:     w.Question,
		DefaultValue: w.DefaultValue.Coerce(fieldType),
		IsMandatory:  w.IsMandatory,
		IsEnabled:    w.IsEnabled,
		Visibility:   visibility,
		ErrorMessage: w.ErrorMessage,
	}

	switch cfg := NewConfig(fieldType).(type) {
	case ChoiceConfig:
		if w.Options != nil {
			cfg.Options = append(cfg.Options, (*w.Options)...)
		}
		out.Config = cfg
	case DateConfig:
		cfg.MinDate = deref(w.MinDate)
		cfg.MaxDate = deref(w.MaxDate)
		cfg.Placeholder = deref(w.Placeholder)
		cfg.MinDateLabel = deref(w.MinDateLabel)
		cfg.MaxDateLabel = deref(w.MaxDateLabel)
		if w.DateFormat != nil && *w.DateFormat != "" {
			format, ok := ParseDateFormat(string(*w.DateFormat))
			if !ok {
				return fmt.Errorf("model: field %q: unknown date format %q", w.Name, *w.DateFormat)
			}
			cfg.DateFormat = format
		}
		out.Config = cfg
	case NumberConfig:
		cfg.MinValue = w.MinValue
		cfg.MaxValue = w.MaxValue
		out.Config = cfg
	case TextareaConfig:
		if w.Rows != nil {
			cfg.Rows = *w.Rows
		}
		out.Config = cfg
	default:
		out.Config = cfg
	}

	*f = out
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
