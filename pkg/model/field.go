package model

// FieldID identifies a field within one collection. IDs are opaque and
// session-local; exports strip them.
type FieldID string

// Config is the type-specific half of a field definition. The set of
// implementations is closed: PlainConfig, NumberConfig, TextareaConfig,
// ChoiceConfig and DateConfig.
type Config interface {
	isConfig()
	clone() Config
}

// PlainConfig carries no extra attributes (text, email, file, switch).
type PlainConfig struct{}

// NumberConfig bounds number fields. Nil means unbounded.
type NumberConfig struct {
	MinValue *float64
	MaxValue *float64
}

// TextareaConfig sizes multi-line inputs.
type TextareaConfig struct {
	Rows int
}

// ChoiceConfig holds the ordered options of select, multi-select, radio and
// checkbox fields. Options may repeat and may be empty.
type ChoiceConfig struct {
	Options []string
}

// DateConfig holds the ISO bounds and presentation of a date field.
type DateConfig struct {
	MinDate      string
	MaxDate      string
	DateFormat   DateFormat
	Placeholder  string
	MinDateLabel string
	MaxDateLabel string
}

func (PlainConfig) isConfig()    {}
func (NumberConfig) isConfig()   {}
func (TextareaConfig) isConfig() {}
func (ChoiceConfig) isConfig()   {}
func (DateConfig) isConfig()     {}

func (c PlainConfig) clone() Config    { return c }
func (c TextareaConfig) clone() Config { return c }
func (c DateConfig) clone() Config     { return c }

func (c NumberConfig) clone() Config {
	return NumberConfig{MinValue: cloneFloat(c.MinValue), MaxValue: cloneFloat(c.MaxValue)}
}

func (c ChoiceConfig) clone() Config {
	return ChoiceConfig{Options: append([]string{}, c.Options...)}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// NewConfig returns the empty variant matching t.
func NewConfig(t FieldType) Config {
	switch {
	case t.HasOptions():
		return ChoiceConfig{Options: []string{}}
	case t == FieldTypeDate:
		return DateConfig{DateFormat: DateFormatISO}
	case t == FieldTypeNumber:
		return NumberConfig{}
	case t == FieldTypeTextarea:
		return TextareaConfig{}
	}
	return PlainConfig{}
}

// Field is a single question in an offboarding form.
type Field struct {
	ID           FieldID
	Type         FieldType
	Name         string
	DisplayName  string
	Description  string
	Question     string
	DefaultValue Value
	IsMandatory  bool
	IsEnabled    bool
	Visibility   Visibility
	ErrorMessage string
	Config       Config
}

// New builds a field of type t with the type-independent defaults applied
// and an empty config variant.
func New(t FieldType) Field {
	return Field{
		Type:         t,
		DefaultValue: ZeroValueFor(t),
		IsEnabled:    true,
		Visibility:   VisibilityShow,
		Config:       NewConfig(t),
	}
}

// Clone returns a deep copy so callers never share option slices with the
// store.
func (f Field) Clone() Field {
	out := f
	out.DefaultValue = f.DefaultValue.clone()
	if f.Config != nil {
		out.Config = f.Config.clone()
	}
	return out
}

// Options returns the field options, or nil for types without options.
func (f Field) Options() []string {
	if cfg, ok := f.Config.(ChoiceConfig); ok {
		return append([]string{}, cfg.Options...)
	}
	return nil
}

// Date returns the date variant when the field is a date.
func (f Field) Date() (DateConfig, bool) {
	cfg, ok := f.Config.(DateConfig)
	return cfg, ok
}

// Number returns the number variant when the field is a number.
func (f Field) Number() (NumberConfig, bool) {
	cfg, ok := f.Config.(NumberConfig)
	return cfg, ok
}

// Textarea returns the textarea variant when the field is a textarea.
func (f Field) Textarea() (TextareaConfig, bool) {
	cfg, ok := f.Config.(TextareaConfig)
	return cfg, ok
}

// Label is the text shown above the control: the question for checkbox
// fields, the display name otherwise.
func (f Field) Label() string {
	if f.Type == FieldTypeCheckbox {
		return f.Question
	}
	return f.DisplayName
}

const (
	// RequiredMessage is the generic mandatory-field error.
	RequiredMessage = "This field is required"
	// DateRequiredMessage prefixes the date-specific mandatory error.
	DateRequiredMessage = "Please select a valid date"
)

// DefaultErrorMessage returns the message auto-populated when a field first
// becomes mandatory.
func DefaultErrorMessage(f Field) string {
	if cfg, ok := f.Date(); ok {
		if cfg.MinDate != "" || cfg.MaxDate != "" {
			return DateRequiredMessage + " within the allowed range"
		}
		return DateRequiredMessage
	}
	return RequiredMessage
}
