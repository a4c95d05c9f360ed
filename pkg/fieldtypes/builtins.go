package fieldtypes

import "github.com/goliatone/go-smartexit/pkg/model"

// Presentation defaults for newly added fields.
const (
	DefaultDatePlaceholder = "Select date..."
	DefaultMinDateLabel    = "Earliest allowed date"
	DefaultMaxDateLabel    = "Latest allowed date"
	DefaultTextareaRows    = 4
)

func builtinDescriptors() []Descriptor {
	return []Descriptor{
		{
			Type:        model.FieldTypeText,
			Label:       "Text Input",
			Icon:        "text",
			Description: "Single line text input field",
			Color:       "bg-blue-50 text-blue-600",
		},
		{
			Type:        model.FieldTypeNumber,
			Label:       "Number Input",
			Icon:        "hash",
			Description: "Numeric input field",
			Color:       "bg-slate-50 text-slate-600",
		},
		{
			Type:        model.FieldTypeEmail,
			Label:       "Email Input",
			Icon:        "mail",
			Description: "Email address input field",
			Color:       "text-pink-600",
		},
		{
			Type:        model.FieldTypeTextarea,
			Label:       "Text Area",
			Icon:        "align-left",
			Description: "Multi-line text input field",
			Color:       "bg-sky-50 text-sky-600",
			Defaults: model.Field{
				Config: model.TextareaConfig{Rows: DefaultTextareaRows},
			},
		},
		{
			Type:        model.FieldTypeSelect,
			Label:       "Select Dropdown",
			Icon:        "list",
			Description: "Single-select dropdown menu",
			Color:       "bg-purple-50 text-purple-600",
		},
		{
			Type:        model.FieldTypeMultiSelect,
			Label:       "Multi Select",
			Icon:        "check-square",
			Description: "Multi-select dropdown menu",
			Color:       "bg-violet-50 text-violet-600",
		},
		{
			Type:        model.FieldTypeRadio,
			Label:       "Radio Group",
			Icon:        "circle",
			Description: "Single-select radio buttons",
			Color:       "bg-orange-50 text-orange-600",
		},
		{
			Type:        model.FieldTypeCheckbox,
			Label:       "Checkbox",
			Icon:        "check",
			Description: "Multiple choice selection",
			Color:       "bg-green-50 text-green-600",
			Defaults: model.Field{
				Config: model.ChoiceConfig{Options: []string{"Yes", "No"}},
			},
		},
		{
			Type:        model.FieldTypeDate,
			Label:       "Date Picker",
			Icon:        "calendar",
			Description: "Date selection field",
			Color:       "text-cyan-600",
			Defaults: model.Field{
				Config: model.DateConfig{
					DateFormat:   model.DateFormatISO,
					Placeholder:  DefaultDatePlaceholder,
					MinDateLabel: DefaultMinDateLabel,
					MaxDateLabel: DefaultMaxDateLabel,
				},
			},
		},
		{
			Type:        model.FieldTypeFile,
			Label:       "File Upload",
			Icon:        "upload",
			Description: "File upload input field",
			Color:       "bg-amber-50 text-amber-600",
		},
		{
			Type:        model.FieldTypeSwitch,
			Label:       "Switch",
			Icon:        "toggle-left",
			Description: "Toggle between two states",
			Color:       "bg-indigo-50 text-indigo-600",
		},
	}
}
