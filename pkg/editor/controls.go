package editor

import (
	"github.com/goliatone/go-smartexit/pkg/model"
)

// ControlKind names the input widget used to edit one attribute.
type ControlKind string

const (
	ControlText        ControlKind = "text"
	ControlTextArea    ControlKind = "textarea"
	ControlTags        ControlKind = "tags"
	ControlSelect      ControlKind = "select"
	ControlMultiSelect ControlKind = "multi-select"
	ControlDate        ControlKind = "date"
	ControlNumber      ControlKind = "number"
	ControlToggle      ControlKind = "toggle"
)

// Control describes one editable attribute of a field in display order.
type Control struct {
	Key         model.Key   `json:"key"`
	Kind        ControlKind `json:"kind"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required,omitempty"`
	Choices     []string    `json:"choices,omitempty"`
	// Min and Max bound date pickers. The min-date control is capped by the
	// current maxDate and the max-date control floored by the current minDate.
	Min   string `json:"min,omitempty"`
	Max   string `json:"max,omitempty"`
	Value any    `json:"value"`
}

// Controls lists the controls shown for field. The list depends only on the
// field's type and current attribute values.
func Controls(field model.Field) []Control {
	out := []Control{
		{Key: model.KeyName, Kind: ControlText, Label: "Field Name", Placeholder: "e.g., company_assets", Value: field.Name},
		{Key: model.KeyDisplayName, Kind: ControlText, Label: "Display Name", Placeholder: "e.g., Company Assets", Value: field.DisplayName},
		{Key: model.KeyDescription, Kind: ControlTextArea, Label: "Description", Placeholder: "Help text for this field", Value: field.Description},
		{
			Key:      model.KeyQuestion,
			Kind:     ControlText,
			Label:    "Question",
			Required: field.Type.RequiresQuestion(),
			Value:    field.Question,
		},
	}

	if field.Type.HasOptions() {
		placeholder := "Type and press enter to add options"
		if field.Type == model.FieldTypeCheckbox {
			placeholder = "Add options like Yes, No, N/A"
		}
		out = append(out, Control{
			Key:         model.KeyOptions,
			Kind:        ControlTags,
			Label:       "Options",
			Placeholder: placeholder,
			Required:    true,
			Value:       field.Options(),
		})
	}

	if cfg, ok := field.Date(); ok {
		out = append(out,
			Control{Key: model.KeyDateFormat, Kind: ControlSelect, Label: "Date Format", Choices: dateFormatChoices(), Value: string(cfg.DateFormat)},
			Control{Key: model.KeyPlaceholder, Kind: ControlText, Label: "Placeholder", Value: cfg.Placeholder},
			Control{Key: model.KeyMinDate, Kind: ControlDate, Label: "Min Date", Max: cfg.MaxDate, Value: cfg.MinDate},
			Control{Key: model.KeyMinDateLabel, Kind: ControlText, Label: "Min Date Label", Placeholder: "Label for minimum date", Value: cfg.MinDateLabel},
			Control{Key: model.KeyMaxDate, Kind: ControlDate, Label: "Max Date", Min: cfg.MinDate, Value: cfg.MaxDate},
			Control{Key: model.KeyMaxDateLabel, Kind: ControlText, Label: "Max Date Label", Placeholder: "Label for maximum date", Value: cfg.MaxDateLabel},
		)
	}

	if cfg, ok := field.Number(); ok {
		out = append(out,
			Control{Key: model.KeyMinValue, Kind: ControlNumber, Label: "Min Value", Value: cfg.MinValue},
			Control{Key: model.KeyMaxValue, Kind: ControlNumber, Label: "Max Value", Value: cfg.MaxValue},
		)
	}

	if cfg, ok := field.Textarea(); ok {
		out = append(out, Control{Key: model.KeyRows, Kind: ControlNumber, Label: "Rows", Value: cfg.Rows})
	}

	out = append(out, defaultValueControl(field))
	out = append(out, Control{Key: model.KeyIsMandatory, Kind: ControlToggle, Label: "Required Field", Value: field.IsMandatory})
	if field.IsMandatory {
		out = append(out, Control{Key: model.KeyErrorMessage, Kind: ControlText, Label: "Error Message", Value: field.ErrorMessage})
	}
	out = append(out,
		Control{
			Key:     model.KeyVisibility,
			Kind:    ControlSelect,
			Label:   "Visibility",
			Choices: []string{string(model.VisibilityShow), string(model.VisibilityHide)},
			Value:   string(field.Visibility),
		},
		Control{Key: model.KeyIsEnabled, Kind: ControlToggle, Label: "Enabled", Value: field.IsEnabled},
	)
	return out
}

func defaultValueControl(field model.Field) Control {
	ctrl := Control{
		Key:         model.KeyDefaultValue,
		Kind:        ControlText,
		Label:       "Default Value",
		Placeholder: "Default value for this field",
		Value:       field.DefaultValue.String(),
	}
	switch {
	case field.Type.MultiValued():
		ctrl.Kind = ControlMultiSelect
		ctrl.Choices = field.Options()
		ctrl.Value = field.DefaultValue.List()
		ctrl.Placeholder = ""
	case field.Type.HasOptions():
		ctrl.Kind = ControlSelect
		ctrl.Choices = field.Options()
		ctrl.Placeholder = ""
	case field.Type == model.FieldTypeDate:
		cfg, _ := field.Date()
		ctrl.Kind = ControlDate
		ctrl.Min = cfg.MinDate
		ctrl.Max = cfg.MaxDate
	case field.Type == model.FieldTypeSwitch:
		ctrl.Kind = ControlSelect
		ctrl.Choices = []string{"on", "off"}
		ctrl.Placeholder = ""
	}
	return ctrl
}

func dateFormatChoices() []string {
	formats := model.DateFormats()
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
