package model

import (
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// FieldType is the closed set of field kinds the builder can compose.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeEmail       FieldType = "email"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multi-select"
	FieldTypeRadio       FieldType = "radio"
	FieldTypeCheckbox    FieldType = "checkbox"
	FieldTypeDate        FieldType = "date"
	FieldTypeFile        FieldType = "file"
	FieldTypeSwitch      FieldType = "switch"
)

var (
	allFieldTypes = []FieldType{
		FieldTypeText,
		FieldTypeNumber,
		FieldTypeEmail,
		FieldTypeTextarea,
		FieldTypeSelect,
		FieldTypeMultiSelect,
		FieldTypeRadio,
		FieldTypeCheckbox,
		FieldTypeDate,
		FieldTypeFile,
		FieldTypeSwitch,
	}
	knownTypes       = mapset.NewSet(allFieldTypes...)
	optionTypes      = mapset.NewSet(FieldTypeSelect, FieldTypeMultiSelect, FieldTypeRadio, FieldTypeCheckbox)
	multiValueTypes  = mapset.NewSet(FieldTypeMultiSelect, FieldTypeCheckbox)
	questionRequired = mapset.NewSet(FieldTypeCheckbox, FieldTypeRadio, FieldTypeDate)
)

// FieldTypes returns the built-in field types in palette order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), allFieldTypes...)
}

// ParseFieldType normalises raw input into a known FieldType.
func ParseFieldType(raw string) (FieldType, bool) {
	candidate := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if !knownTypes.Contains(candidate) {
		return "", false
	}
	return candidate, true
}

// Valid reports whether t belongs to the closed type set.
func (t FieldType) Valid() bool {
	return knownTypes.Contains(t)
}

// HasOptions reports whether fields of this type carry an options list.
func (t FieldType) HasOptions() bool {
	return optionTypes.Contains(t)
}

// MultiValued reports whether the default value is a list of strings.
func (t FieldType) MultiValued() bool {
	return multiValueTypes.Contains(t)
}

// RequiresQuestion reports whether the editor must collect a question prompt.
func (t FieldType) RequiresQuestion() bool {
	return questionRequired.Contains(t)
}

// Visibility is a display hint independent of IsEnabled.
type Visibility string

const (
	VisibilityShow Visibility = "Show"
	VisibilityHide Visibility = "Hide"
)

// ParseVisibility accepts "Show"/"Hide" in any case.
func ParseVisibility(raw string) (Visibility, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "show":
		return VisibilityShow, true
	case "hide":
		return VisibilityHide, true
	}
	return "", false
}

// DateFormat enumerates the display formats offered for date fields. Bounds
// are always stored as ISO dates; the format only drives presentation.
type DateFormat string

const (
	DateFormatISO DateFormat = "YYYY-MM-DD"
	DateFormatDMY DateFormat = "DD-MM-YYYY"
	DateFormatMDY DateFormat = "MM-DD-YYYY"
)

// ISODateLayout is the storage layout for minDate/maxDate.
const ISODateLayout = "2006-01-02"

// DateFormats lists the supported display formats.
func DateFormats() []DateFormat {
	return []DateFormat{DateFormatISO, DateFormatDMY, DateFormatMDY}
}

// ParseDateFormat accepts the enumerated formats plus the lowercase
// "yyyy-MM-dd" spelling older exports carry.
func ParseDateFormat(raw string) (DateFormat, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(DateFormatISO):
		return DateFormatISO, true
	case string(DateFormatDMY):
		return DateFormatDMY, true
	case string(DateFormatMDY):
		return DateFormatMDY, true
	}
	return "", false
}

// Layout returns the Go time layout for the display format.
func (f DateFormat) Layout() string {
	switch f {
	case DateFormatDMY:
		return "02-01-2006"
	case DateFormatMDY:
		return "01-02-2006"
	default:
		return ISODateLayout
	}
}

// Key names a single field attribute addressed by the store's Update.
type Key string

const (
	KeyName         Key = "name"
	KeyDisplayName  Key = "displayName"
	KeyDescription  Key = "description"
	KeyQuestion     Key = "question"
	KeyOptions      Key = "options"
	KeyDefaultValue Key = "defaultValue"
	KeyIsMandatory  Key = "isMandatory"
	KeyIsEnabled    Key = "isEnabled"
	KeyVisibility   Key = "visibility"
	KeyErrorMessage Key = "errorMessage"
	KeyMinDate      Key = "minDate"
	KeyMaxDate      Key = "maxDate"
	KeyDateFormat   Key = "dateFormat"
	KeyPlaceholder  Key = "placeholder"
	KeyMinDateLabel Key = "minDateLabel"
	KeyMaxDateLabel Key = "maxDateLabel"
	KeyMinValue     Key = "minValue"
	KeyMaxValue     Key = "maxValue"
	KeyRows         Key = "rows"
)

var (
	baseKeys = mapset.NewSet(
		KeyName, KeyDisplayName, KeyDescription, KeyQuestion, KeyDefaultValue,
		KeyIsMandatory, KeyIsEnabled, KeyVisibility, KeyErrorMessage,
	)
	dateKeys   = mapset.NewSet(KeyMinDate, KeyMaxDate, KeyDateFormat, KeyPlaceholder, KeyMinDateLabel, KeyMaxDateLabel)
	numberKeys = mapset.NewSet(KeyMinValue, KeyMaxValue)
)

// Known reports whether k is one of the attribute keys.
func (k Key) Known() bool {
	return baseKeys.Contains(k) || dateKeys.Contains(k) || numberKeys.Contains(k) ||
		k == KeyOptions || k == KeyRows
}

// AppliesTo reports whether k is meaningful for fields of type t.
func (k Key) AppliesTo(t FieldType) bool {
	switch {
	case baseKeys.Contains(k):
		return true
	case k == KeyOptions:
		return t.HasOptions()
	case dateKeys.Contains(k):
		return t == FieldTypeDate
	case numberKeys.Contains(k):
		return t == FieldTypeNumber
	case k == KeyRows:
		return t == FieldTypeTextarea
	}
	return false
}
