package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goliatone/go-smartexit/pkg/model"
)

var (
	// ErrUnknownFieldType is returned by Add for types missing from the registry.
	ErrUnknownFieldType = errors.New("store: unknown field type")
	// ErrUnknownKey is returned when Update names no known attribute.
	ErrUnknownKey = errors.New("store: unknown attribute key")
	// ErrKeyNotApplicable is returned when the attribute does not exist on the
	// field's type (options on a text field, rows on a date).
	ErrKeyNotApplicable = errors.New("store: attribute does not apply to field type")
	// ErrInvalidValue is returned when the value has the wrong shape for the key.
	ErrInvalidValue = errors.New("store: invalid attribute value")
	// ErrInvalidDate is returned for date bounds that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("store: date must use YYYY-MM-DD")
	// ErrInvalidDateFormat is returned for display formats outside the enum.
	ErrInvalidDateFormat = errors.New("store: unsupported date format")
	// ErrInvertedDateRange is returned when minDate would fall after maxDate.
	ErrInvertedDateRange = errors.New("store: minDate must not be after maxDate")
)

// apply sets key on field. It returns the updated copy or an error; the input
// is never modified.
func apply(field model.Field, key model.Key, value any) (model.Field, error) {
	if !key.Known() {
		return field, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if !key.AppliesTo(field.Type) {
		return field, fmt.Errorf("%w: %s on %s", ErrKeyNotApplicable, key, field.Type)
	}

	out := field.Clone()
	switch key {
	case model.KeyName:
		return setString(out, key, value, func(f *model.Field, s string) { f.Name = s })
	case model.KeyDisplayName:
		return setString(out, key, value, func(f *model.Field, s string) { f.DisplayName = s })
	case model.KeyDescription:
		return setString(out, key, value, func(f *model.Field, s string) { f.Description = s })
	case model.KeyQuestion:
		return setString(out, key, value, func(f *model.Field, s string) { f.Question = s })
	case model.KeyErrorMessage:
		return setString(out, key, value, func(f *model.Field, s string) { f.ErrorMessage = s })
	case model.KeyIsMandatory:
		flag, err := asBool(key, value)
		if err != nil {
			return field, err
		}
		out.IsMandatory = flag
		if flag && out.ErrorMessage == "" {
			out.ErrorMessage = model.DefaultErrorMessage(out)
		}
		return out, nil
	case model.KeyIsEnabled:
		flag, err := asBool(key, value)
		if err != nil {
			return field, err
		}
		out.IsEnabled = flag
		return out, nil
	case model.KeyVisibility:
		raw, err := asString(key, value)
		if err != nil {
			return field, err
		}
		visibility, ok := model.ParseVisibility(raw)
		if !ok {
			return field, fmt.Errorf("%w: visibility %q", ErrInvalidValue, raw)
		}
		out.Visibility = visibility
		return out, nil
	case model.KeyOptions:
		options, err := asStrings(key, value)
		if err != nil {
			return field, err
		}
		out.Config = model.ChoiceConfig{Options: options}
		return out, nil
	case model.KeyDefaultValue:
		v, err := asValue(key, value)
		if err != nil {
			return field, err
		}
		out.DefaultValue = v.Coerce(out.Type)
		return out, nil
	case model.KeyRows:
		rows, err := asInt(key, value)
		if err != nil {
			return field, err
		}
		if rows < 0 {
			return field, fmt.Errorf("%w: rows must not be negative", ErrInvalidValue)
		}
		out.Config = model.TextareaConfig{Rows: rows}
		return out, nil
	case model.KeyMinValue, model.KeyMaxValue:
		return applyNumber(out, key, value)
	}
	return applyDate(out, key, value)
}

func applyNumber(field model.Field, key model.Key, value any) (model.Field, error) {
	cfg, _ := field.Number()
	bound, err := asOptionalFloat(key, value)
	if err != nil {
		return field, err
	}
	if key == model.KeyMinValue {
		cfg.MinValue = bound
	} else {
		cfg.MaxValue = bound
	}
	if cfg.MinValue != nil && cfg.MaxValue != nil && *cfg.MinValue > *cfg.MaxValue {
		return field, fmt.Errorf("%w: minValue must not exceed maxValue", ErrInvalidValue)
	}
	field.Config = cfg
	return field, nil
}

func applyDate(field model.Field, key model.Key, value any) (model.Field, error) {
	cfg, _ := field.Date()
	raw, err := asString(key, value)
	if err != nil {
		return field, err
	}

	switch key {
	case model.KeyMinDate, model.KeyMaxDate:
		if raw, err = isoBound(key, raw); err != nil {
			return field, err
		}
		if key == model.KeyMinDate {
			cfg.MinDate = raw
		} else {
			cfg.MaxDate = raw
		}
		if inverted(cfg.MinDate, cfg.MaxDate) {
			return field, fmt.Errorf("%w: %s > %s", ErrInvertedDateRange, cfg.MinDate, cfg.MaxDate)
		}
	case model.KeyDateFormat:
		format, ok := model.ParseDateFormat(raw)
		if !ok {
			return field, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
		}
		cfg.DateFormat = format
	case model.KeyPlaceholder:
		cfg.Placeholder = raw
	case model.KeyMinDateLabel:
		cfg.MinDateLabel = raw
	case model.KeyMaxDateLabel:
		cfg.MaxDateLabel = raw
	}
	field.Config = cfg
	return field, nil
}

// applyDateRange sets both bounds of a date field. Only the final pair is
// checked, so a range can move entirely past the current one.
func applyDateRange(field model.Field, minDate, maxDate string) (model.Field, error) {
	if !model.KeyMinDate.AppliesTo(field.Type) {
		return field, fmt.Errorf("%w: date range on %s", ErrKeyNotApplicable, field.Type)
	}
	lo, err := isoBound(model.KeyMinDate, minDate)
	if err != nil {
		return field, err
	}
	hi, err := isoBound(model.KeyMaxDate, maxDate)
	if err != nil {
		return field, err
	}
	if inverted(lo, hi) {
		return field, fmt.Errorf("%w: %s > %s", ErrInvertedDateRange, lo, hi)
	}
	out := field.Clone()
	cfg, _ := out.Date()
	cfg.MinDate, cfg.MaxDate = lo, hi
	out.Config = cfg
	return out, nil
}

// isoBound trims raw and checks it is empty or YYYY-MM-DD.
func isoBound(key model.Key, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(model.ISODateLayout, raw); err != nil {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidDate, key, raw)
	}
	return raw, nil
}

// inverted reports whether both ISO bounds are set and min falls after max.
func inverted(minDate, maxDate string) bool {
	if minDate == "" || maxDate == "" {
		return false
	}
	lo, errLo := time.Parse(model.ISODateLayout, minDate)
	hi, errHi := time.Parse(model.ISODateLayout, maxDate)
	if errLo != nil || errHi != nil {
		return false
	}
	return lo.After(hi)
}

func setString(field model.Field, key model.Key, value any, set func(*model.Field, string)) (model.Field, error) {
	s, err := asString(key, value)
	if err != nil {
		return field, err
	}
	set(&field, s)
	return field, nil
}

func asString(key model.Key, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case model.Visibility:
		return string(v), nil
	case model.DateFormat:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, key, value)
}

func asBool(key model.Key, value any) (bool, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return false, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, key, value)
}

// asStrings accepts []string or the []any produced by JSON decoding.
func asStrings(key model.Key, value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s expects strings, got %T", ErrInvalidValue, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return []string{}, nil
	}
	return nil, fmt.Errorf("%w: %s expects a list of strings, got %T", ErrInvalidValue, key, value)
}

func asValue(key model.Key, value any) (model.Value, error) {
	switch v := value.(type) {
	case model.Value:
		return v, nil
	case string:
		return model.StringValue(v), nil
	case nil:
		return model.StringValue(""), nil
	}
	list, err := asStrings(key, value)
	if err != nil {
		return model.Value{}, err
	}
	return model.ListValue(list...), nil
}

func asInt(key model.Key, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %s expects an integer, got %v", ErrInvalidValue, key, value)
}

func asOptionalFloat(key model.Key, value any) (*float64, error) {
	var out float64
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *float64:
		if v == nil {
			return nil, nil
		}
		out = *v
	case float64:
		out = v
	case int:
		out = float64(v)
	case int64:
		out = float64(v)
	default:
		return nil, fmt.Errorf("%w: %s expects a number, got %T", ErrInvalidValue, key, value)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, fmt.Errorf("%w: %s must be finite", ErrInvalidValue, key)
	}
	return &out, nil
}
