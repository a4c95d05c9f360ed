package preview

import (
	"strings"
	"time"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// Stats are the preview header counts.
type Stats struct {
	Enabled  int `json:"enabled"`
	Required int `json:"required"`
	Hidden   int `json:"hidden"`
}

// Enabled returns copies of the fields with isEnabled set, in order.
func Enabled(fields []model.Field) []model.Field {
	out := make([]model.Field, 0, len(fields))
	for _, field := range fields {
		if field.IsEnabled {
			out = append(out, field.Clone())
		}
	}
	return out
}

// Counts derives the header counts from the enabled subset.
func Counts(fields []model.Field) Stats {
	var stats Stats
	for _, field := range fields {
		if !field.IsEnabled {
			continue
		}
		stats.Enabled++
		if field.IsMandatory {
			stats.Required++
		}
		if field.Visibility == model.VisibilityHide {
			stats.Hidden++
		}
	}
	return stats
}

// ValidateDate returns the advisory message for value entered into a date
// field, or "" when the value is acceptable. value may use ISO form or the
// field's display format. Non-date fields always validate.
func ValidateDate(field model.Field, value string) string {
	cfg, ok := field.Date()
	if !ok {
		return ""
	}
	value = strings.TrimSpace(value)
	if value == "" {
		if !field.IsMandatory {
			return ""
		}
		if field.ErrorMessage != "" {
			return field.ErrorMessage
		}
		return model.RequiredMessage
	}

	selected, ok := parseDate(value, cfg.DateFormat)
	if !ok {
		return model.DateRequiredMessage
	}
	if lo, ok := parseDate(cfg.MinDate, model.DateFormatISO); ok && selected.Before(lo) {
		return "Date must be after " + FormatDate(cfg.MinDate, cfg.DateFormat)
	}
	if hi, ok := parseDate(cfg.MaxDate, model.DateFormatISO); ok && selected.After(hi) {
		return "Date must be before " + FormatDate(cfg.MaxDate, cfg.DateFormat)
	}
	return ""
}

// FormatDate renders an ISO date in the given display format. Values that
// do not parse are returned unchanged.
func FormatDate(iso string, format model.DateFormat) string {
	t, err := time.Parse(model.ISODateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format(format.Layout())
}

func parseDate(value string, format model.DateFormat) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(model.ISODateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(format.Layout(), value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
