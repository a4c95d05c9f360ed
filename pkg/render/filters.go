package render

import (
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/preview"
)

// DateFilter is the template filter name for FormatDate, used as
// {{ item.minDate|datefmt:item.dateFormat }}.
const DateFilter = "datefmt"

// FormatDate renders an ISO date in the display format given as the filter
// argument. Without a format the date is returned as stored.
func FormatDate(input any, param any) (any, error) {
	iso, _ := input.(string)
	if iso == "" {
		return "", nil
	}
	format, _ := param.(string)
	if format == "" {
		return iso, nil
	}
	return preview.FormatDate(iso, model.DateFormat(format)), nil
}
