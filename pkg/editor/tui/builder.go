package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-smartexit/pkg/editor"
	"github.com/goliatone/go-smartexit/pkg/fieldtypes"
	"github.com/goliatone/go-smartexit/pkg/model"
)

// Collection is the store surface the terminal builder drives.
type Collection interface {
	editor.Source
	Add(t model.FieldType) (model.Field, error)
	Remove(id model.FieldID)
	Fields() []model.Field
}

// OutputFunc renders the current collection for display (preview or
// export). The returned text is printed through the driver.
type OutputFunc func(ctx context.Context, fields []model.Field) (string, error)

// Option configures a Builder.
type Option func(*Builder)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(b *Builder) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// WithRegistry supplies the palette offered by "Add field".
func WithRegistry(reg *fieldtypes.Registry) Option {
	return func(b *Builder) {
		if reg != nil {
			b.types = reg
		}
	}
}

// WithPreview registers the "Preview" menu action.
func WithPreview(fn OutputFunc) Option {
	return func(b *Builder) {
		b.preview = fn
	}
}

// WithExport registers the "Export" menu action.
func WithExport(fn OutputFunc) Option {
	return func(b *Builder) {
		b.export = fn
	}
}

const (
	menuAdd     = "Add field"
	menuEdit    = "Edit field"
	menuRemove  = "Remove field"
	menuPreview = "Preview"
	menuExport  = "Export"
	menuDone    = "Done"

	backChoice = "« Back"
)

// Builder runs the interactive form builder loop in a terminal.
type Builder struct {
	driver  PromptDriver
	fields  Collection
	types   *fieldtypes.Registry
	preview OutputFunc
	export  OutputFunc
}

// NewBuilder creates a builder over fields.
func NewBuilder(fields Collection, options ...Option) *Builder {
	b := &Builder{
		fields: fields,
		types:  fieldtypes.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.driver == nil {
		b.driver = NewSurveyDriver(nil)
	}
	return b
}

// Run loops over the main menu until the user picks Done or aborts. An abort
// returns ErrAborted; the collection keeps every change made so far.
func (b *Builder) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	for {
		menu := b.menu()
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Form builder (%d fields)", len(b.fields.Fields())),
			Options: menu,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			continue
		}

		switch menu[idx] {
		case menuAdd:
			err = b.addField(ctx)
		case menuEdit:
			err = b.editField(ctx)
		case menuRemove:
			err = b.removeField(ctx)
		case menuPreview:
			err = b.show(ctx, b.preview)
		case menuExport:
			err = b.show(ctx, b.export)
		case menuDone:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (b *Builder) menu() []string {
	out := []string{menuAdd}
	if len(b.fields.Fields()) > 0 {
		out = append(out, menuEdit, menuRemove)
	}
	if b.preview != nil {
		out = append(out, menuPreview)
	}
	if b.export != nil {
		out = append(out, menuExport)
	}
	return append(out, menuDone)
}

func (b *Builder) addField(ctx context.Context) error {
	descriptors := b.types.Descriptors()
	labels := make([]string, 0, len(descriptors)+1)
	for _, desc := range descriptors {
		labels = append(labels, fmt.Sprintf("%s - %s", desc.Label, desc.Description))
	}
	labels = append(labels, backChoice)

	idx, err := b.driver.Select(ctx, SelectConfig{Message: "Field type", Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(descriptors) {
		return nil
	}
	field, err := b.fields.Add(descriptors[idx].Type)
	if err != nil {
		return b.driver.Info(ctx, fmt.Sprintf("Could not add field: %v", err))
	}
	return b.editControls(ctx, field.ID)
}

func (b *Builder) editField(ctx context.Context) error {
	id, ok, err := b.pickField(ctx, "Edit which field?")
	if err != nil || !ok {
		return err
	}
	return b.editControls(ctx, id)
}

func (b *Builder) removeField(ctx context.Context) error {
	id, ok, err := b.pickField(ctx, "Remove which field?")
	if err != nil || !ok {
		return err
	}
	confirmed, err := b.driver.Confirm(ctx, ConfirmConfig{Message: "Remove this field?"})
	if err != nil {
		return err
	}
	if confirmed {
		b.fields.Remove(id)
	}
	return nil
}

func (b *Builder) pickField(ctx context.Context, message string) (model.FieldID, bool, error) {
	fields := b.fields.Fields()
	labels := make([]string, 0, len(fields)+1)
	for i, field := range fields {
		labels = append(labels, fieldSummary(i, field))
	}
	labels = append(labels, backChoice)

	idx, err := b.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(fields) {
		return "", false, nil
	}
	return fields[idx].ID, true, nil
}

// editControls lets the user pick controls to change until they go back.
// The control list is rebuilt after every change since toggles reveal or hide
// other controls.
func (b *Builder) editControls(ctx context.Context, id model.FieldID) error {
	ed := editor.New(b.fields, id)
	for {
		controls, err := ed.Controls()
		if err != nil {
			return b.driver.Info(ctx, err.Error())
		}
		labels := make([]string, 0, len(controls)+1)
		for _, ctrl := range controls {
			labels = append(labels, controlSummary(ctrl))
		}
		labels = append(labels, backChoice)

		idx, err := b.driver.Select(ctx, SelectConfig{Message: "Edit attribute", Options: labels, PageSize: 12})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(controls) {
			return nil
		}
		if err := b.promptControl(ctx, ed, controls[idx]); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if infoErr := b.driver.Info(ctx, fmt.Sprintf("Not saved: %v", err)); infoErr != nil {
				return infoErr
			}
		}
	}
}

func (b *Builder) promptControl(ctx context.Context, ed *editor.Editor, ctrl editor.Control) error {
	if (ctrl.Kind == editor.ControlSelect || ctrl.Kind == editor.ControlMultiSelect) && len(ctrl.Choices) == 0 {
		return b.driver.Info(ctx, "Add options first")
	}
	switch ctrl.Kind {
	case editor.ControlToggle:
		current, _ := ctrl.Value.(bool)
		v, err := b.driver.Confirm(ctx, ConfirmConfig{Message: ctrl.Label, Default: current})
		if err != nil {
			return err
		}
		return ed.Set(ctrl.Key, v)

	case editor.ControlSelect:
		current, _ := ctrl.Value.(string)
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      ctrl.Label,
			Options:      ctrl.Choices,
			DefaultIndex: indexOf(ctrl.Choices, current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(ctrl.Choices) {
			return nil
		}
		return ed.Set(ctrl.Key, ctrl.Choices[idx])

	case editor.ControlMultiSelect:
		current, _ := ctrl.Value.([]string)
		indices, err := b.driver.MultiSelect(ctx, SelectConfig{
			Message:  ctrl.Label,
			Options:  ctrl.Choices,
			Defaults: indicesOf(ctrl.Choices, current),
		})
		if err != nil {
			return err
		}
		return ed.Set(ctrl.Key, defaultsFromIndices(ctrl.Choices, indices))

	case editor.ControlTags:
		current, _ := ctrl.Value.([]string)
		input, err := b.driver.Input(ctx, InputConfig{
			Message:     ctrl.Label + " (comma separated)",
			Default:     strings.Join(current, ", "),
			Placeholder: ctrl.Placeholder,
		})
		if err != nil {
			return err
		}
		return ed.SetOptions(input)

	case editor.ControlTextArea:
		current, _ := ctrl.Value.(string)
		input, err := b.driver.TextArea(ctx, TextAreaConfig{Message: ctrl.Label, Default: current})
		if err != nil {
			return err
		}
		return ed.Set(ctrl.Key, input)

	case editor.ControlDate:
		current, _ := ctrl.Value.(string)
		input, err := b.driver.Input(ctx, InputConfig{
			Message:   ctrl.Label + " (YYYY-MM-DD)",
			Default:   current,
			Help:      dateHelp(ctrl),
			Validator: isoDate,
		})
		if err != nil {
			return err
		}
		return ed.SetDateBound(ctrl.Key, strings.TrimSpace(input))

	case editor.ControlNumber:
		input, err := b.driver.Input(ctx, InputConfig{
			Message:   ctrl.Label,
			Default:   numberDefault(ctrl.Value),
			Validator: optionalNumber,
		})
		if err != nil {
			return err
		}
		value, err := parseNumber(ctrl.Key, input)
		if err != nil {
			return err
		}
		return ed.Set(ctrl.Key, value)
	}

	current, _ := ctrl.Value.(string)
	input, err := b.driver.Input(ctx, InputConfig{
		Message:     ctrl.Label,
		Default:     current,
		Placeholder: ctrl.Placeholder,
	})
	if err != nil {
		return err
	}
	if ctrl.Key == model.KeyDisplayName {
		return ed.SetDisplayName(input)
	}
	return ed.Set(ctrl.Key, input)
}

func (b *Builder) show(ctx context.Context, fn OutputFunc) error {
	if fn == nil {
		return nil
	}
	out, err := fn(ctx, b.fields.Fields())
	if err != nil {
		return b.driver.Info(ctx, fmt.Sprintf("Error: %v", err))
	}
	return b.driver.Info(ctx, out)
}

func fieldSummary(i int, field model.Field) string {
	label := field.Label()
	if label == "" {
		label = field.Name
	}
	if label == "" {
		label = "(untitled)"
	}
	return fmt.Sprintf("%d. %s [%s]", i+1, label, field.Type)
}

func controlSummary(ctrl editor.Control) string {
	value := fmt.Sprint(ctrl.Value)
	switch v := ctrl.Value.(type) {
	case []string:
		value = strings.Join(v, ", ")
	case *float64:
		value = numberDefault(v)
	}
	if value == "" {
		value = "-"
	}
	marker := ""
	if ctrl.Required {
		marker = " *"
	}
	return fmt.Sprintf("%s%s: %s", ctrl.Label, marker, value)
}

func dateHelp(ctrl editor.Control) string {
	switch {
	case ctrl.Min != "" && ctrl.Max != "":
		return fmt.Sprintf("Between %s and %s", ctrl.Min, ctrl.Max)
	case ctrl.Min != "":
		return "On or after " + ctrl.Min
	case ctrl.Max != "":
		return "On or before " + ctrl.Max
	}
	return "Leave empty for no bound"
}

func isoDate(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := time.Parse(model.ISODateLayout, input); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func optionalNumber(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(input, 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func numberDefault(v any) string {
	switch n := v.(type) {
	case *float64:
		if n == nil {
			return ""
		}
		return strconv.FormatFloat(*n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	}
	return ""
}

func parseNumber(key model.Key, input string) (any, error) {
	input = strings.TrimSpace(input)
	if key == model.KeyRows {
		if input == "" {
			return 0, nil
		}
		return strconv.Atoi(input)
	}
	if input == "" {
		return nil, nil
	}
	return strconv.ParseFloat(input, 64)
}
