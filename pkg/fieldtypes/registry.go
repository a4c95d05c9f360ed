package fieldtypes

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// Built-in preview widget identifiers.
const (
	WidgetTextInput     = "text-input"
	WidgetNumberInput   = "number-input"
	WidgetEmailInput    = "email-input"
	WidgetTextarea      = "textarea"
	WidgetSelect        = "select"
	WidgetMultiSelect   = "multi-select"
	WidgetRadioGroup    = "radio-group"
	WidgetCheckboxGroup = "checkbox-group"
	WidgetDatePicker    = "date-picker"
	WidgetFileInput     = "file-input"
	WidgetToggle        = "toggle"
)

// Descriptor is the palette entry for one field type.
type Descriptor struct {
	Type        model.FieldType `json:"type"`
	Label       string          `json:"label"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	Color       string          `json:"color,omitempty"`
	// Defaults is merged over the type-independent defaults when a field of
	// this type is added. Only Question, DefaultValue and Config are read.
	Defaults model.Field `json:"-"`
}

// Matcher decides whether a widget should render the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry maps field types to their palette descriptor and default config,
// and resolves the preview widget for a field. Adding a type takes one
// Register call plus a widget rule; everything else keys off the registry.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[model.FieldType]Descriptor
	order       []model.FieldType
	rules       []rule
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a shared registry with the built-in types registered.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry constructs a registry with the built-in types and widget
// matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{descriptors: make(map[model.FieldType]Descriptor)}
	reg.registerBuiltins()
	return reg
}

// Register adds or replaces a descriptor. Replacing keeps the original
// palette position.
func (r *Registry) Register(desc Descriptor) {
	if r == nil || strings.TrimSpace(string(desc.Type)) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[desc.Type]; !exists {
		r.order = append(r.order, desc.Type)
	}
	r.descriptors[desc.Type] = desc
}

// Describe returns the palette descriptor for t.
func (r *Registry) Describe(t model.FieldType) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	desc, ok := r.descriptors[t]
	if !ok {
		return Descriptor{}, false
	}
	desc.Defaults = desc.Defaults.Clone()
	return desc, true
}

// DefaultsFor returns a fresh field of type t carrying the registry defaults
// on top of the type-independent ones. The ID is left empty.
func (r *Registry) DefaultsFor(t model.FieldType) (model.Field, bool) {
	desc, ok := r.Describe(t)
	if !ok {
		return model.Field{}, false
	}
	field := model.New(t)
	field.Question = desc.Defaults.Question
	if !desc.Defaults.DefaultValue.IsEmpty() {
		field.DefaultValue = desc.Defaults.DefaultValue.Coerce(t)
	}
	if desc.Defaults.Config != nil {
		field.Config = desc.Defaults.Config
	}
	return field, true
}

// Types lists registered types in palette order.
func (r *Registry) Types() []model.FieldType {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.FieldType(nil), r.order...)
}

// Descriptors lists registered descriptors in palette order.
func (r *Registry) Descriptors() []Descriptor {
	types := r.Types()
	out := make([]Descriptor, 0, len(types))
	for _, t := range types {
		if desc, ok := r.Describe(t); ok {
			out = append(out, desc)
		}
	}
	return out
}

// RegisterWidget adds a widget matcher with the provided name and priority.
// Higher priority values take precedence; ties fall back to registration
// order.
func (r *Registry) RegisterWidget(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Widget returns the preview widget for a field.
func (r *Registry) Widget(field model.Field) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

func ofType(t model.FieldType) Matcher {
	return func(field model.Field) bool {
		return field.Type == t
	}
}

func (r *Registry) registerBuiltins() {
	for _, desc := range builtinDescriptors() {
		r.Register(desc)
	}

	r.RegisterWidget(WidgetTextInput, 10, ofType(model.FieldTypeText))
	r.RegisterWidget(WidgetNumberInput, 10, ofType(model.FieldTypeNumber))
	r.RegisterWidget(WidgetEmailInput, 10, ofType(model.FieldTypeEmail))
	r.RegisterWidget(WidgetTextarea, 10, ofType(model.FieldTypeTextarea))
	r.RegisterWidget(WidgetSelect, 10, ofType(model.FieldTypeSelect))
	r.RegisterWidget(WidgetMultiSelect, 10, ofType(model.FieldTypeMultiSelect))
	r.RegisterWidget(WidgetRadioGroup, 10, ofType(model.FieldTypeRadio))
	r.RegisterWidget(WidgetCheckboxGroup, 10, ofType(model.FieldTypeCheckbox))
	r.RegisterWidget(WidgetDatePicker, 10, ofType(model.FieldTypeDate))
	r.RegisterWidget(WidgetFileInput, 10, ofType(model.FieldTypeFile))
	r.RegisterWidget(WidgetToggle, 10, ofType(model.FieldTypeSwitch))
}
