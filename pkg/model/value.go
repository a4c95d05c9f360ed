package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value holds a field default: a single string, or a list of strings for
// multi-valued types (multi-select, checkbox).
type Value struct {
	text  string
	list  []string
	multi bool
}

// StringValue builds a single-valued default.
func StringValue(s string) Value {
	return Value{text: s}
}

// ListValue builds a multi-valued default. A nil or empty list is still
// multi-valued and serialises as [].
func ListValue(items ...string) Value {
	return Value{list: append([]string{}, items...), multi: true}
}

// ZeroValueFor returns the empty default matching the type's arity.
func ZeroValueFor(t FieldType) Value {
	if t.MultiValued() {
		return ListValue()
	}
	return StringValue("")
}

// IsMulti reports whether the value is a list.
func (v Value) IsMulti() bool { return v.multi }

// String returns the single value, or the list joined by ", ".
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.list, ", ")
	}
	return v.text
}

// List returns the list value, or a one-element list for a non-empty string.
func (v Value) List() []string {
	if v.multi {
		return append([]string{}, v.list...)
	}
	if v.text == "" {
		return []string{}
	}
	return []string{v.text}
}

// IsEmpty reports whether no default has been chosen.
func (v Value) IsEmpty() bool {
	if v.multi {
		return len(v.list) == 0
	}
	return v.text == ""
}

// Coerce adapts v to the arity required by t: strings become one-element
// lists for multi-valued types and lists collapse to their first entry
// otherwise.
func (v Value) Coerce(t FieldType) Value {
	switch {
	case t.MultiValued() && !v.multi:
		return ListValue(v.List()...)
	case !t.MultiValued() && v.multi:
		if len(v.list) == 0 {
			return StringValue("")
		}
		return StringValue(v.list[0])
	}
	return v.clone()
}

func (v Value) clone() Value {
	if v.multi {
		return ListValue(v.list...)
	}
	return v
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		list := v.list
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*v = StringValue("")
		return nil
	case trimmed[0] == '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("model: defaultValue list: %w", err)
		}
		*v = ListValue(list...)
		return nil
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("model: defaultValue: %w", err)
		}
		*v = StringValue(text)
		return nil
	}
	// numbers and booleans keep their literal spelling
	*v = StringValue(string(trimmed))
	return nil
}
