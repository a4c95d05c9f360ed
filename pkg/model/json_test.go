package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldMarshalJSON_OmitsForeignVariantKeys(t *testing.T) {
	field := New(FieldTypeText)
	field.Name = "reason"

	payload, err := json.Marshal(field)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	raw := string(payload)
	for _, key := range []string{`"options"`, `"minDate"`, `"rows"`, `"minValue"`, `"id"`} {
		if strings.Contains(raw, key) {
			t.Fatalf("expected %s to be omitted for text fields, got %s", key, raw)
		}
	}
	if !strings.Contains(raw, `"visibility":"Show"`) {
		t.Fatalf("expected default visibility, got %s", raw)
	}
}

func TestFieldMarshalJSON_EmitsEmptyOptionsAndDateKeys(t *testing.T) {
	selectField := New(FieldTypeSelect)
	payload, err := json.Marshal(selectField)
	if err != nil {
		t.Fatalf("marshal select: %v", err)
	}
	if !strings.Contains(string(payload), `"options":[]`) {
		t.Fatalf("expected empty options array, got %s", payload)
	}

	dateField := New(FieldTypeDate)
	payload, err = json.Marshal(dateField)
	if err != nil {
		t.Fatalf("marshal date: %v", err)
	}
	for _, key := range []string{`"minDate":""`, `"maxDate":""`, `"dateFormat":"YYYY-MM-DD"`} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("expected %s in %s", key, payload)
		}
	}
}

func TestFieldUnmarshalJSON_BuildsVariantFromType(t *testing.T) {
	raw := `{
		"type": "checkbox",
		"name": "assets_returned",
		"displayName": "Assets",
		"question": "Have you returned your laptop?",
		"options": ["Yes", "No", "Yes"],
		"defaultValue": "Yes",
		"isMandatory": true,
		"isEnabled": true,
		"visibility": "hide",
		"errorMessage": "This field is required",
		"description": "",
		"minDate": "2025-01-01",
		"rows": 7
	}`

	var field Field
	if err := json.Unmarshal([]byte(raw), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if diff := cmp.Diff([]string{"Yes", "No", "Yes"}, field.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !field.DefaultValue.IsMulti() {
		t.Fatalf("expected checkbox default coerced to a list")
	}
	if diff := cmp.Diff([]string{"Yes"}, field.DefaultValue.List()); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
	if field.Visibility != VisibilityHide {
		t.Fatalf("expected Hide visibility, got %q", field.Visibility)
	}
	if _, ok := field.Date(); ok {
		t.Fatalf("date keys must be ignored for checkbox fields")
	}
}

func TestFieldUnmarshalJSON_AcceptsLegacyDateFormat(t *testing.T) {
	raw := `{"type":"date","name":"last_day","dateFormat":"yyyy-MM-dd","minDate":"2025-01-01","maxDate":"2025-02-01"}`

	var field Field
	if err := json.Unmarshal([]byte(raw), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	cfg, ok := field.Date()
	if !ok {
		t.Fatalf("expected date config")
	}
	want := DateConfig{MinDate: "2025-01-01", MaxDate: "2025-02-01", DateFormat: DateFormatISO}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("date config mismatch (-want +got):\n%s", diff)
	}
	if field.Visibility != VisibilityShow {
		t.Fatalf("expected missing visibility to default to Show")
	}
}

func TestFieldUnmarshalJSON_RejectsUnknownType(t *testing.T) {
	var field Field
	err := json.Unmarshal([]byte(`{"type":"signature"}`), &field)
	if err == nil || !strings.Contains(err.Error(), "unknown field type") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestDefaultErrorMessage(t *testing.T) {
	date := New(FieldTypeDate)
	if got := DefaultErrorMessage(date); got != DateRequiredMessage {
		t.Fatalf("unbounded date message = %q", got)
	}
	cfg, _ := date.Date()
	cfg.MaxDate = "2025-03-01"
	date.Config = cfg
	if got := DefaultErrorMessage(date); got != DateRequiredMessage+" within the allowed range" {
		t.Fatalf("bounded date message = %q", got)
	}
	if got := DefaultErrorMessage(New(FieldTypeRadio)); got != RequiredMessage {
		t.Fatalf("radio message = %q", got)
	}
}

func TestFieldCloneDoesNotShareOptions(t *testing.T) {
	field := New(FieldTypeRadio)
	field.Config = ChoiceConfig{Options: []string{"a"}}

	clone := field.Clone()
	cfg := clone.Config.(ChoiceConfig)
	cfg.Options[0] = "mutated"

	if field.Options()[0] != "a" {
		t.Fatalf("clone shares option storage with the original")
	}
}

func TestKeyAppliesTo(t *testing.T) {
	cases := []struct {
		key    Key
		typ    FieldType
		expect bool
	}{
		{KeyOptions, FieldTypeSelect, true},
		{KeyOptions, FieldTypeText, false},
		{KeyMinDate, FieldTypeDate, true},
		{KeyMinDate, FieldTypeNumber, false},
		{KeyRows, FieldTypeTextarea, true},
		{KeyMinValue, FieldTypeNumber, true},
		{KeyErrorMessage, FieldTypeFile, true},
	}
	for _, tc := range cases {
		if got := tc.key.AppliesTo(tc.typ); got != tc.expect {
			t.Fatalf("%s applies to %s = %v, want %v", tc.key, tc.typ, got, tc.expect)
		}
	}
}
