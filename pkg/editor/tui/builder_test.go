package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/store"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	selectMsgs   []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectMsgs = append(s.selectMsgs, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestBuilder_AddAndEditCheckbox(t *testing.T) {
	s := store.New()
	driver := &stubDriver{
		// menu: Add; palette: checkbox (index 7); attribute: Display Name (1);
		// attribute: Question (3); attribute: Required (toggle); back; menu: Done.
		selectIdx: []int{0, 7, 1, 3, 6, 99, 3},
		inputs:    []string{"Company Assets", "Have you returned all company assets?"},
		confirm:   []bool{true},
	}
	b := NewBuilder(s, WithPromptDriver(driver))

	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	fields := s.Fields()
	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	got := fields[0]
	if got.Type != model.FieldTypeCheckbox || got.Name != "company_assets" || got.DisplayName != "Company Assets" {
		t.Fatalf("unexpected field %+v", got)
	}
	if got.Question != "Have you returned all company assets?" {
		t.Fatalf("unexpected question %q", got.Question)
	}
	if !got.IsMandatory || got.ErrorMessage != model.RequiredMessage {
		t.Fatalf("expected mandatory with default message, got %+v", got)
	}
}

func TestBuilder_EditOptionsAndRemove(t *testing.T) {
	s := store.New()
	first, _ := s.Add(model.FieldTypeSelect)
	second, _ := s.Add(model.FieldTypeText)

	driver := &stubDriver{
		// menu: Edit; field 1; attribute: Options (4); back;
		// menu: Remove; field 2; confirm; menu: Done.
		selectIdx: []int{1, 0, 4, 99, 2, 1, 3},
		inputs:    []string{"Laptop, Badge, , Keys"},
		confirm:   []bool{true},
	}
	b := NewBuilder(s, WithPromptDriver(driver))
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	fields := s.Fields()
	if len(fields) != 1 || fields[0].ID != first.ID {
		t.Fatalf("expected only %s to remain, got %+v", first.ID, fields)
	}
	if _, ok := s.Get(second.ID); ok {
		t.Fatalf("second field must be removed")
	}
	if diff := cmp.Diff([]string{"Laptop", "Badge", "Keys"}, fields[0].Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_RejectedUpdateIsReported(t *testing.T) {
	s := store.New()
	date, _ := s.Add(model.FieldTypeDate)
	_ = s.Update(date.ID, model.KeyMaxDate, "2025-01-10")

	driver := &stubDriver{
		// menu: Edit; field 1; attribute: Min Date (6); back; menu: Done.
		selectIdx: []int{1, 0, 6, 99, 3},
		inputs:    []string{"2025-03-01"},
	}
	b := NewBuilder(s, WithPromptDriver(driver))
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "minDate must not be after maxDate") {
		t.Fatalf("expected rejection message, got %v", driver.infoMessages)
	}
	got, _ := s.Get(date.ID)
	if cfg, _ := got.Date(); cfg.MinDate != "" {
		t.Fatalf("rejected min date stored: %+v", cfg)
	}
}

func TestBuilder_PreviewAndExportHooks(t *testing.T) {
	s := store.New()
	_, _ = s.Add(model.FieldTypeText)

	var previewed, exported int
	driver := &stubDriver{
		// menu: Add, Edit, Remove, Preview, Export, Done
		selectIdx: []int{3, 4, 5},
	}
	b := NewBuilder(s,
		WithPromptDriver(driver),
		WithPreview(func(_ context.Context, fields []model.Field) (string, error) {
			previewed = len(fields)
			return "preview", nil
		}),
		WithExport(func(_ context.Context, fields []model.Field) (string, error) {
			exported = len(fields)
			return "", errors.New("disk full")
		}),
	)
	if err := b.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if previewed != 1 || exported != 1 {
		t.Fatalf("hooks not invoked: preview=%d export=%d", previewed, exported)
	}
	want := []string{"preview", "Error: disk full"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_AbortPropagates(t *testing.T) {
	s := store.New()
	driver := &stubDriver{}
	b := NewBuilder(s, WithPromptDriver(driver))

	if err := b.Run(context.Background()); err == nil {
		t.Fatalf("expected driver error to stop the loop")
	}
	if !strings.HasPrefix(driver.selectMsgs[0], "Form builder (0 fields)") {
		t.Fatalf("unexpected menu title %q", driver.selectMsgs[0])
	}
}
