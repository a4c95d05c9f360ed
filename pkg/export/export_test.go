package export_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/store"
	"github.com/goliatone/go-smartexit/pkg/testsupport"
)

var fixturePath = filepath.Join("testdata", "form-config.json")

func loadFixture(t *testing.T) ([]byte, []model.Field) {
	t.Helper()
	data := testsupport.MustReadGolden(t, fixturePath)
	fields, err := export.Parse(data)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return data, fields
}

func TestJSON_EmptyCollection(t *testing.T) {
	for _, fields := range [][]model.Field{nil, {}} {
		payload, err := export.JSON(fields)
		if err != nil {
			t.Fatalf("json: %v", err)
		}
		if string(payload) != "[]" {
			t.Fatalf("expected [], got %q", payload)
		}
	}
}

func TestJSON_RoundTripMatchesDocument(t *testing.T) {
	data, fields := loadFixture(t)

	payload, err := export.JSON(fields)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, fixturePath, append(payload, '\n')) {
		return
	}
	if diff := cmp.Diff(strings.TrimSpace(string(data)), string(payload)); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_StripsIDs(t *testing.T) {
	s := store.New()
	field, _ := s.Add(model.FieldTypeEmail)
	_ = s.Update(field.ID, model.KeyName, "work_email")

	payload, err := export.JSON(s.Fields())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.Contains(string(payload), `"id"`) {
		t.Fatalf("export leaked field ids:\n%s", payload)
	}
	if !strings.HasPrefix(string(payload), "[\n  {\n    \"type\": \"email\",") {
		t.Fatalf("unexpected layout:\n%s", payload)
	}

	stored, _ := s.Get(field.ID)
	if stored.ID != field.ID {
		t.Fatalf("export must not mutate the collection")
	}
}

func TestReplay_AssignsFreshIDs(t *testing.T) {
	_, fields := loadFixture(t)

	s := store.New(store.WithIDGenerator(store.NewSequence(100)))
	stored, err := export.Replay(s, fields)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(stored) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(stored))
	}
	ids := map[model.FieldID]bool{}
	for _, field := range stored {
		if field.ID == "" || ids[field.ID] {
			t.Fatalf("expected unique non-empty ids, got %q", field.ID)
		}
		ids[field.ID] = true
	}

	again, err := export.JSON(s.Fields())
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	first, _ := export.JSON(fields)
	if diff := cmp.Diff(string(first), string(again)); diff != "" {
		t.Fatalf("replay changed the document (-want +got):\n%s", diff)
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	_, fields := loadFixture(t)

	doc, err := export.YAML(fields)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.HasPrefix(string(doc), "- type: text\n") {
		t.Fatalf("expected block yaml, got:\n%s", doc)
	}

	payload, err := export.YAMLToJSON(doc)
	if err != nil {
		t.Fatalf("yaml to json: %v", err)
	}
	if err := export.ValidateDocument(payload); err != nil {
		t.Fatalf("converted yaml fails the schema: %v", err)
	}
	parsed, err := export.Parse(payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want, _ := export.JSON(fields)
	got, _ := export.JSON(parsed)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("yaml round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLToJSON_KeepsDocumentAsWritten(t *testing.T) {
	payload, err := export.YAMLToJSON([]byte("- type: text\n  name: manager\n  colour: red\n"))
	if err != nil {
		t.Fatalf("yaml to json: %v", err)
	}
	if !strings.Contains(string(payload), `"colour":"red"`) {
		t.Fatalf("expected unknown key to survive conversion, got %s", payload)
	}
	if err := export.ValidateDocument(payload); !errors.Is(err, export.ErrInvalidDocument) {
		t.Fatalf("expected schema rejection, got %v", err)
	}

	empty, err := export.YAMLToJSON(nil)
	if err != nil || string(empty) != "[]" {
		t.Fatalf("expected [] for empty yaml, got %q, %v", empty, err)
	}
	if _, err := export.YAMLToJSON([]byte("type: text")); !errors.Is(err, export.ErrInvalidDocument) {
		t.Fatalf("expected ErrInvalidDocument for a mapping, got %v", err)
	}
}

func TestParse_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":     `{`,
		"object":       `{"type":"text"}`,
		"unknown type": `[{"type":"slider"}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := export.Parse([]byte(input)); !errors.Is(err, export.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	_, fields := loadFixture(t)
	dir := t.TempDir()

	path, err := export.WriteFile(dir, fields)
	if err != nil {
		t.Fatalf("write file: %v", err)
	}
	if filepath.Base(path) != export.Filename {
		t.Fatalf("unexpected file name %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	parsed, err := export.Parse(data)
	if err != nil {
		t.Fatalf("parse written file: %v", err)
	}
	if len(parsed) != len(fields) {
		t.Fatalf("expected %d fields, got %d", len(fields), len(parsed))
	}
}

func TestWriteDownload(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := export.WriteDownload(rec, nil); err != nil {
		t.Fatalf("download: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="form-config.json"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "[]" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
