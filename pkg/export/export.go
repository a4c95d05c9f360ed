// Package export serializes a field collection into the portable
// form-config document and reads such documents back.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// Filename is the name used for downloaded and written exports.
const Filename = "form-config.json"

// ErrInvalidDocument reports an import payload that cannot be decoded.
var ErrInvalidDocument = errors.New("export: invalid document")

// Definition is one exported field. It carries every attribute of the field
// except its session-local id.
type Definition struct {
	model.Field
}

// Definitions projects fields into id-stripped definitions in collection
// order.
func Definitions(fields []model.Field) []Definition {
	out := make([]Definition, len(fields))
	for i, field := range fields {
		clone := field.Clone()
		clone.ID = ""
		out[i] = Definition{Field: clone}
	}
	return out
}

// JSON renders fields as a two-space indented array. An empty collection
// yields "[]".
func JSON(fields []model.Field) ([]byte, error) {
	payload, err := json.MarshalIndent(Definitions(fields), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal json: %w", err)
	}
	return payload, nil
}

// YAML renders the same document as JSON in YAML form, keeping the key
// order of the JSON encoding.
func YAML(fields []model.Field) ([]byte, error) {
	payload, err := JSON(fields)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(payload, &node); err != nil {
		return nil, fmt.Errorf("export: convert yaml: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("export: marshal yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: marshal yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// resetStyle drops the flow and quoting styles inherited from the JSON
// source so the encoder picks block YAML.
func resetStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}

// Parse decodes a JSON document into fields. Ids present in the document are
// kept; Replay assigns fresh ones.
func Parse(data []byte) ([]model.Field, error) {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	out := make([]model.Field, len(defs))
	for i, def := range defs {
		out[i] = def.Field
	}
	return out, nil
}

// YAMLToJSON converts a YAML document to JSON as written, so it can be
// checked by ValidateDocument before parsing.
func YAMLToJSON(data []byte) ([]byte, error) {
	var raw []any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		raw = []any{}
	}
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return payload, nil
}

// Resetter replaces the contents of a collection.
type Resetter interface {
	Reset(fields []model.Field) ([]model.Field, error)
}

// Replay loads fields into target, which assigns fresh ids. It returns the
// stored fields, or the target's error when it refuses the batch.
func Replay(target Resetter, fields []model.Field) ([]model.Field, error) {
	stored, err := target.Reset(fields)
	if err != nil {
		return nil, fmt.Errorf("export: replay: %w", err)
	}
	return stored, nil
}

// WriteFile writes the JSON export to dir/form-config.json and returns the
// path written.
func WriteFile(dir string, fields []model.Field) (string, error) {
	payload, err := JSON(fields)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, Filename)
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

// WriteDownload streams the JSON export as a file attachment.
func WriteDownload(w http.ResponseWriter, fields []model.Field) error {
	payload, err := JSON(fields)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("export: write response: %w", err)
	}
	return nil
}
