package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed schema/form-config.schema.json
var documentSchema []byte

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	resolveErr  error
)

// DocumentSchema returns the raw JSON Schema for form-config documents.
func DocumentSchema() []byte {
	return append([]byte(nil), documentSchema...)
}

func resolvedSchema() (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		var schema jsonschema.Schema
		if err := json.Unmarshal(documentSchema, &schema); err != nil {
			resolveErr = fmt.Errorf("export: decode document schema: %w", err)
			return
		}
		resolved, resolveErr = schema.Resolve(&jsonschema.ResolveOptions{})
		if resolveErr != nil {
			resolveErr = fmt.Errorf("export: resolve document schema: %w", resolveErr)
		}
	})
	return resolved, resolveErr
}

// ValidateDocument checks an import payload against the document schema
// before it is parsed.
func ValidateDocument(data []byte) error {
	schema, err := resolvedSchema()
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}
