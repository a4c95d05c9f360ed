package export

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/preview"
)

// SubmissionSchema describes the object an end user would submit for the
// enabled fields. Properties are keyed by field name; unnamed fields are
// skipped because they cannot be addressed in a submission.
func SubmissionSchema(fields []model.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = openapi3.Schemas{}

	for _, field := range preview.Enabled(fields) {
		if field.Name == "" {
			continue
		}
		prop := propertySchema(field)
		if label := field.Label(); label != "" {
			prop.Title = label
		}
		prop.Description = field.Description
		schema.Properties[field.Name] = openapi3.NewSchemaRef("", prop)
		if field.IsMandatory {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func propertySchema(field model.Field) *openapi3.Schema {
	switch field.Type {
	case model.FieldTypeNumber:
		s := openapi3.NewFloat64Schema()
		if num, ok := field.Number(); ok {
			if num.MinValue != nil {
				s = s.WithMin(*num.MinValue)
			}
			if num.MaxValue != nil {
				s = s.WithMax(*num.MaxValue)
			}
		}
		return s
	case model.FieldTypeEmail:
		return openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeDate:
		return openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeFile:
		return openapi3.NewStringSchema().WithFormat("binary")
	case model.FieldTypeSwitch:
		return openapi3.NewStringSchema().WithEnum("on", "off")
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return withChoices(openapi3.NewStringSchema(), field.Options())
	case model.FieldTypeMultiSelect, model.FieldTypeCheckbox:
		items := withChoices(openapi3.NewStringSchema(), field.Options())
		return openapi3.NewArraySchema().WithItems(items)
	}
	return openapi3.NewStringSchema()
}

func withChoices(s *openapi3.Schema, options []string) *openapi3.Schema {
	if len(options) == 0 {
		return s
	}
	seen := make(map[string]struct{}, len(options))
	values := make([]any, 0, len(options))
	for _, option := range options {
		if _, dup := seen[option]; dup {
			continue
		}
		seen[option] = struct{}{}
		values = append(values, option)
	}
	return s.WithEnum(values...)
}
