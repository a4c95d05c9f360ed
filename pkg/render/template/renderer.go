package template

// TemplateRenderer executes a named template. The engine's file extension may
// be omitted from name.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}

// FilterFunc transforms a template value. param is nil when the filter is
// used without an argument.
type FilterFunc func(input any, param any) (any, error)
