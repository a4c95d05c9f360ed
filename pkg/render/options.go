package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the view.
type RenderOptions struct {
	// Title heads the preview page. Renderers fall back to "Form Preview".
	Title string
	// Subtitle is shown under the title.
	Subtitle string
	// Theme carries resolved go-theme tokens and asset lookups. Nil renders
	// with the built-in palette.
	Theme *theme.RendererConfig
}

// DefaultTitle is used when RenderOptions.Title is empty.
const DefaultTitle = "Form Preview"

// DefaultSubtitle is used when RenderOptions.Subtitle is empty.
const DefaultSubtitle = "Preview how your form will appear to users"

// TitleOrDefault returns the configured title or DefaultTitle.
func (o RenderOptions) TitleOrDefault() string {
	if o.Title != "" {
		return o.Title
	}
	return DefaultTitle
}

// SubtitleOrDefault returns the configured subtitle or DefaultSubtitle.
func (o RenderOptions) SubtitleOrDefault() string {
	if o.Subtitle != "" {
		return o.Subtitle
	}
	return DefaultSubtitle
}
