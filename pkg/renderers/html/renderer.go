package html

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-smartexit/pkg/preview"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/render/template"
	"github.com/goliatone/go-smartexit/pkg/render/template/pongo"
)

//go:embed templates/*.html templates/partials/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in templates so callers can layer overrides.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

const pageTemplate = "preview"

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithPolicy overrides the sanitizer applied to user-entered labels and
// descriptions.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithThemeSelector resolves a theme for every render that does not carry
// one in its options.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		r.selector = selector
		r.themeName = name
		r.themeVariant = variant
	}
}

// Renderer renders a read-only HTML page for a preview view. Inputs are
// disabled and the form has no submit action.
type Renderer struct {
	engine       template.TemplateRenderer
	policy       *bluemonday.Policy
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := pongo.New(
			pongo.WithFS(TemplatesFS()),
			pongo.WithFilter(render.DateFilter, render.FormatDate),
		)
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of Render output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the preview page template.
func (r *Renderer) Render(ctx context.Context, view preview.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg := opts.Theme
	if themeCfg == nil && r.selector != nil {
		selection, err := r.selector.Select(r.themeName, r.themeVariant)
		if err != nil {
			return nil, fmt.Errorf("html: select theme: %w", err)
		}
		themeCfg = ThemeConfig(selection)
	}

	items := make([]itemData, len(view.Items))
	for i, item := range view.Items {
		items[i] = r.item(item)
	}

	data := map[string]any{
		"title":    opts.TitleOrDefault(),
		"subtitle": opts.SubtitleOrDefault(),
		"items":    items,
		"stats":    view.Stats,
		"theme":    buildThemeData(themeCfg),
	}

	out, err := r.engine.RenderTemplate(pageTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html: render: %w", err)
	}
	return []byte(out), nil
}

type itemData struct {
	preview.Item
	LabelHTML       string `json:"labelHtml"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	MinAttr         string `json:"minAttr,omitempty"`
	MaxAttr         string `json:"maxAttr,omitempty"`
}

func (r *Renderer) item(item preview.Item) itemData {
	return itemData{
		Item:            item,
		LabelHTML:       r.policy.Sanitize(item.Label),
		DescriptionHTML: r.policy.Sanitize(item.Description),
		MinAttr:         formatBound(item.MinValue),
		MaxAttr:         formatBound(item.MaxValue),
	}
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
