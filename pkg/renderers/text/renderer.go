// Package text renders a preview as plain text for terminals.
package text

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-smartexit/pkg/preview"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/render/template"
	"github.com/goliatone/go-smartexit/pkg/render/template/pongo"
)

//go:embed templates/*.txt
var embeddedTemplates embed.FS

const pageTemplate = "preview.txt"

// Option configures the text renderer.
type Option func(*Renderer)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// Renderer prints one line per enabled field plus its choices.
type Renderer struct {
	engine template.TemplateRenderer
	strip  *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded template.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{strip: bluemonday.StrictPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("text: templates: %w", err)
		}
		engine, err := pongo.New(
			pongo.WithFS(sub),
			pongo.WithExtension(".txt"),
			pongo.WithFilter(render.DateFilter, render.FormatDate),
		)
		if err != nil {
			return nil, fmt.Errorf("text: template engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

func (r *Renderer) Name() string { return "text" }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render executes the text template.
func (r *Renderer) Render(ctx context.Context, view preview.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("text: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]itemData, len(view.Items))
	for i, item := range view.Items {
		items[i] = itemData{
			Item:             item,
			PlainLabel:       r.strip.Sanitize(item.Label),
			PlainDescription: r.strip.Sanitize(item.Description),
		}
	}
	out, err := r.engine.RenderTemplate(pageTemplate, map[string]any{
		"title":    opts.TitleOrDefault(),
		"subtitle": opts.SubtitleOrDefault(),
		"items":    items,
		"stats":    view.Stats,
	})
	if err != nil {
		return nil, fmt.Errorf("text: render: %w", err)
	}
	return []byte(out), nil
}

type itemData struct {
	preview.Item
	PlainLabel       string `json:"plainLabel"`
	PlainDescription string `json:"plainDescription,omitempty"`
}
