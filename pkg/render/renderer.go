package render

import (
	"context"

	"github.com/goliatone/go-smartexit/pkg/preview"
)

// Renderer converts a preview view into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view preview.View, options RenderOptions) ([]byte, error)
}
