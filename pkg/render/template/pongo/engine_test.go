package pongo_test

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-smartexit/pkg/preview"
	"github.com/goliatone/go-smartexit/pkg/render/template/pongo"
	"github.com/goliatone/go-smartexit/pkg/testsupport"
)

//go:embed testdata/templates/*.html
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...pongo.Option) *pongo.Engine {
	t.Helper()

	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(append([]pongo.Option{pongo.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}

	again, err := engine.RenderTemplate("hello.html", map[string]any{"name": "Ada"})
	if err != nil || again != want {
		t.Fatalf("explicit extension: %q, %v", again, err)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine := newEngine(t, pongo.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	view := preview.View{Stats: preview.Stats{Enabled: 3, Required: 1}}
	result, err := engine.RenderTemplate("stats", view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "3 fields, 1 required\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_Autoescapes(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{"label": "<b>Assets</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(result, "&lt;b&gt;Assets&lt;/b&gt;") {
		t.Fatalf("expected escaped label, got %q", result)
	}
}

func TestEngine_Filters(t *testing.T) {
	engine := newEngine(t, pongo.WithFilter("shout", func(input any, _ any) (any, error) {
		return strings.ToUpper(fmt.Sprint(input)) + "!", nil
	}))

	result, err := engine.RenderTemplate("filters", map[string]any{
		"vars": map[string]any{"--surface": "#fff", "--brand": "#123456"},
		"word": "bye",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "--brand: #123456; --surface: #fff\nBYE!\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without templates")
	}
}
