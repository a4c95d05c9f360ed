package html

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/preview"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/store"
)

func renderFields(t *testing.T, s *store.Store, opts render.RenderOptions) string {
	t.Helper()

	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), preview.Build(s.Fields()), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_RendersReadOnlyWidgets(t *testing.T) {
	s := store.New()
	text, _ := s.Add(model.FieldTypeText)
	_ = s.Update(text.ID, model.KeyName, "personal_email")
	_ = s.Update(text.ID, model.KeyDisplayName, "Personal Email")
	_ = s.Update(text.ID, model.KeyIsMandatory, true)

	check, _ := s.Add(model.FieldTypeCheckbox)
	_ = s.Update(check.ID, model.KeyName, "assets")
	_ = s.Update(check.ID, model.KeyQuestion, "Have you returned all company assets?")

	radio, _ := s.Add(model.FieldTypeRadio)
	_ = s.Update(radio.ID, model.KeyName, "reason")
	_ = s.Update(radio.ID, model.KeyOptions, []string{"Growth", "Relocation"})

	_, _ = s.Add(model.FieldTypeSelect)

	out := renderFields(t, s, render.RenderOptions{})

	assertContains(t, out,
		"<title>Form Preview</title>",
		"4 Fields",
		"1 Required",
		`<label class="field-label" for="personal_email">Personal Email <span class="field-required">*</span></label>`,
		`placeholder="Enter personal email" disabled>`,
		`Have you returned all company assets?</label>`,
		`<input type="checkbox" id="assets-0" name="assets" value="Yes" disabled><label for="assets-0">Yes</label>`,
		`<input type="radio" id="reason-1" name="reason" value="Relocation" disabled>`,
		`<select id="field-4" name="" disabled>`,
	)
	if strings.Contains(out, "<button") || strings.Contains(out, `type="submit"`) {
		t.Fatalf("preview must not be submittable")
	}
	if strings.Count(out, "<option") != 1 {
		t.Fatalf("select without options should only carry the placeholder option")
	}
}

func TestRenderer_SanitizesUserText(t *testing.T) {
	s := store.New()
	field, _ := s.Add(model.FieldTypeText)
	_ = s.Update(field.ID, model.KeyDisplayName, `Name<script>alert(1)</script>`)
	_ = s.Update(field.ID, model.KeyDescription, `Use your <b>legal</b> name <img src=x onerror=alert(1)>`)

	out := renderFields(t, s, render.RenderOptions{})

	if strings.Contains(out, "<script>") || strings.Contains(out, "onerror") {
		t.Fatalf("unsanitized markup leaked:\n%s", out)
	}
	assertContains(t, out, "Use your <b>legal</b> name")
}

func TestRenderer_HiddenAndDateFields(t *testing.T) {
	s := store.New()
	date, _ := s.Add(model.FieldTypeDate)
	_ = s.Update(date.ID, model.KeyName, "last_day")
	_ = s.Update(date.ID, model.KeyDateFormat, "DD-MM-YYYY")
	_ = s.Update(date.ID, model.KeyMinDate, "2025-01-10")
	_ = s.Update(date.ID, model.KeyIsMandatory, true)
	_ = s.Update(date.ID, model.KeyVisibility, "Hide")

	out := renderFields(t, s, render.RenderOptions{Title: "Exit Form"})

	assertContains(t, out,
		"<title>Exit Form</title>",
		`class="preview-field opacity-50"`,
		`min="2025-01-10"`,
		"Earliest allowed date: 10-01-2025",
		`<p class="field-error" role="alert">Please select a valid date within the allowed range</p>`,
	)
}

func TestRenderer_EmptyView(t *testing.T) {
	out := renderFields(t, store.New(), render.RenderOptions{})
	assertContains(t, out, "0 Fields", "No enabled fields to preview")
}

func TestRenderer_ThemeOptions(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{"--brand": "#123456"},
		AssetURL: func(key string) string {
			return "/themes/acme/" + key + ".css"
		},
	}
	out := renderFields(t, store.New(), render.RenderOptions{Theme: cfg})

	assertContains(t, out,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`style="--brand: #123456"`,
		`<link rel="stylesheet" href="/themes/acme/stylesheet.css">`,
	)
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     int
}

func (s *stubSelector) Select(_, _ string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls++
	return s.selection, s.err
}

func TestRenderer_ThemeSelector(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#123456"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"brand": "#000000"}},
			},
		},
	}}
	r, err := New(WithThemeSelector(selector, "acme", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), preview.View{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if selector.calls != 1 {
		t.Fatalf("expected selector called once, got %d", selector.calls)
	}
	assertContains(t, string(out), `style="--brand: #000000"`)

	selector.err = errors.New("unknown theme")
	if _, err := r.Render(context.Background(), preview.View{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected selector error to surface")
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, preview.View{}, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestThemeConfig_VariantOverlay(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "surface": "#ffffff"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme/",
			Files:  map[string]string{StylesheetAsset: "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"surface": "#111111"},
				Assets: theme.Assets{Files: map[string]string{StylesheetAsset: "theme.dark.css"}},
			},
		},
	}

	cfg := ThemeConfig(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest})
	if cfg.CSSVars["--brand"] != "#123456" || cfg.CSSVars["--surface"] != "#111111" {
		t.Fatalf("unexpected css vars %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL(StylesheetAsset); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected stylesheet url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
	if manifest.Tokens["surface"] != "#ffffff" {
		t.Fatalf("variant overlay mutated the manifest")
	}

	if ThemeConfig(nil) != nil {
		t.Fatalf("nil selection should yield nil config")
	}
}
