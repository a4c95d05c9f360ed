package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-smartexit/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files   fs.FS
	ext     string
	globals map[string]any
	filters map[string]template.FilterFunc
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.files = files
	}
}

// WithExtension overrides the default ".html" extension appended to names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.ext = ext
	}
}

// WithGlobalData seeds values visible to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// WithFilter makes fn available to templates as name. pongo2 keeps filters
// in a process-wide table, so the first function registered under a name is
// the one every engine uses.
func WithFilter(name string, fn template.FilterFunc) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" && fn != nil {
			cfg.filters[name] = fn
		}
	}
}

// Engine renders named templates from a pongo2 template set. Parsed
// templates are cached by file name.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine. An fs.FS is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{
		ext:     ".html",
		globals: map[string]any{},
		filters: map[string]template.FilterFunc{"cssvars": cssVars},
	}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.files == nil {
		return nil, errors.New("pongo: a template fs.FS is required")
	}

	for name, fn := range cfg.filters {
		if err := registerFilter(name, fn); err != nil {
			return nil, err
		}
	}

	globals, err := toContext(cfg.globals)
	if err != nil {
		return nil, fmt.Errorf("pongo: global data: %w", err)
	}
	set := pongo2.NewSet("smartexit", pongo2.NewFSLoader(cfg.files))
	set.Globals = globals

	return &Engine{
		set:   set,
		ext:   cfg.ext,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes the named template with data. Structs are seen by
// templates under their JSON names.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: %s data: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %s: %w", name, err)
	}
	e.cache[name] = tmpl
	return tmpl, nil
}

var filterMu sync.Mutex

func registerFilter(name string, fn template.FilterFunc) error {
	filterMu.Lock()
	defer filterMu.Unlock()
	if pongo2.FilterExists(name) {
		return nil
	}
	err := pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	})
	if err != nil {
		return fmt.Errorf("pongo: register filter %s: %w", name, err)
	}
	return nil
}

// toContext round-trips data through JSON so templates address fields by
// their JSON names. Integral numbers come back as ints since pongo2 prints
// floats with six decimals.
func toContext(data any) (pongo2.Context, error) {
	if data == nil {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded map[string]any
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("data must encode as an object: %w", err)
	}
	for key, value := range decoded {
		decoded[key] = numbers(value)
	}
	return pongo2.Context(decoded), nil
}

func numbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		f, _ := v.Float64()
		return f
	case map[string]any:
		for key, item := range v {
			v[key] = numbers(item)
		}
	case []any:
		for i, item := range v {
			v[i] = numbers(item)
		}
	}
	return value
}

// cssVars renders a map of custom properties as "--a: 1; --b: 2" sorted by
// key.
func cssVars(input any, _ any) (any, error) {
	vars, ok := input.(map[string]any)
	if !ok || len(vars) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s: %v", key, vars[key])
	}
	return strings.Join(parts, "; "), nil
}
