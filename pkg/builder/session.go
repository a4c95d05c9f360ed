// Package builder ties the field store, preview renderers and exporter into
// one form-building session.
package builder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/model"
	"github.com/goliatone/go-smartexit/pkg/preview"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/renderers/html"
	"github.com/goliatone/go-smartexit/pkg/renderers/text"
	"github.com/goliatone/go-smartexit/pkg/store"
)

var (
	// ErrEmptyForm rejects saving a collection without fields.
	ErrEmptyForm = errors.New("builder: form has no fields")
	// ErrSaveInFlight rejects a save while another is pending.
	ErrSaveInFlight = errors.New("builder: save already in progress")
	// ErrSaveFailed wraps saver errors. Retrying is safe.
	ErrSaveFailed = errors.New("builder: save failed")
)

// EmptyFormMessage is the text shown for ErrEmptyForm.
const EmptyFormMessage = "Please add at least one field to the form"

// DefaultSaveTimeout bounds a single Save call.
const DefaultSaveTimeout = 10 * time.Second

// Option customises a Session.
type Option func(*Session)

// WithStore uses an existing store instead of a fresh one.
func WithStore(s *store.Store) Option {
	return func(sess *Session) {
		if s != nil {
			sess.store = s
		}
	}
}

// WithSaver overrides the default DelaySaver.
func WithSaver(saver Saver) Option {
	return func(sess *Session) {
		if saver != nil {
			sess.saver = saver
		}
	}
}

// WithSaveTimeout bounds each Save. Zero or negative disables the bound.
func WithSaveTimeout(d time.Duration) Option {
	return func(sess *Session) {
		sess.saveTimeout = d
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(sess *Session) {
		if logger != nil {
			sess.logger = logger
		}
	}
}

// WithRegistry injects the renderer registry used by Preview.
func WithRegistry(registry *render.Registry) Option {
	return func(sess *Session) {
		sess.registry = registry
	}
}

// WithClock overrides the time source stamped on submissions.
func WithClock(now func() time.Time) Option {
	return func(sess *Session) {
		if now != nil {
			sess.now = now
		}
	}
}

// Session is one form being composed. Field mutations go straight to the
// store; Save is the only operation that leaves the process.
type Session struct {
	store       *store.Store
	saver       Saver
	saveTimeout time.Duration
	logger      *zap.Logger
	registry    *render.Registry
	now         func() time.Time
	saving      *semaphore.Weighted
	initErr     error
}

// New builds a session. Without WithRegistry the html and text renderers are
// registered, html first.
func New(options ...Option) *Session {
	sess := &Session{
		saver:       DelaySaver{Delay: DefaultSaveLatency},
		saveTimeout: DefaultSaveTimeout,
		logger:      zap.NewNop(),
		now:         time.Now,
		saving:      semaphore.NewWeighted(1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(sess)
	}
	if sess.store == nil {
		sess.store = store.New()
	}
	if sess.registry == nil {
		sess.registry, sess.initErr = defaultRegistry()
	}
	return sess
}

func defaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("builder: html renderer: %w", err)
	}
	textRenderer, err := text.New()
	if err != nil {
		return nil, fmt.Errorf("builder: text renderer: %w", err)
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(textRenderer)
	return registry, nil
}

// Store exposes the underlying collection.
func (s *Session) Store() *store.Store {
	return s.store
}

// Registry exposes the renderer registry.
func (s *Session) Registry() *render.Registry {
	return s.registry
}

// AddField appends a field of type t.
func (s *Session) AddField(t model.FieldType) (model.Field, error) {
	field, err := s.store.Add(t)
	if err != nil {
		return model.Field{}, err
	}
	s.logger.Debug("field added", zap.String("id", string(field.ID)), zap.String("type", string(t)))
	return field, nil
}

// UpdateField sets one attribute. A missing id is a no-op.
func (s *Session) UpdateField(id model.FieldID, key model.Key, value any) error {
	return s.store.Update(id, key, value)
}

// RemoveField drops the field with id, if present.
func (s *Session) RemoveField(id model.FieldID) {
	s.store.Remove(id)
	s.logger.Debug("field removed", zap.String("id", string(id)))
}

// Fields returns the current collection.
func (s *Session) Fields() []model.Field {
	return s.store.Fields()
}

// View projects the collection for previewing.
func (s *Session) View(opts ...preview.Option) preview.View {
	return preview.Build(s.store.Fields(), opts...)
}

// Preview renders the current collection with the named renderer. An empty
// name uses the first registered renderer.
func (s *Session) Preview(ctx context.Context, rendererName string, opts render.RenderOptions, values map[model.FieldID]string) ([]byte, string, error) {
	if s.initErr != nil {
		return nil, "", s.initErr
	}
	if s.registry == nil {
		return nil, "", errors.New("builder: renderer registry is nil")
	}
	renderer, err := s.registry.Get(rendererName)
	if err != nil {
		return nil, "", fmt.Errorf("builder: %w", err)
	}
	out, err := renderer.Render(ctx, s.View(preview.WithValues(values)), opts)
	if err != nil {
		return nil, "", fmt.Errorf("builder: preview: %w", err)
	}
	return out, renderer.ContentType(), nil
}

// Export renders the current collection as form-config JSON.
func (s *Session) Export() ([]byte, error) {
	return export.JSON(s.store.Fields())
}

// Import validates data against the document schema and replaces the
// collection with its fields.
func (s *Session) Import(data []byte) ([]model.Field, error) {
	if err := export.ValidateDocument(data); err != nil {
		return nil, err
	}
	fields, err := export.Parse(data)
	if err != nil {
		return nil, err
	}
	stored, err := export.Replay(s.store, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info("form imported", zap.Int("fields", len(stored)))
	return stored, nil
}

// Validate reports deferred problems in the current collection.
func (s *Session) Validate() []export.Issue {
	return export.Validate(s.store.Fields())
}

// SaveResult summarises a successful Save.
type SaveResult struct {
	Count     int       `json:"count"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Save hands the collection to the saver. Only one save runs at a time; a
// concurrent call fails fast with ErrSaveInFlight. The collection stays
// editable while a save is pending.
func (s *Session) Save(ctx context.Context) (SaveResult, error) {
	if ctx == nil {
		return SaveResult{}, errors.New("builder: context is required")
	}
	fields := s.store.Fields()
	if len(fields) == 0 {
		return SaveResult{}, ErrEmptyForm
	}
	if !s.saving.TryAcquire(1) {
		return SaveResult{}, ErrSaveInFlight
	}
	defer s.saving.Release(1)

	if s.saveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.saveTimeout)
		defer cancel()
	}

	submission := Submission{
		Fields:    export.Definitions(fields),
		CreatedAt: s.now().UTC(),
	}
	start := time.Now()
	if err := s.saver.Save(ctx, submission); err != nil {
		s.logger.Warn("form save failed",
			zap.Int("fields", len(fields)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return SaveResult{}, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	result := SaveResult{
		Count:     len(fields),
		Message:   fmt.Sprintf("%d fields configured", len(fields)),
		CreatedAt: submission.CreatedAt,
	}
	s.logger.Info("form saved",
		zap.Int("fields", result.Count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}
