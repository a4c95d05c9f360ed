package store

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-smartexit/pkg/fieldtypes"
	"github.com/goliatone/go-smartexit/pkg/model"
)

// EventKind labels a collection mutation.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventUpdated EventKind = "updated"
	EventRemoved EventKind = "removed"
	EventReset   EventKind = "reset"
)

// Event describes one effective mutation. Key is set for updates only.
type Event struct {
	Kind EventKind
	ID   model.FieldID
	Key  model.Key
}

// Listener observes collection mutations. Listeners run after the store lock
// is released and must not block.
type Listener func(Event)

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator swaps the default monotonic sequence.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithRegistry supplies the field type registry used by Add.
func WithRegistry(reg *fieldtypes.Registry) Option {
	return func(s *Store) {
		if reg != nil {
			s.types = reg
		}
	}
}

// WithListener registers a mutation listener at construction time.
func WithListener(fn Listener) Option {
	return func(s *Store) {
		if fn != nil {
			s.listeners = append(s.listeners, fn)
		}
	}
}

// Store owns the ordered field collection of one editing session and is its
// only mutation surface. Order is insertion order.
type Store struct {
	mu        sync.RWMutex
	fields    []model.Field
	ids       IDGenerator
	types     *fieldtypes.Registry
	listeners []Listener
}

// New creates an empty collection.
func New(options ...Option) *Store {
	s := &Store{
		ids:   NewSequence(0),
		types: fieldtypes.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Subscribe registers a listener after construction.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Add appends a field of type t built from the registry defaults and
// returns a copy of it.
func (s *Store) Add(t model.FieldType) (model.Field, error) {
	field, ok := s.types.DefaultsFor(t)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}

	s.mu.Lock()
	field.ID = s.nextIDLocked()
	s.fields = append(s.fields, field)
	out := field.Clone()
	s.mu.Unlock()

	s.notify(Event{Kind: EventAdded, ID: out.ID})
	return out, nil
}

// Update replaces one attribute of the field matching id. A missing id is a
// no-op and returns nil. Setting isMandatory to true on a field without an
// error message fills in the type default within the same update.
func (s *Store) Update(id model.FieldID, key model.Key, value any) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	updated, err := apply(s.fields[idx], key, value)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.fields[idx] = updated
	s.mu.Unlock()

	s.notify(Event{Kind: EventUpdated, ID: id, Key: key})
	return nil
}

// SetDateRange replaces both date bounds of the field matching id in one
// step. The field is left untouched when either bound is rejected. A missing
// id is a no-op and returns nil.
func (s *Store) SetDateRange(id model.FieldID, minDate, maxDate string) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	updated, err := applyDateRange(s.fields[idx], minDate, maxDate)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.fields[idx] = updated
	s.mu.Unlock()

	s.notify(Event{Kind: EventUpdated, ID: id, Key: model.KeyMinDate})
	s.notify(Event{Kind: EventUpdated, ID: id, Key: model.KeyMaxDate})
	return nil
}

// Remove deletes the field matching id. Missing ids are ignored and other
// IDs are never renumbered.
func (s *Store) Remove(id model.FieldID) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.fields = append(s.fields[:idx], s.fields[idx+1:]...)
	s.mu.Unlock()

	s.notify(Event{Kind: EventRemoved, ID: id})
}

// Get returns a copy of the field matching id.
func (s *Store) Get(id model.FieldID) (model.Field, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return model.Field{}, false
	}
	return s.fields[idx].Clone(), true
}

// Fields returns a deep copy of the collection in order.
func (s *Store) Fields() []model.Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Clone()
	}
	return out
}

// Len reports the number of fields.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// Reset replaces the collection with fields, assigning fresh IDs. Incoming
// IDs are discarded because they are only meaningful to the session that
// produced them. A date field whose minDate falls after its maxDate rejects
// the whole batch and the collection is left as it was.
func (s *Store) Reset(fields []model.Field) ([]model.Field, error) {
	for i, field := range fields {
		if cfg, ok := field.Date(); ok && inverted(cfg.MinDate, cfg.MaxDate) {
			return nil, fmt.Errorf("%w: field %d: %s > %s", ErrInvertedDateRange, i+1, cfg.MinDate, cfg.MaxDate)
		}
	}

	s.mu.Lock()
	s.fields = s.fields[:0]
	for _, field := range fields {
		clone := field.Clone()
		if clone.Config == nil {
			clone.Config = model.NewConfig(clone.Type)
		}
		clone.ID = s.nextIDLocked()
		s.fields = append(s.fields, clone)
	}
	out := make([]model.Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.Clone()
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventReset})
	return out, nil
}

func (s *Store) nextIDLocked() model.FieldID {
	for {
		id := s.ids.NextID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}

func (s *Store) indexLocked(id model.FieldID) int {
	for i := range s.fields {
		if s.fields[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) notify(evt Event) {
	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn(evt)
	}
}
