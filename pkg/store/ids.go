package store

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/goliatone/go-smartexit/pkg/model"
)

// IDGenerator allocates field identifiers. Implementations must be safe for
// concurrent use; the store additionally skips any ID already in use.
type IDGenerator interface {
	NextID() model.FieldID
}

// Sequence is a monotonic counter starting at 1.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence returns a counter whose first ID is start+1.
func NewSequence(start uint64) *Sequence {
	seq := &Sequence{}
	seq.next.Store(start)
	return seq
}

// NextID returns the next decimal ID.
func (s *Sequence) NextID() model.FieldID {
	return model.FieldID(strconv.FormatUint(s.next.Add(1), 10))
}

// UUIDs generates random v4 identifiers.
type UUIDs struct{}

// NextID returns a fresh UUID string.
func (UUIDs) NextID() model.FieldID {
	return model.FieldID(uuid.NewString())
}
