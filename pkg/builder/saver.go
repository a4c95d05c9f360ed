package builder

import (
	"context"
	"time"

	"github.com/goliatone/go-smartexit/pkg/export"
)

// Submission is the payload handed to a Saver.
type Submission struct {
	Fields    []export.Definition `json:"fields"`
	CreatedAt time.Time           `json:"createdAt"`
}

// Saver persists a submitted form. The builder treats it as a remote call
// that may be slow or fail.
type Saver interface {
	Save(ctx context.Context, submission Submission) error
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(ctx context.Context, submission Submission) error

func (fn SaverFunc) Save(ctx context.Context, submission Submission) error {
	return fn(ctx, submission)
}

// DefaultSaveLatency is the simulated round trip of DelaySaver.
const DefaultSaveLatency = time.Second

// DelaySaver stands in for a backend: it waits Delay and accepts the
// submission. Cancelling ctx aborts the wait.
type DelaySaver struct {
	Delay time.Duration
}

func (d DelaySaver) Save(ctx context.Context, _ Submission) error {
	timer := time.NewTimer(d.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
