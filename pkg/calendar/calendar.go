// Package calendar defines the contract between the meeting scheduler and
// an external calendar provider.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidEvent reports an event rejected before any provider call.
var ErrInvalidEvent = errors.New("calendar: invalid event")

// Event is a meeting to create. Start and End are absolute instants;
// TimeZone names the zone the provider should display them in.
type Event struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	TimeZone    string    `json:"timeZone,omitempty"`
	Attendees   []string  `json:"attendees"`
}

// Validate checks the invariants every provider relies on.
func (e Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Summary) == "":
		return fmt.Errorf("%w: summary is required", ErrInvalidEvent)
	case e.Start.IsZero() || e.End.IsZero():
		return fmt.Errorf("%w: start and end are required", ErrInvalidEvent)
	case !e.Start.Before(e.End):
		return fmt.Errorf("%w: start must be before end", ErrInvalidEvent)
	case len(e.Attendees) == 0:
		return fmt.Errorf("%w: at least one attendee is required", ErrInvalidEvent)
	}
	for _, attendee := range e.Attendees {
		if strings.TrimSpace(attendee) == "" {
			return fmt.Errorf("%w: attendee email is empty", ErrInvalidEvent)
		}
	}
	return nil
}

// Result identifies the created event.
type Result struct {
	EventLink string `json:"eventLink,omitempty"`
	MeetLink  string `json:"meetLink,omitempty"`
	EventID   string `json:"eventId,omitempty"`
}

// Client creates calendar events.
type Client interface {
	CreateEvent(ctx context.Context, event Event) (Result, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, event Event) (Result, error)

func (fn ClientFunc) CreateEvent(ctx context.Context, event Event) (Result, error) {
	return fn(ctx, event)
}
