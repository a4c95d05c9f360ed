package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_Validate(t *testing.T) {
	start := time.Date(2025, 2, 10, 11, 0, 0, 0, time.UTC)
	valid := Event{Summary: "Exit Interview - Ada", Start: start, End: start.Add(30 * time.Minute), Attendees: []string{"ada@example.com"}}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(e *Event){
		"no summary":     func(e *Event) { e.Summary = " " },
		"no start":       func(e *Event) { e.Start = time.Time{} },
		"end before":     func(e *Event) { e.End = e.Start.Add(-time.Minute) },
		"zero length":    func(e *Event) { e.End = e.Start },
		"no attendees":   func(e *Event) { e.Attendees = nil },
		"empty attendee": func(e *Event) { e.Attendees = []string{"ada@example.com", ""} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			event := valid
			event.Attendees = append([]string(nil), valid.Attendees...)
			mutate(&event)
			assert.ErrorIs(t, event.Validate(), ErrInvalidEvent)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.True(t, IsKind(Classify(fmt.Errorf("post: %w", context.DeadlineExceeded)), KindTimeout))
	assert.True(t, IsKind(Classify(errors.New("connection refused")), KindNetwork))

	auth := &IntegrationError{Kind: KindAuth, StatusCode: 401, Message: "Invalid Credentials"}
	assert.Same(t, auth, Classify(auth))
	assert.Equal(t, "calendar: auth error (HTTP 401): Invalid Credentials", auth.Error())
	assert.Equal(t, KindProvider, StatusKind(500))
	assert.Equal(t, KindAuth, StatusKind(403))
}
