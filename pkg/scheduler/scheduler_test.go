package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-smartexit/pkg/calendar"
)

func slot(t *testing.T, raw string) *Slot {
	t.Helper()
	s, err := ParseSlot(raw)
	require.NoError(t, err)
	return &s
}

func baseRequest(t *testing.T) Request {
	return Request{
		EmployeeName:  "Ada Lovelace",
		EmployeeEmail: "ada@example.com",
		HREmail:       "hr@example.com",
		Date:          time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Slot:          slot(t, "1:30 PM"),
		Duration:      90 * time.Minute,
	}
}

func TestSlots(t *testing.T) {
	slots := Slots()
	require.Len(t, slots, 11)
	assert.Equal(t, "11:00 AM", slots[0].String())
	assert.Equal(t, "12:00 PM", slots[2].String())
	assert.Equal(t, "4:00 PM", slots[10].String())

	_, err := ParseSlot("4:30 PM")
	assert.ErrorIs(t, err, ErrUnknownSlot)
	_, err = ParseSlot("noon")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	parsed := slot(t, " 2:30 pm ")
	assert.Equal(t, Slot{Hour: 14, Minute: 30}, *parsed)

	var fromJSON Slot
	require.NoError(t, fromJSON.UnmarshalText([]byte("11:30 AM")))
	assert.Equal(t, Slot{Hour: 11, Minute: 30}, fromJSON)
}

func TestPlan(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	s := New(nil, WithLocation(loc))

	event, err := s.Plan(baseRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "Exit Interview - Ada Lovelace", event.Summary)
	assert.Equal(t, "Exit Interview meeting with Ada Lovelace", event.Description)
	assert.Equal(t, time.Date(2025, 2, 10, 13, 30, 0, 0, loc), event.Start)
	assert.Equal(t, 90*time.Minute, event.End.Sub(event.Start))
	assert.Equal(t, []string{"ada@example.com", "hr@example.com"}, event.Attendees)
	assert.Equal(t, "IST", event.TimeZone)
}

func TestPlan_Validation(t *testing.T) {
	s := New(nil, WithHREmail("people@example.com"))

	req := baseRequest(t)
	req.Slot = nil
	_, err := s.Plan(req)
	assert.ErrorIs(t, err, ErrMissingDateTime)
	assert.Equal(t, "scheduler: date and time are required", err.Error())

	req = baseRequest(t)
	req.Date = time.Time{}
	_, err = s.Plan(req)
	assert.ErrorIs(t, err, ErrMissingDateTime)

	req = baseRequest(t)
	req.Duration = 45 * time.Minute
	_, err = s.Plan(req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	req = baseRequest(t)
	req.Duration = 0
	req.HREmail = ""
	event, err := s.Plan(req)
	require.NoError(t, err)
	assert.Equal(t, DefaultDuration, event.End.Sub(event.Start))
	assert.Equal(t, []string{"ada@example.com", "people@example.com"}, event.Attendees)

	lone := New(nil)
	req = baseRequest(t)
	req.EmployeeEmail, req.HREmail = "", ""
	_, err = lone.Plan(req)
	assert.ErrorIs(t, err, calendar.ErrInvalidEvent)
}

func TestSchedule_Success(t *testing.T) {
	var got calendar.Event
	client := calendar.ClientFunc(func(ctx context.Context, event calendar.Event) (calendar.Result, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		got = event
		return calendar.Result{EventLink: "https://cal/e1", MeetLink: "https://meet/e1", EventID: "e1"}, nil
	})
	s := New(client, WithLocation(time.UTC))

	meeting, err := s.Schedule(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.Equal(t, Meeting{
		EventLink:     "https://cal/e1",
		MeetLink:      "https://meet/e1",
		EventID:       "e1",
		ScheduledTime: "2025-02-10T13:30:00Z",
		Duration:      90 * time.Minute,
	}, meeting)
	assert.Equal(t, "Exit Interview - Ada Lovelace", got.Summary)
}

func TestSchedule_ValidationSkipsProvider(t *testing.T) {
	calls := 0
	s := New(calendar.ClientFunc(func(context.Context, calendar.Event) (calendar.Result, error) {
		calls++
		return calendar.Result{}, nil
	}))
	req := baseRequest(t)
	req.Slot = nil
	_, err := s.Schedule(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingDateTime)
	assert.Zero(t, calls)
}

func TestSchedule_RejectsConcurrentRequests(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	s := New(calendar.ClientFunc(func(context.Context, calendar.Event) (calendar.Result, error) {
		close(entered)
		<-release
		return calendar.Result{EventID: "e1"}, nil
	}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Schedule(context.Background(), baseRequest(t))
		assert.NoError(t, err)
	}()
	<-entered

	_, err := s.Schedule(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrScheduleInFlight)

	close(release)
	wg.Wait()
}

func TestSchedule_Timeout(t *testing.T) {
	s := New(calendar.ClientFunc(func(ctx context.Context, _ calendar.Event) (calendar.Result, error) {
		<-ctx.Done()
		return calendar.Result{}, ctx.Err()
	}), WithTimeout(10*time.Millisecond))

	_, err := s.Schedule(context.Background(), baseRequest(t))
	assert.True(t, calendar.IsKind(err, calendar.KindTimeout), "got %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSchedule_ProviderErrorPassesThrough(t *testing.T) {
	auth := &calendar.IntegrationError{Kind: calendar.KindAuth, StatusCode: 401, Message: "Invalid Credentials"}
	s := New(calendar.ClientFunc(func(context.Context, calendar.Event) (calendar.Result, error) {
		return calendar.Result{}, auth
	}))

	_, err := s.Schedule(context.Background(), baseRequest(t))
	var ie *calendar.IntegrationError
	require.True(t, errors.As(err, &ie))
	assert.Same(t, auth, ie)
}
