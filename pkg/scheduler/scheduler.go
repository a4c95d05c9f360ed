// Package scheduler books exit interviews through a calendar.Client.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/goliatone/go-smartexit/pkg/calendar"
)

var (
	// ErrMissingDateTime is returned when the date or slot is absent.
	ErrMissingDateTime = errors.New("scheduler: date and time are required")
	// ErrUnknownSlot rejects start times outside Slots.
	ErrUnknownSlot = errors.New("scheduler: unknown time slot")
	// ErrInvalidDuration rejects durations outside Durations.
	ErrInvalidDuration = errors.New("scheduler: unsupported duration")
	// ErrScheduleInFlight rejects a request while another is pending.
	ErrScheduleInFlight = errors.New("scheduler: a meeting is already being scheduled")
)

// MissingDateTimeMessage is the text shown for ErrMissingDateTime.
const MissingDateTimeMessage = "Please select both date and time"

// DefaultTimeout bounds one provider call.
const DefaultTimeout = 30 * time.Second

// ScheduledTimeLayout formats Meeting.ScheduledTime.
const ScheduledTimeLayout = time.RFC3339

// Request describes the interview to book. Date supplies the calendar day
// only; Slot supplies the time of day.
type Request struct {
	EmployeeName  string        `json:"employeeName"`
	EmployeeEmail string        `json:"employeeEmail"`
	HREmail       string        `json:"hrEmail"`
	Date          time.Time     `json:"date"`
	Slot          *Slot         `json:"slot,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// Meeting is a booked interview.
type Meeting struct {
	EventLink     string        `json:"eventLink,omitempty"`
	MeetLink      string        `json:"meetLink,omitempty"`
	EventID       string        `json:"eventId,omitempty"`
	ScheduledTime string        `json:"scheduledTime"`
	Duration      time.Duration `json:"duration"`
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLocation sets the zone slots are interpreted in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

// WithHREmail fills Request.HREmail when a caller leaves it empty.
func WithHREmail(email string) Option {
	return func(s *Scheduler) {
		s.hrEmail = strings.TrimSpace(email)
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler turns interview requests into calendar events. One request runs
// at a time.
type Scheduler struct {
	client   calendar.Client
	location *time.Location
	timeout  time.Duration
	hrEmail  string
	logger   *zap.Logger
	inFlight *semaphore.Weighted
}

// New builds a Scheduler around client.
func New(client calendar.Client, options ...Option) *Scheduler {
	s := &Scheduler{
		client:   client,
		location: time.Local,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
		inFlight: semaphore.NewWeighted(1),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Location reports the zone slots are interpreted in.
func (s *Scheduler) Location() *time.Location {
	return s.location
}

// Plan computes the event for req without contacting the provider.
func (s *Scheduler) Plan(req Request) (calendar.Event, error) {
	if req.Date.IsZero() || req.Slot == nil {
		return calendar.Event{}, ErrMissingDateTime
	}
	if _, err := ParseSlot(req.Slot.String()); err != nil {
		return calendar.Event{}, err
	}
	duration := req.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	if !validDuration(duration) {
		return calendar.Event{}, fmt.Errorf("%w: %s", ErrInvalidDuration, duration)
	}

	hrEmail := req.HREmail
	if hrEmail == "" {
		hrEmail = s.hrEmail
	}
	var attendees []string
	for _, email := range []string{req.EmployeeEmail, hrEmail} {
		if email = strings.TrimSpace(email); email != "" {
			attendees = append(attendees, email)
		}
	}

	year, month, day := req.Date.Date()
	start := time.Date(year, month, day, req.Slot.Hour, req.Slot.Minute, 0, 0, s.location)
	event := calendar.Event{
		Summary:     "Exit Interview - " + req.EmployeeName,
		Description: "Exit Interview meeting with " + req.EmployeeName,
		Start:       start,
		End:         start.Add(duration),
		TimeZone:    s.location.String(),
		Attendees:   attendees,
	}
	if err := event.Validate(); err != nil {
		return calendar.Event{}, err
	}
	return event, nil
}

// Schedule books the interview. Failures from the provider come back as
// *calendar.IntegrationError and are not retried.
func (s *Scheduler) Schedule(ctx context.Context, req Request) (Meeting, error) {
	if ctx == nil {
		return Meeting{}, errors.New("scheduler: context is required")
	}
	if s.client == nil {
		return Meeting{}, errors.New("scheduler: calendar client is nil")
	}
	event, err := s.Plan(req)
	if err != nil {
		return Meeting{}, err
	}
	if !s.inFlight.TryAcquire(1) {
		return Meeting{}, ErrScheduleInFlight
	}
	defer s.inFlight.Release(1)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := s.logger.With(
		zap.String("employee", req.EmployeeName),
		zap.Time("start", event.Start),
	)
	result, err := s.client.CreateEvent(ctx, event)
	if err != nil {
		err = calendar.Classify(err)
		logger.Warn("exit interview scheduling failed", zap.Error(err))
		return Meeting{}, err
	}
	logger.Info("exit interview scheduled", zap.String("event_id", result.EventID))

	return Meeting{
		EventLink:     result.EventLink,
		MeetLink:      result.MeetLink,
		EventID:       result.EventID,
		ScheduledTime: event.Start.Format(ScheduledTimeLayout),
		Duration:      event.End.Sub(event.Start),
	}, nil
}
