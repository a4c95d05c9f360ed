package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-smartexit/pkg/builder"
	"github.com/goliatone/go-smartexit/pkg/calendar"
	"github.com/goliatone/go-smartexit/pkg/export"
	"github.com/goliatone/go-smartexit/pkg/render"
	"github.com/goliatone/go-smartexit/pkg/scheduler"
	"github.com/goliatone/go-smartexit/pkg/store"
)

type errorResponse struct {
	Errors []string `json:"errors"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, messages ...string) {
	respondJSON(w, status, errorResponse{Errors: messages})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Sugar().Warnw("request failed",
			"request_id", RequestID(r.Context()),
			"status", status,
			"error", err,
		)
	}
	respondError(w, status, userMessage(err))
}

// userMessage replaces sentinels that reach people filling in the builder or
// the scheduling form with their display text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, builder.ErrEmptyForm):
		return builder.EmptyFormMessage
	case errors.Is(err, scheduler.ErrMissingDateTime):
		return scheduler.MissingDateTimeMessage
	}
	return err.Error()
}

// statusFor maps domain errors onto HTTP status codes. Timeouts are checked
// before save and provider failures because both wrap the deadline.
func statusFor(err error) int {
	var integration *calendar.IntegrationError
	switch {
	case errors.Is(err, builder.ErrEmptyForm),
		errors.Is(err, export.ErrInvalidDocument),
		errors.Is(err, scheduler.ErrMissingDateTime),
		errors.Is(err, scheduler.ErrUnknownSlot),
		errors.Is(err, scheduler.ErrInvalidDuration),
		errors.Is(err, calendar.ErrInvalidEvent),
		errors.Is(err, render.ErrRendererNotFound):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnknownFieldType),
		errors.Is(err, store.ErrUnknownKey),
		errors.Is(err, store.ErrKeyNotApplicable),
		errors.Is(err, store.ErrInvalidValue),
		errors.Is(err, store.ErrInvalidDate),
		errors.Is(err, store.ErrInvalidDateFormat),
		errors.Is(err, store.ErrInvertedDateRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, builder.ErrSaveInFlight),
		errors.Is(err, scheduler.ErrScheduleInFlight):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded),
		calendar.IsKind(err, calendar.KindTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, builder.ErrSaveFailed),
		errors.As(err, &integration):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
