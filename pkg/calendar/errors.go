package calendar

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindAuth     ErrorKind = "auth"
	KindNetwork  ErrorKind = "network"
	KindProvider ErrorKind = "provider"
	KindTimeout  ErrorKind = "timeout"
)

// IntegrationError wraps any failure talking to the provider. None of them
// are retried automatically.
type IntegrationError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *IntegrationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("calendar: %s error (HTTP %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("calendar: %s error: %s", e.Kind, msg)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an IntegrationError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var ie *IntegrationError
	return errors.As(err, &ie) && ie.Kind == kind
}

// Classify wraps a transport-level error. Existing IntegrationErrors pass
// through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var ie *IntegrationError
	if errors.As(err, &ie) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &IntegrationError{Kind: KindTimeout, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &IntegrationError{Kind: KindTimeout, Err: err}
	}
	return &IntegrationError{Kind: KindNetwork, Err: err}
}

// StatusKind maps an HTTP status to an error kind.
func StatusKind(status int) ErrorKind {
	switch status {
	case 401, 403:
		return KindAuth
	case 408, 504:
		return KindTimeout
	}
	return KindProvider
}
