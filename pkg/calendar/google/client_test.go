package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/goliatone/go-smartexit/pkg/calendar"
)

var stamp = time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), Config{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
		Now:     func() time.Time { return stamp },
	})
	require.NoError(t, err)
	return client
}

func sampleEvent() calendar.Event {
	start := time.Date(2025, 2, 10, 11, 30, 0, 0, time.UTC)
	return calendar.Event{
		Summary:     "Exit Interview - Ada Lovelace",
		Description: "Exit Interview meeting with Ada Lovelace",
		Start:       start,
		End:         start.Add(time.Hour),
		TimeZone:    "UTC",
		Attendees:   []string{"ada@example.com", "hr@example.com"},
	}
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(context.Background(), Config{BaseURL: "https://example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")

	_, err = NewClient(context.Background(), Config{BaseURL: "::bad", Token: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid base URL")

	client, err := NewClient(context.Background(), Config{Token: "x"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultCalendarID, client.calendarID)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestCreateEvent_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var payload map[string]any
		if !assert.NoError(t, json.Unmarshal(body, &payload)) {
			return
		}

		assert.Equal(t, "Exit Interview - Ada Lovelace", payload["summary"])
		start := payload["start"].(map[string]any)
		assert.Equal(t, "2025-02-10T11:30:00Z", start["dateTime"])
		assert.Equal(t, "UTC", start["timeZone"])
		attendees := payload["attendees"].([]any)
		assert.Len(t, attendees, 2)
		create := payload["conferenceData"].(map[string]any)["createRequest"].(map[string]any)
		assert.Equal(t, "meet-1738573200000", create["requestId"])
		assert.Equal(t, "hangoutsMeet", create["conferenceSolutionKey"].(map[string]any)["type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "evt-42",
			"htmlLink": "https://calendar.google.com/event?eid=evt-42",
			"conferenceData": {"entryPoints": [
				{"entryPointType": "phone", "uri": "tel:+1-555-0100"},
				{"entryPointType": "video", "uri": "https://meet.google.com/abc-defg-hij"}
			]}
		}`)
	}))
	defer server.Close()

	result, err := newTestClient(t, server).CreateEvent(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.Equal(t, calendar.Result{
		EventLink: "https://calendar.google.com/event?eid=evt-42",
		MeetLink:  "https://meet.google.com/abc-defg-hij",
		EventID:   "evt-42",
	}, result)
}

func TestCreateEvent_FirstEntryPointFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"e1","conferenceData":{"entryPoints":[{"uri":"https://meet.example/x"}]}}`)
	}))
	defer server.Close()

	result, err := newTestClient(t, server).CreateEvent(context.Background(), sampleEvent())
	require.NoError(t, err)
	assert.Equal(t, "https://meet.example/x", result.MeetLink)
	assert.Empty(t, result.EventLink)
}

func TestCreateEvent_ErrorKinds(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    calendar.ErrorKind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":401,"message":"Invalid Credentials"}}`, calendar.KindAuth, "Invalid Credentials"},
		{"forbidden", http.StatusForbidden, `{"error":{"message":"Insufficient Permission"}}`, calendar.KindAuth, "Insufficient Permission"},
		{"server", http.StatusInternalServerError, `oops`, calendar.KindProvider, "oops"},
		{"gateway timeout", http.StatusGatewayTimeout, ``, calendar.KindTimeout, "Gateway Timeout"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer server.Close()

			_, err := newTestClient(t, server).CreateEvent(context.Background(), sampleEvent())
			var ie *calendar.IntegrationError
			require.True(t, errors.As(err, &ie), "expected IntegrationError, got %v", err)
			assert.Equal(t, tc.kind, ie.Kind)
			assert.Equal(t, tc.status, ie.StatusCode)
			assert.Equal(t, tc.message, ie.Message)
		})
	}
}

func TestCreateEvent_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(t, server).CreateEvent(ctx, sampleEvent())
	require.Error(t, err)
	assert.True(t, calendar.IsKind(err, calendar.KindTimeout), "got %v", err)
}

func TestCreateEvent_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := newTestClient(t, server)
	server.Close()

	_, err := client.CreateEvent(context.Background(), sampleEvent())
	assert.True(t, calendar.IsKind(err, calendar.KindNetwork), "got %v", err)
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) {
	return nil, &oauth2.RetrieveError{ErrorCode: "invalid_grant"}
}

func TestCreateEvent_TokenFailureIsAuth(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, err := NewClient(context.Background(), Config{BaseURL: server.URL, TokenSource: failingSource{}})
	require.NoError(t, err)

	_, err = client.CreateEvent(context.Background(), sampleEvent())
	assert.True(t, calendar.IsKind(err, calendar.KindAuth), "got %v", err)
}

func TestCreateEvent_RejectsInvalidEvent(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer server.Close()

	event := sampleEvent()
	event.End = event.Start
	_, err := newTestClient(t, server).CreateEvent(context.Background(), event)
	assert.ErrorIs(t, err, calendar.ErrInvalidEvent)
	assert.False(t, called)
}
