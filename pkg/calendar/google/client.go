// Package google creates calendar events with a Google Meet link through the
// Calendar v3 REST API.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"

	"github.com/goliatone/go-smartexit/pkg/calendar"
)

const (
	DefaultBaseURL    = "https://www.googleapis.com/calendar/v3"
	DefaultCalendarID = "primary"
	DefaultTimeout    = 30 * time.Second
)

// Config holds the settings for NewClient. Either Token or TokenSource is
// required.
type Config struct {
	BaseURL     string
	CalendarID  string
	Token       string
	TokenSource oauth2.TokenSource
	Timeout     time.Duration
	// Now stamps conference request ids. Defaults to time.Now.
	Now func() time.Time
}

// Client is a calendar.Client backed by Google Calendar.
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
	now        func() time.Time
}

var _ calendar.Client = (*Client)(nil)

// NewClient builds an authenticated client. ctx only scopes the oauth2 HTTP
// client; pass a context carrying oauth2.HTTPClient to swap the transport.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("google: invalid base URL: %w", err)
	}

	source := cfg.TokenSource
	if source == nil {
		if cfg.Token == "" {
			return nil, errors.New("google: token is required")
		}
		source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := oauth2.NewClient(ctx, source)
	httpClient.Timeout = timeout

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = DefaultCalendarID
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		httpClient: httpClient,
		now:        now,
	}, nil
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

type attendee struct {
	Email string `json:"email"`
}

type eventRequest struct {
	Summary        string         `json:"summary"`
	Description    string         `json:"description"`
	Start          eventTime      `json:"start"`
	End            eventTime      `json:"end"`
	Attendees      []attendee     `json:"attendees"`
	ConferenceData conferenceData `json:"conferenceData"`
}

type conferenceData struct {
	CreateRequest createRequest `json:"createRequest"`
}

type createRequest struct {
	RequestID             string                `json:"requestId"`
	ConferenceSolutionKey conferenceSolutionKey `json:"conferenceSolutionKey"`
}

type conferenceSolutionKey struct {
	Type string `json:"type"`
}

// CreateEvent inserts event and asks the provider for a Meet conference.
func (c *Client) CreateEvent(ctx context.Context, event calendar.Event) (calendar.Result, error) {
	if err := event.Validate(); err != nil {
		return calendar.Result{}, err
	}

	body, err := json.Marshal(c.request(event))
	if err != nil {
		return calendar.Result{}, fmt.Errorf("google: marshal event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/calendars/%s/events?conferenceDataVersion=1", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return calendar.Result{}, fmt.Errorf("google: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var retrieve *oauth2.RetrieveError
		if errors.As(err, &retrieve) {
			return calendar.Result{}, &calendar.IntegrationError{Kind: calendar.KindAuth, Err: err}
		}
		return calendar.Result{}, calendar.Classify(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return calendar.Result{}, calendar.Classify(err)
	}
	if resp.StatusCode >= 400 {
		return calendar.Result{}, errorFromResponse(resp.StatusCode, payload)
	}
	if !gjson.ValidBytes(payload) {
		return calendar.Result{}, &calendar.IntegrationError{
			Kind:       calendar.KindProvider,
			StatusCode: resp.StatusCode,
			Message:    "response is not valid JSON",
		}
	}

	doc := gjson.ParseBytes(payload)
	meet := doc.Get(`conferenceData.entryPoints.#(entryPointType=="video").uri`)
	if !meet.Exists() {
		meet = doc.Get("conferenceData.entryPoints.0.uri")
	}
	return calendar.Result{
		EventLink: doc.Get("htmlLink").String(),
		MeetLink:  meet.String(),
		EventID:   doc.Get("id").String(),
	}, nil
}

func (c *Client) request(event calendar.Event) eventRequest {
	zone := event.TimeZone
	start, end := event.Start, event.End
	if zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			start, end = start.In(loc), end.In(loc)
		}
	}

	attendees := make([]attendee, len(event.Attendees))
	for i, email := range event.Attendees {
		attendees[i] = attendee{Email: email}
	}
	return eventRequest{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       eventTime{DateTime: start.Format(time.RFC3339), TimeZone: zone},
		End:         eventTime{DateTime: end.Format(time.RFC3339), TimeZone: zone},
		Attendees:   attendees,
		ConferenceData: conferenceData{CreateRequest: createRequest{
			RequestID:             "meet-" + strconv.FormatInt(c.now().UnixMilli(), 10),
			ConferenceSolutionKey: conferenceSolutionKey{Type: "hangoutsMeet"},
		}},
	}
}

// errorFromResponse reads the {"error":{"message":...}} envelope the API
// returns on failure.
func errorFromResponse(status int, payload []byte) error {
	message := strings.TrimSpace(string(payload))
	if gjson.ValidBytes(payload) {
		if msg := gjson.GetBytes(payload, "error.message"); msg.Exists() {
			message = msg.String()
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &calendar.IntegrationError{
		Kind:       calendar.StatusKind(status),
		StatusCode: status,
		Message:    message,
	}
}
