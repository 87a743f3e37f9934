package calendarclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	calendardomain "github.com/vfg2006/property-leads-api/infrastructure/integrator/calendar/domain"
)

const maxEventsPerPage = "250"

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GoogleCalendarClient) eventsURL() (*url.URL, error) {
	endpoint, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar base url: %w", err)
	}
	return endpoint.JoinPath("calendars", c.config.CalendarID, "events"), nil
}

func (c *GoogleCalendarClient) ListEvents(ctx context.Context, params ListEventsParams) (*calendardomain.EventList, error) {
	if c.config.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	endpoint, err := c.eventsURL()
	if err != nil {
		return nil, err
	}

	query := endpoint.Query()
	query.Set("timeMin", params.TimeMin.Format(time.RFC3339))
	query.Set("timeMax", params.TimeMax.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")
	query.Set("maxResults", maxEventsPerPage)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var list calendardomain.EventList
	if err := c.do(req, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

func (c *GoogleCalendarClient) InsertEvent(ctx context.Context, event calendardomain.Event) (*calendardomain.Event, error) {
	if c.config.AccessToken == "" {
		return nil, ErrNotConfigured
	}

	endpoint, err := c.eventsURL()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created calendardomain.Event
	if err := c.do(req, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (c *GoogleCalendarClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("calendar request failed with status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("calendar request failed with status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode calendar response: %w", err)
	}

	return nil
}
