package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leavedesk/internal/domain/notify"
	"leavedesk/internal/platform/config"
)

type noopCalendar struct{}

func (noopCalendar) CreateEvent(ctx context.Context, event notify.Event) (string, error) {
	return "", nil
}

// httpCalendar posts events to an external calendar webhook. The receiving
// side owns the actual calendar integration.
type httpCalendar struct {
	url    string
	token  string
	client *http.Client
}

func New(cfg config.Config) notify.Calendar {
	if !cfg.CalendarEnabled || cfg.CalendarURL == "" {
		return noopCalendar{}
	}
	return &httpCalendar{
		url:    cfg.CalendarURL,
		token:  cfg.CalendarToken,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type eventPayload struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	AllDay    bool   `json:"allDay"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type eventResponse struct {
	ID string `json:"id"`
}

func (c *httpCalendar) CreateEvent(ctx context.Context, event notify.Event) (string, error) {
	payload := eventPayload{
		Title:     event.Title,
		StartDate: event.Start.Format("2006-01-02"),
		EndDate:   event.End.Format("2006-01-02"),
		AllDay:    event.AllDay,
		StartTime: event.StartTime,
		EndTime:   event.EndTime,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar webhook returned %d", resp.StatusCode)
	}

	var out eventResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		// Some webhooks reply with an empty body; the event was still created.
		return "", nil
	}
	return out.ID, nil
}
