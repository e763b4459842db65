package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"leavedesk/internal/domain/notify"
	"leavedesk/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	c := New(config.Config{CalendarEnabled: false})
	id, err := c.CreateEvent(context.Background(), notify.Event{Title: "x"})
	if err != nil || id != "" {
		t.Fatalf("noop calendar: got (%q, %v)", id, err)
	}
}

func TestCreateEventPostsPayload(t *testing.T) {
	var got eventPayload
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		_ = json.NewEncoder(w).Encode(eventResponse{ID: "evt-42"})
	}))
	defer server.Close()

	c := New(config.Config{CalendarEnabled: true, CalendarURL: server.URL, CalendarToken: "secret"})
	id, err := c.CreateEvent(context.Background(), notify.Event{
		Title:  "AG Vacaciones",
		Start:  time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC),
		AllDay: true,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if id != "evt-42" {
		t.Fatalf("event id = %q, want evt-42", id)
	}
	if auth != "Bearer secret" {
		t.Fatalf("auth header = %q", auth)
	}
	if got.Title != "AG Vacaciones" || got.StartDate != "2024-08-01" || got.EndDate != "2024-08-03" || !got.AllDay {
		t.Fatalf("payload = %+v", got)
	}
}

func TestCreateEventReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(config.Config{CalendarEnabled: true, CalendarURL: server.URL})
	if _, err := c.CreateEvent(context.Background(), notify.Event{Title: "x"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}
