package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leavedesk/internal/domain/leave"
	"leavedesk/internal/platform/jobs"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, _, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return m.err
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type recordingCalendar struct {
	mu     sync.Mutex
	events []Event
}

func (c *recordingCalendar) CreateEvent(_ context.Context, event Event) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return "evt-1", nil
}

func (c *recordingCalendar) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func startedJobs(t *testing.T) *jobs.Service {
	t.Helper()
	svc := jobs.New(16)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc.Start(ctx)
	return svc
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func TestRequestSubmittedMailsAllAdmins(t *testing.T) {
	mailer := &recordingMailer{}
	svc := New(startedJobs(t), mailer, nil, "no-reply@example.com", []string{"a@example.com", "b@example.com"})

	svc.RequestSubmitted(context.Background(), testEmployee(), leave.Request{Type: leave.TypeVacation, Status: leave.StatusPending})

	waitFor(t, func() bool { return len(mailer.recipients()) == 2 })
}

func TestRequestDecidedApprovedCreatesCalendarEvent(t *testing.T) {
	mailer := &recordingMailer{}
	calendar := &recordingCalendar{}
	svc := New(startedJobs(t), mailer, calendar, "no-reply@example.com", nil)

	svc.RequestDecided(context.Background(), testEmployee(), leave.Request{
		Type:      leave.TypeVacation,
		StartDate: date(2024, 8, 1),
		EndDate:   date(2024, 8, 2),
		Status:    leave.StatusApproved,
	})

	waitFor(t, func() bool { return calendar.count() == 1 && len(mailer.recipients()) == 1 })
}

func TestRequestDecidedRejectedSkipsCalendar(t *testing.T) {
	mailer := &recordingMailer{}
	calendar := &recordingCalendar{}
	svc := New(startedJobs(t), mailer, calendar, "no-reply@example.com", nil)

	svc.RequestDecided(context.Background(), testEmployee(), leave.Request{
		Type:   leave.TypePersonal,
		Status: leave.StatusRejected,
	})

	waitFor(t, func() bool { return len(mailer.recipients()) == 1 })
	if calendar.count() != 0 {
		t.Fatal("rejected request must not create a calendar event")
	}
}

func TestDeliveryFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	svc := New(startedJobs(t), mailer, nil, "no-reply@example.com", []string{"a@example.com"})

	// Must not panic or propagate; the job logs and moves on.
	svc.RequestSubmitted(context.Background(), testEmployee(), leave.Request{Type: leave.TypeHours})
	waitFor(t, func() bool { return len(mailer.recipients()) == 1 })
}

func TestNilMailerIsSafe(t *testing.T) {
	svc := New(startedJobs(t), nil, nil, "", []string{"a@example.com"})
	svc.RequestSubmitted(context.Background(), testEmployee(), leave.Request{Type: leave.TypeVacation})
	svc.RequestDecided(context.Background(), testEmployee(), leave.Request{Type: leave.TypeVacation, Status: leave.StatusApproved})
}
