package notify

import (
	"context"
	"log/slog"

	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
	"leavedesk/internal/platform/jobs"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Calendar interface {
	CreateEvent(ctx context.Context, event Event) (string, error)
}

// Service decides what to fire on which transition and hands delivery to the
// background queue. Everything here is best-effort: delivery failures are
// logged and never surface to the lifecycle.
type Service struct {
	Jobs        *jobs.Service
	Mailer      Mailer
	Calendar    Calendar
	From        string
	AdminEmails []string
}

func New(jobsSvc *jobs.Service, mailer Mailer, calendar Calendar, from string, adminEmails []string) *Service {
	return &Service{Jobs: jobsSvc, Mailer: mailer, Calendar: calendar, From: from, AdminEmails: adminEmails}
}

// RequestSubmitted notifies administrators that a request awaits review.
func (s *Service) RequestSubmitted(_ context.Context, employee core.Employee, request leave.Request) {
	if s.Mailer == nil || len(s.AdminEmails) == 0 {
		return
	}
	msg := AdminSubmissionMessage(employee, request)
	for _, email := range s.AdminEmails {
		to := email
		s.enqueueMail("admin submission email", to, msg)
	}
}

// RequestDecided notifies the employee and, for approvals, creates the
// calendar event.
func (s *Service) RequestDecided(_ context.Context, employee core.Employee, request leave.Request) {
	if s.Mailer != nil && employee.Email != "" {
		s.enqueueMail("decision email", employee.Email, DecisionMessage(employee, request))
	}

	if request.Status != leave.StatusApproved || s.Calendar == nil {
		return
	}
	event := CalendarEvent(employee, request)
	s.Jobs.Enqueue("calendar event", func(ctx context.Context) error {
		eventID, err := s.Calendar.CreateEvent(ctx, event)
		if err != nil {
			return err
		}
		slog.Info("calendar event created", "requestId", request.ID, "eventId", eventID)
		return nil
	})
}

func (s *Service) enqueueMail(name, to string, msg Message) {
	s.Jobs.Enqueue(name, func(ctx context.Context) error {
		return s.Mailer.Send(ctx, s.From, to, msg.Subject, msg.Body)
	})
}
