package notify

import (
	"fmt"
	"time"

	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
)

// Message is a rendered email. Formatting lives here; delivery is an
// external collaborator.
type Message struct {
	Subject string
	Body    string
}

// AdminSubmissionMessage tells administrators a new request awaits review.
func AdminSubmissionMessage(employee core.Employee, request leave.Request) Message {
	return Message{
		Subject: fmt.Sprintf("Nueva solicitud: %s - %s", request.Type.Label(), employee.FullName()),
		Body: fmt.Sprintf(
			"%s solicitó %s para %s.\nMotivo: %s\nSolicitud: %s",
			employee.FullName(), request.Type.Label(), request.DateLabel(), request.Reason, request.ID,
		),
	}
}

// DecisionMessage tells the employee how their request was resolved.
func DecisionMessage(employee core.Employee, request leave.Request) Message {
	subject := fmt.Sprintf("Solicitud %s: %s", request.Status.Label(), request.Type.Label())
	body := fmt.Sprintf(
		"Hola %s,\n\nTu solicitud de %s para %s fue %s.",
		employee.FirstName, request.Type.Label(), request.DateLabel(), lowerStatus(request.Status),
	)
	if request.AdminNotes != "" {
		body += "\n\nComentario: " + request.AdminNotes
	}
	return Message{Subject: subject, Body: body}
}

func lowerStatus(s leave.Status) string {
	switch s {
	case leave.StatusApproved:
		return "aprobada"
	case leave.StatusRejected:
		return "rechazada"
	}
	return "actualizada"
}

// Event is the calendar entry created for an approved request. Day-based
// types map to all-day events; HOURS requests carry the requested time span.
type Event struct {
	Title     string
	Start     time.Time
	End       time.Time
	AllDay    bool
	StartTime string
	EndTime   string
}

func CalendarEvent(employee core.Employee, request leave.Request) Event {
	ev := Event{
		Title:  employee.Initials() + " " + request.Type.Label(),
		Start:  request.StartDate,
		End:    request.EndDate,
		AllDay: !request.Type.UsesHours(),
	}
	if request.Type.UsesHours() {
		if request.StartTime != nil {
			ev.StartTime = *request.StartTime
		}
		if request.EndTime != nil {
			ev.EndTime = *request.EndTime
		}
	}
	return ev
}
