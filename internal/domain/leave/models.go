package leave

import (
	"fmt"
	"strings"
	"time"
)

// Type is the canonical leave request type. Parsing and labeling happen here
// and nowhere else.
type Type string

const (
	TypeLicense  Type = "LICENSE"
	TypeVacation Type = "VACATION"
	TypePersonal Type = "PERSONAL"
	TypeRemote   Type = "REMOTE"
	TypeHours    Type = "HOURS"
)

func ParseType(raw string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(raw))) {
	case TypeLicense:
		return TypeLicense, nil
	case TypeVacation:
		return TypeVacation, nil
	case TypePersonal:
		return TypePersonal, nil
	case TypeRemote:
		return TypeRemote, nil
	case TypeHours:
		return TypeHours, nil
	}
	return "", fmt.Errorf("unknown leave type %q", raw)
}

// Label returns the display name used in notifications and exports.
func (t Type) Label() string {
	switch t {
	case TypeLicense:
		return "Licencia"
	case TypeVacation:
		return "Vacaciones"
	case TypePersonal:
		return "Día Personal"
	case TypeRemote:
		return "Día Remoto"
	case TypeHours:
		return "Pedido de Horas"
	}
	return string(t)
}

// UsesDateRange reports whether the type is expressed as a start/end range.
func (t Type) UsesDateRange() bool {
	return t == TypeLicense || t == TypeVacation
}

// UsesShift reports whether the type is expressed as a single-day shift.
func (t Type) UsesShift() bool {
	return t == TypePersonal || t == TypeRemote
}

// UsesHours reports whether the type is expressed as an hour span.
func (t Type) UsesHours() bool {
	return t == TypeHours
}

type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftFullDay   Shift = "FULL_DAY"
)

func ParseShift(raw string) (Shift, error) {
	switch Shift(strings.ToUpper(strings.TrimSpace(raw))) {
	case ShiftMorning:
		return ShiftMorning, nil
	case ShiftAfternoon:
		return ShiftAfternoon, nil
	case ShiftFullDay:
		return ShiftFullDay, nil
	}
	return "", fmt.Errorf("unknown shift %q", raw)
}

func (s Shift) Label() string {
	switch s {
	case ShiftMorning:
		return "Mañana"
	case ShiftAfternoon:
		return "Tarde"
	case ShiftFullDay:
		return "Todo el día"
	}
	return string(s)
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusApproved:
		return "Aprobado"
	case StatusRejected:
		return "Rechazado"
	}
	return string(s)
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Request is one time-off ask. Exactly one of the date-range fields, the
// shift field, or the hours+time fields is active, determined by Type; the
// rest are nil.
type Request struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Type       Type       `json:"type"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    time.Time  `json:"endDate"`
	IsHalfDay  *bool      `json:"isHalfDay,omitempty"`
	Hours      *int       `json:"hours,omitempty"`
	StartTime  *string    `json:"startTime,omitempty"`
	EndTime    *string    `json:"endTime,omitempty"`
	Shift      *Shift     `json:"shift,omitempty"`
	Reason     string     `json:"reason"`
	Status     Status     `json:"status"`
	AdminNotes string     `json:"adminNotes,omitempty"`
	DecidedBy  string     `json:"decidedBy,omitempty"`
	DecidedAt  *time.Time `json:"decidedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Attachments []Attachment `json:"attachments,omitempty"`
}

func (r Request) halfDay() bool {
	return r.IsHalfDay != nil && *r.IsHalfDay
}

// DateLabel renders the requested period for notifications.
func (r Request) DateLabel() string {
	const layout = "02/01/2006"
	switch {
	case r.Type.UsesHours():
		label := r.StartDate.Format(layout)
		if r.StartTime != nil && r.EndTime != nil {
			label += fmt.Sprintf(" %s-%s", *r.StartTime, *r.EndTime)
		}
		return label
	case r.Type.UsesShift():
		label := r.StartDate.Format(layout)
		if r.Shift != nil {
			label += " (" + r.Shift.Label() + ")"
		}
		return label
	default:
		if r.EndDate.After(r.StartDate) {
			return r.StartDate.Format(layout) + " - " + r.EndDate.Format(layout)
		}
		return r.StartDate.Format(layout)
	}
}

type Attachment struct {
	ID             string    `json:"id"`
	LeaveRequestID string    `json:"leaveRequestId,omitempty"`
	FileName       string    `json:"fileName"`
	ContentType    string    `json:"contentType"`
	FileSize       int64     `json:"fileSize"`
	UploadedBy     string    `json:"uploadedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AttachmentUpload struct {
	FileName    string
	ContentType string
	FileSize    int64
	Data        []byte
}
