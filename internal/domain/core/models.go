package core

import "time"

type Area struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pools holds the four independently tracked leave resources. Vacation is
// counted in days (half-day granularity); the other three are counted in
// hours.
type Pools struct {
	VacationDays        float64 `json:"vacationDays"`
	TotalVacationDays   float64 `json:"totalVacationDays"`
	PersonalHours       int     `json:"personalHours"`
	TotalPersonalHours  int     `json:"totalPersonalHours"`
	RemoteHours         int     `json:"remoteHours"`
	TotalRemoteHours    int     `json:"totalRemoteHours"`
	AvailableHours      int     `json:"availableHours"`
	TotalAvailableHours int     `json:"totalAvailableHours"`
}

type Employee struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	AreaID    string     `json:"areaId,omitempty"`
	AreaName  string     `json:"areaName,omitempty"`
	HireDate  *time.Time `json:"hireDate,omitempty"`
	Pools
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Initials returns the employee's initials for calendar event titles.
func (e Employee) Initials() string {
	out := ""
	if e.FirstName != "" {
		out += string([]rune(e.FirstName)[0:1])
	}
	if e.LastName != "" {
		out += string([]rune(e.LastName)[0:1])
	}
	return out
}

type EmployeeDocument struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId,omitempty"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	FileSize    int64     `json:"fileSize"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type DocumentUpload struct {
	FileName    string
	ContentType string
	FileSize    int64
	Data        []byte
}
