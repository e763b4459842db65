package reports

import (
	"context"
	"time"

	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
	"leavedesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// BalanceRow is one employee's pools as they stand, with enough identity to
// label a report line.
type BalanceRow struct {
	EmployeeID string
	FirstName  string
	LastName   string
	AreaName   string
	Pools      core.Pools
}

func (s *Store) ListBalances(ctx context.Context) ([]BalanceRow, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT e.id, e.first_name, e.last_name, COALESCE(a.name, ''),
		       e.vacation_days, e.total_vacation_days,
		       e.personal_hours, e.total_personal_hours,
		       e.remote_hours, e.total_remote_hours,
		       e.available_hours, e.total_available_hours
		FROM employees e
		LEFT JOIN areas a ON a.id = e.area_id
		ORDER BY e.last_name, e.first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var r BalanceRow
		if err := rows.Scan(
			&r.EmployeeID, &r.FirstName, &r.LastName, &r.AreaName,
			&r.Pools.VacationDays, &r.Pools.TotalVacationDays,
			&r.Pools.PersonalHours, &r.Pools.TotalPersonalHours,
			&r.Pools.RemoteHours, &r.Pools.TotalRemoteHours,
			&r.Pools.AvailableHours, &r.Pools.TotalAvailableHours,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LeaveRow is one approved request with the employee it belongs to.
type LeaveRow struct {
	Employee core.Employee
	Request  leave.Request
}

func (s *Store) ListApprovedLeave(ctx context.Context, from, to time.Time) ([]LeaveRow, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT e.first_name, e.last_name, e.email,
		       r.id, r.type, r.start_date, r.end_date, r.is_half_day,
		       r.hours, r.start_time, r.end_time, r.shift, r.reason
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.status = 'APPROVED'
		  AND r.start_date <= $2
		  AND r.end_date >= $1
		ORDER BY r.start_date, e.last_name
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveRow
	for rows.Next() {
		var row LeaveRow
		var typ string
		var shift *string
		if err := rows.Scan(
			&row.Employee.FirstName, &row.Employee.LastName, &row.Employee.Email,
			&row.Request.ID, &typ, &row.Request.StartDate, &row.Request.EndDate,
			&row.Request.IsHalfDay, &row.Request.Hours,
			&row.Request.StartTime, &row.Request.EndTime, &shift, &row.Request.Reason,
		); err != nil {
			return nil, err
		}
		row.Request.Type = leave.Type(typ)
		row.Request.Status = leave.StatusApproved
		if shift != nil {
			s := leave.Shift(*shift)
			row.Request.Shift = &s
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
