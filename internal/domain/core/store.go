package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"leavedesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
  e.id, e.first_name, e.last_name, e.email, e.area_id, a.name, e.hire_date,
  e.vacation_days, e.total_vacation_days,
  e.personal_hours, e.total_personal_hours,
  e.remote_hours, e.total_remote_hours,
  e.available_hours, e.total_available_hours,
  e.created_at, e.updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	var areaID, areaName *string
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &areaID, &areaName, &e.HireDate,
		&e.VacationDays, &e.TotalVacationDays,
		&e.PersonalHours, &e.TotalPersonalHours,
		&e.RemoteHours, &e.TotalRemoteHours,
		&e.AvailableHours, &e.TotalAvailableHours,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	if areaID != nil {
		e.AreaID = *areaID
	}
	if areaName != nil {
		e.AreaName = *areaName
	}
	return e, nil
}

func (s *Store) FindEmployee(ctx context.Context, q querier.Querier, id string) (Employee, error) {
	row := q.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees e
    LEFT JOIN areas a ON e.area_id = a.id
    WHERE e.id = $1
  `, id)
	return scanEmployee(row)
}

// FindEmployeeForUpdate locks the employee row for the duration of the
// enclosing transaction. Both the approval debit and admin totals edits go
// through this lock.
func (s *Store) FindEmployeeForUpdate(ctx context.Context, q querier.Querier, id string) (Employee, error) {
	row := q.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, area_id, NULL::text, hire_date,
           vacation_days, total_vacation_days,
           personal_hours, total_personal_hours,
           remote_hours, total_remote_hours,
           available_hours, total_available_hours,
           created_at, updated_at
    FROM employees
    WHERE id = $1
    FOR UPDATE
  `, id)
	return scanEmployee(row)
}

func (s *Store) UpdatePools(ctx context.Context, q querier.Querier, id string, p Pools) error {
	tag, err := q.Exec(ctx, `
    UPDATE employees
    SET vacation_days = $1, total_vacation_days = $2,
        personal_hours = $3, total_personal_hours = $4,
        remote_hours = $5, total_remote_hours = $6,
        available_hours = $7, total_available_hours = $8,
        updated_at = now()
    WHERE id = $9
  `, p.VacationDays, p.TotalVacationDays,
		p.PersonalHours, p.TotalPersonalHours,
		p.RemoteHours, p.TotalRemoteHours,
		p.AvailableHours, p.TotalAvailableHours, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
