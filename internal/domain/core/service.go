package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Service struct {
	Store *Store
	Pool  *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{Store: NewStore(pool), Pool: pool}
}

// ---------------------------------------------------------------------------
// Areas

func (s *Service) ListAreas(ctx context.Context) ([]Area, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM areas
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []Area
	for rows.Next() {
		var a Area
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (s *Service) CreateArea(ctx context.Context, name string) (Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Area{}, ErrInvalidInput
	}
	var a Area
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO areas (name)
    VALUES ($1)
    RETURNING id, name, created_at
  `, name).Scan(&a.ID, &a.Name, &a.CreatedAt)
	return a, err
}

func (s *Service) DeleteArea(ctx context.Context, id string) error {
	var assigned int
	if err := s.Store.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE area_id = $1", id).Scan(&assigned); err != nil {
		return err
	}
	if assigned > 0 {
		return ErrAreaInUse
	}

	tag, err := s.Store.DB.Exec(ctx, "DELETE FROM areas WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Employees

func (s *Service) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, int, error) {
	var total int
	if err := s.Store.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.Store.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees e
    LEFT JOIN areas a ON e.area_id = a.id
    ORDER BY e.last_name, e.first_name
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.Store.FindEmployee(ctx, s.Store.DB, id)
}

type NewEmployee struct {
	FirstName string
	LastName  string
	Email     string
	AreaID    string
	HireDate  *time.Time
	// Initial allotments. Available balances start equal to the totals.
	TotalVacationDays   float64
	TotalPersonalHours  int
	TotalRemoteHours    int
	TotalAvailableHours int
}

func (s *Service) CreateEmployee(ctx context.Context, in NewEmployee) (Employee, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return Employee{}, ErrInvalidInput
	}
	if in.TotalVacationDays < 0 || in.TotalPersonalHours < 0 || in.TotalRemoteHours < 0 || in.TotalAvailableHours < 0 {
		return Employee{}, ErrInvalidInput
	}

	var areaID *string
	if in.AreaID != "" {
		areaID = &in.AreaID
	}

	var id string
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO employees (
      first_name, last_name, email, area_id, hire_date,
      vacation_days, total_vacation_days,
      personal_hours, total_personal_hours,
      remote_hours, total_remote_hours,
      available_hours, total_available_hours
    )
    VALUES ($1,$2,$3,$4,$5,$6,$6,$7,$7,$8,$8,$9,$9)
    RETURNING id
  `, in.FirstName, in.LastName, in.Email, areaID, in.HireDate,
		in.TotalVacationDays, in.TotalPersonalHours, in.TotalRemoteHours, in.TotalAvailableHours).Scan(&id)
	if isUniqueViolation(err) {
		return Employee{}, ErrEmailTaken
	}
	if err != nil {
		return Employee{}, err
	}
	return s.GetEmployee(ctx, id)
}

type EmployeeUpdate struct {
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	AreaID    string     `json:"areaId"`
	HireDate  *time.Time `json:"hireDate"`
}

func (s *Service) UpdateEmployee(ctx context.Context, id string, in EmployeeUpdate) (Employee, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return Employee{}, ErrInvalidInput
	}

	var areaID *string
	if in.AreaID != "" {
		areaID = &in.AreaID
	}

	tag, err := s.Store.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1, last_name = $2, email = $3, area_id = $4, hire_date = $5, updated_at = now()
    WHERE id = $6
  `, in.FirstName, in.LastName, in.Email, areaID, in.HireDate, id)
	if isUniqueViolation(err) {
		return Employee{}, ErrEmailTaken
	}
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	return s.GetEmployee(ctx, id)
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	var requests int
	if err := s.Store.DB.QueryRow(ctx, "SELECT COUNT(1) FROM leave_requests WHERE employee_id = $1", id).Scan(&requests); err != nil {
		return err
	}
	if requests > 0 {
		return ErrHasRequests
	}

	tag, err := s.Store.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateTotals applies a delta-preserving totals edit inside a transaction.
// The employee row is locked so a concurrent approval debit cannot interleave
// with the adjustment.
func (s *Service) UpdateTotals(ctx context.Context, id string, update TotalsUpdate) (Employee, error) {
	if update.Empty() || !update.Valid() {
		return Employee{}, ErrInvalidInput
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	employee, err := s.Store.FindEmployeeForUpdate(ctx, tx, id)
	if err != nil {
		return Employee{}, err
	}

	employee.Pools = update.Apply(employee.Pools)
	if err := s.Store.UpdatePools(ctx, tx, id, employee.Pools); err != nil {
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return s.GetEmployee(ctx, id)
}

// ---------------------------------------------------------------------------
// Personnel documents

func (s *Service) CreateDocument(ctx context.Context, employeeID string, upload DocumentUpload, uploadedBy string) (EmployeeDocument, error) {
	if _, err := s.GetEmployee(ctx, employeeID); err != nil {
		return EmployeeDocument{}, err
	}

	var doc EmployeeDocument
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO employee_documents (employee_id, file_name, content_type, file_size, data, uploaded_by)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, employee_id, file_name, content_type, file_size, created_at
  `, employeeID, upload.FileName, upload.ContentType, upload.FileSize, upload.Data, nullable(uploadedBy)).
		Scan(&doc.ID, &doc.EmployeeID, &doc.FileName, &doc.ContentType, &doc.FileSize, &doc.CreatedAt)
	return doc, err
}

func (s *Service) ListDocuments(ctx context.Context, employeeID string) ([]EmployeeDocument, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, employee_id, file_name, content_type, file_size, created_at
    FROM employee_documents
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []EmployeeDocument
	for rows.Next() {
		var doc EmployeeDocument
		if err := rows.Scan(&doc.ID, &doc.EmployeeID, &doc.FileName, &doc.ContentType, &doc.FileSize, &doc.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *Service) DocumentData(ctx context.Context, employeeID, documentID string) (EmployeeDocument, []byte, error) {
	var doc EmployeeDocument
	var data []byte
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, employee_id, file_name, content_type, file_size, data, created_at
    FROM employee_documents
    WHERE employee_id = $1 AND id = $2
  `, employeeID, documentID).
		Scan(&doc.ID, &doc.EmployeeID, &doc.FileName, &doc.ContentType, &doc.FileSize, &data, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmployeeDocument{}, nil, ErrNotFound
	}
	if err != nil {
		return EmployeeDocument{}, nil, err
	}
	return doc, data, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
