package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"leavedesk/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `
  id, employee_id, type, start_date, end_date, is_half_day, hours,
  start_time, end_time, shift, reason, status, admin_notes,
  decided_by, decided_at, created_at, updated_at`

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	var typ, status string
	var shift, adminNotes, decidedBy *string
	err := row.Scan(
		&r.ID, &r.EmployeeID, &typ, &r.StartDate, &r.EndDate, &r.IsHalfDay, &r.Hours,
		&r.StartTime, &r.EndTime, &shift, &r.Reason, &status, &adminNotes,
		&decidedBy, &r.DecidedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	if err != nil {
		return Request{}, err
	}
	r.Type = Type(typ)
	r.Status = Status(status)
	if shift != nil {
		s := Shift(*shift)
		r.Shift = &s
	}
	if adminNotes != nil {
		r.AdminNotes = *adminNotes
	}
	if decidedBy != nil {
		r.DecidedBy = *decidedBy
	}
	return r, nil
}

func (s *Store) FindRequest(ctx context.Context, q querier.Querier, id string) (Request, error) {
	row := q.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id)
	return scanRequest(row)
}

// FindRequestForUpdate locks the request row so the PENDING precondition is
// re-verified inside the deciding transaction, not just before it.
func (s *Store) FindRequestForUpdate(ctx context.Context, q querier.Querier, id string) (Request, error) {
	row := q.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
    FOR UPDATE
  `, id)
	return scanRequest(row)
}

func (s *Store) InsertRequest(ctx context.Context, q querier.Querier, r Request) (string, error) {
	var shift *string
	if r.Shift != nil {
		v := string(*r.Shift)
		shift = &v
	}
	var id string
	err := q.QueryRow(ctx, `
    INSERT INTO leave_requests (
      employee_id, type, start_date, end_date, is_half_day, hours,
      start_time, end_time, shift, reason, status
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING id
  `, r.EmployeeID, string(r.Type), r.StartDate, r.EndDate, r.IsHalfDay, r.Hours,
		r.StartTime, r.EndTime, shift, r.Reason, string(StatusPending)).Scan(&id)
	return id, err
}

func (s *Store) UpdateDecision(ctx context.Context, q querier.Querier, id string, status Status, adminNotes, decidedBy string, decidedAt time.Time) error {
	var notes *string
	if adminNotes != "" {
		notes = &adminNotes
	}
	var decider *string
	if decidedBy != "" {
		decider = &decidedBy
	}
	tag, err := q.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, admin_notes = $2, decided_by = $3, decided_at = $4, updated_at = now()
    WHERE id = $5
  `, string(status), notes, decider, decidedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListAttachments(ctx context.Context, q querier.Querier, requestID string) ([]Attachment, error) {
	rows, err := q.Query(ctx, `
    SELECT id, leave_request_id, file_name, content_type, file_size, created_at
    FROM request_attachments
    WHERE leave_request_id = $1
    ORDER BY created_at
  `, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.ID, &a.LeaveRequestID, &a.FileName, &a.ContentType, &a.FileSize, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
