package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leavedesk/internal/domain/core"
)

// Events receives lifecycle transitions after they commit. Implementations
// are best-effort: they must not fail the transition and must not block.
type Events interface {
	RequestSubmitted(ctx context.Context, employee core.Employee, request Request)
	RequestDecided(ctx context.Context, employee core.Employee, request Request)
}

type Service struct {
	Store  *Store
	Core   *core.Store
	Pool   *pgxpool.Pool
	Events Events
}

func NewService(pool *pgxpool.Pool, coreStore *core.Store, events Events) *Service {
	return &Service{Store: NewStore(pool), Core: coreStore, Pool: pool, Events: events}
}

// Create validates a submission, checks balance sufficiency, and persists a
// PENDING request. Nothing is persisted when validation or the sufficiency
// check fails. The admin notification fires after the insert and cannot roll
// it back.
func (s *Service) Create(ctx context.Context, r Request) (Request, error) {
	r = Normalize(r)
	if err := Validate(r); err != nil {
		return Request{}, err
	}

	employee, err := s.Core.FindEmployee(ctx, s.Store.DB, r.EmployeeID)
	if err != nil {
		return Request{}, err
	}

	if err := CheckSufficiency(employee.Pools, r); err != nil {
		return Request{}, err
	}

	id, err := s.Store.InsertRequest(ctx, s.Store.DB, r)
	if err != nil {
		return Request{}, err
	}

	created, err := s.Store.FindRequest(ctx, s.Store.DB, id)
	if err != nil {
		return Request{}, err
	}

	if s.Events != nil {
		s.Events.RequestSubmitted(ctx, employee, created)
	}
	return created, nil
}

// Approve transitions a PENDING request to APPROVED and debits the owning
// employee's ledger. Status re-check, debit, and transition run inside one
// transaction with both rows locked, so a concurrent decision on the same
// request observes the terminal status and fails with ErrAlreadyProcessed.
func (s *Service) Approve(ctx context.Context, requestID, adminNotes, decidedBy string) (Request, error) {
	return s.decide(ctx, requestID, StatusApproved, adminNotes, decidedBy)
}

// Reject transitions a PENDING request to REJECTED. The ledger is never
// touched.
func (s *Service) Reject(ctx context.Context, requestID, adminNotes, decidedBy string) (Request, error) {
	return s.decide(ctx, requestID, StatusRejected, adminNotes, decidedBy)
}

func (s *Service) decide(ctx context.Context, requestID string, status Status, adminNotes, decidedBy string) (Request, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Request{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	request, err := s.Store.FindRequestForUpdate(ctx, tx, requestID)
	if err != nil {
		return Request{}, err
	}
	if request.Status != StatusPending {
		return Request{}, fmt.Errorf("%w: status is %s", ErrAlreadyProcessed, request.Status)
	}

	employee, err := s.Core.FindEmployeeForUpdate(ctx, tx, request.EmployeeID)
	if err != nil {
		return Request{}, err
	}

	if status == StatusApproved {
		employee.Pools = ApplyDebit(employee.Pools, request)
		if err := s.Core.UpdatePools(ctx, tx, employee.ID, employee.Pools); err != nil {
			return Request{}, err
		}
	}

	if err := s.Store.UpdateDecision(ctx, tx, requestID, status, adminNotes, decidedBy, time.Now()); err != nil {
		return Request{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Request{}, err
	}

	decided, err := s.Store.FindRequest(ctx, s.Store.DB, requestID)
	if err != nil {
		return Request{}, err
	}
	if s.Events != nil {
		s.Events.RequestDecided(ctx, employee, decided)
	}
	return decided, nil
}

type ListFilter struct {
	EmployeeID string
	Status     string
	Limit      int
	Offset     int
}

type ListResult struct {
	Requests []Request
	Total    int
}

func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	query := `
    SELECT` + requestColumns + `
    FROM leave_requests
    WHERE 1=1
  `
	countQuery := "SELECT COUNT(1) FROM leave_requests WHERE 1=1"
	var args []any
	var countArgs []any

	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		countArgs = append(countArgs, filter.EmployeeID)
		cond := fmt.Sprintf(" AND employee_id = $%d", len(args))
		query += cond
		countQuery += fmt.Sprintf(" AND employee_id = $%d", len(countArgs))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		countArgs = append(countArgs, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
		countQuery += fmt.Sprintf(" AND status = $%d", len(countArgs))
	}

	var total int
	if err := s.Store.DB.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return ListResult{}, err
	}

	query += " ORDER BY created_at DESC"
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return ListResult{}, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return ListResult{}, err
		}
		requests = append(requests, r)
	}
	return ListResult{Requests: requests, Total: total}, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	request, err := s.Store.FindRequest(ctx, s.Store.DB, id)
	if err != nil {
		return Request{}, err
	}
	attachments, err := s.Store.ListAttachments(ctx, s.Store.DB, id)
	if err != nil {
		return Request{}, err
	}
	request.Attachments = attachments
	return request, nil
}

// ---------------------------------------------------------------------------
// Attachments

func (s *Service) CreateAttachment(ctx context.Context, requestID string, upload AttachmentUpload, uploadedBy string) (Attachment, error) {
	if _, err := s.Store.FindRequest(ctx, s.Store.DB, requestID); err != nil {
		return Attachment{}, err
	}

	var uploader *string
	if uploadedBy != "" {
		uploader = &uploadedBy
	}
	var a Attachment
	err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO request_attachments (leave_request_id, file_name, content_type, file_size, data, uploaded_by)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, leave_request_id, file_name, content_type, file_size, created_at
  `, requestID, upload.FileName, upload.ContentType, upload.FileSize, upload.Data, uploader).
		Scan(&a.ID, &a.LeaveRequestID, &a.FileName, &a.ContentType, &a.FileSize, &a.CreatedAt)
	return a, err
}

func (s *Service) AttachmentData(ctx context.Context, requestID, attachmentID string) (Attachment, []byte, error) {
	var a Attachment
	var data []byte
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, leave_request_id, file_name, content_type, file_size, data, created_at
    FROM request_attachments
    WHERE leave_request_id = $1 AND id = $2
  `, requestID, attachmentID).
		Scan(&a.ID, &a.LeaveRequestID, &a.FileName, &a.ContentType, &a.FileSize, &data, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Attachment{}, nil, ErrNotFound
	}
	if err != nil {
		return Attachment{}, nil, err
	}
	return a, data, nil
}
