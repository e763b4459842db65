package leavehandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"leavedesk/internal/domain/auth"
	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
	"leavedesk/internal/platform/metrics"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
	"leavedesk/internal/transport/http/shared"
)

const maxMultipartBytes = 8 * 1024 * 1024

type Handler struct {
	Service *leave.Service
	Metrics *metrics.Collector
}

func NewHandler(service *leave.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave/requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{requestID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/{requestID}/approve", h.handleApprove)
		r.With(middleware.RequireAdmin).Post("/{requestID}/reject", h.handleReject)
		r.Post("/{requestID}/attachments", h.handleUploadAttachments)
		r.Get("/{requestID}/attachments/{attachmentID}/download", h.handleDownloadAttachment)
	})
}

type createRequestPayload struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	IsHalfDay  *bool  `json:"isHalfDay"`
	Shift      string `json:"shift"`
	Hours      *int   `json:"hours"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	// Employees file for themselves; admins may file on behalf of anyone.
	employeeID := user.EmployeeID
	if user.IsAdmin() && payload.EmployeeID != "" {
		employeeID = payload.EmployeeID
	}
	if employeeID == "" {
		api.Fail(w, http.StatusForbidden, "forbidden", "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	typ, err := leave.ParseType(payload.Type)
	if err != nil {
		validator.Add("type", "unknown leave type")
	}
	request := leave.Request{
		EmployeeID: employeeID,
		Type:       typ,
		IsHalfDay:  payload.IsHalfDay,
		Hours:      payload.Hours,
		Reason:     strings.TrimSpace(payload.Reason),
	}
	if payload.StartDate != "" {
		if parsed, ok := validator.Date("startDate", payload.StartDate); ok {
			request.StartDate = parsed
		}
	}
	if payload.EndDate != "" {
		if parsed, ok := validator.Date("endDate", payload.EndDate); ok {
			request.EndDate = parsed
		}
	}
	if payload.Shift != "" {
		shift, err := leave.ParseShift(payload.Shift)
		if err != nil {
			validator.Add("shift", "unknown shift")
		} else {
			request.Shift = &shift
		}
	}
	if payload.StartTime != "" {
		request.StartTime = &payload.StartTime
	}
	if payload.EndTime != "" {
		request.EndTime = &payload.EndTime
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), request)
	if err != nil {
		h.failLeave(w, r, err, "request_create_failed", "failed to create leave request")
		return
	}
	if h.Metrics != nil {
		h.Metrics.LeaveSubmitted()
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	filter := leave.ListFilter{
		Status: strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status"))),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if user.IsAdmin() {
		filter.EmployeeID = r.URL.Query().Get("employeeId")
	} else {
		// Employees only ever see their own history.
		filter.EmployeeID = user.EmployeeID
	}

	result, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "requests_list_failed", "failed to list leave requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"requests": result.Requests,
		"total":    result.Total,
		"limit":    page.Limit,
		"offset":   page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	request, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.failLeave(w, r, err, "request_get_failed", "failed to load leave request")
		return
	}
	if !canAccessRequest(user, request) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

type decisionPayload struct {
	Notes string `json:"notes"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	// Notes are optional; an empty body means approve without comment.
	var payload decisionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Approve(r.Context(), chi.URLParam(r, "requestID"), strings.TrimSpace(payload.Notes), user.UserID)
	if err != nil {
		h.failLeave(w, r, err, "request_approve_failed", "failed to approve leave request")
		return
	}
	if h.Metrics != nil {
		h.Metrics.LeaveApproved()
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var payload decisionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Service.Reject(r.Context(), chi.URLParam(r, "requestID"), strings.TrimSpace(payload.Notes), user.UserID)
	if err != nil {
		h.failLeave(w, r, err, "request_reject_failed", "failed to reject leave request")
		return
	}
	if h.Metrics != nil {
		h.Metrics.LeaveRejected()
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadAttachments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	request, err := h.Service.Get(r.Context(), requestID)
	if err != nil {
		h.failLeave(w, r, err, "attachment_upload_failed", "failed to load leave request")
		return
	}
	if !canAccessRequest(user, request) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	uploads, err := shared.ParseUploads(r.MultipartForm.File["documents"], func(name, contentType string, data []byte) leave.AttachmentUpload {
		return leave.AttachmentUpload{FileName: name, ContentType: contentType, FileSize: int64(len(data)), Data: data}
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if len(uploads) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "at least one document is required", middleware.GetRequestID(r.Context()))
		return
	}

	created := make([]leave.Attachment, 0, len(uploads))
	for _, upload := range uploads {
		attachment, err := h.Service.CreateAttachment(r.Context(), requestID, upload, user.UserID)
		if err != nil {
			h.failLeave(w, r, err, "attachment_upload_failed", "failed to upload attachment")
			return
		}
		created = append(created, attachment)
	}
	api.Created(w, map[string]any{"attachments": created}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	request, err := h.Service.Get(r.Context(), requestID)
	if err != nil {
		h.failLeave(w, r, err, "attachment_download_failed", "failed to load leave request")
		return
	}
	if !canAccessRequest(user, request) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}

	attachment, data, err := h.Service.AttachmentData(r.Context(), requestID, chi.URLParam(r, "attachmentID"))
	if err != nil {
		h.failLeave(w, r, err, "attachment_download_failed", "failed to download attachment")
		return
	}
	shared.ServeAttachment(w, attachment.FileName, attachment.ContentType, data)
}

func canAccessRequest(user auth.UserContext, request leave.Request) bool {
	return user.IsAdmin() || (user.EmployeeID != "" && user.EmployeeID == request.EmployeeID)
}

func (h *Handler) failLeave(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())

	var validationErr *leave.ValidationError
	var balanceErr *leave.InsufficientBalanceError
	switch {
	case errors.As(err, &validationErr):
		api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"issues": validationErr.Issues}, requestID)
	case errors.As(err, &balanceErr):
		api.Fail(w, http.StatusUnprocessableEntity, "insufficient_balance", balanceErr.Error(), requestID)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		api.Fail(w, http.StatusConflict, "already_processed", "leave request was already decided", requestID)
	case errors.Is(err, leave.ErrNotFound), errors.Is(err, core.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	default:
		slog.Error(message, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
