package corehandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"leavedesk/internal/domain/auth"
	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
	"leavedesk/internal/transport/http/shared"
)

const maxMultipartBytes = 8 * 1024 * 1024

type Handler struct {
	Service *core.Service
	Users   *auth.Store
}

func NewHandler(service *core.Service, users *auth.Store) *Handler {
	return &Handler{Service: service, Users: users}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/areas", func(r chi.Router) {
		r.With(middleware.RequireAuth).Get("/", h.handleListAreas)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreateArea)
		r.With(middleware.RequireAdmin).Delete("/{areaID}", h.handleDeleteArea)
	})

	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireAdmin).Get("/", h.handleListEmployees)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequireAuth).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequireAdmin).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequireAdmin).Delete("/{employeeID}", h.handleDeleteEmployee)
		r.With(middleware.RequireAuth).Get("/{employeeID}/balances", h.handleGetBalances)
		r.With(middleware.RequireAdmin).Put("/{employeeID}/balances", h.handleUpdateTotals)
		r.With(middleware.RequireAdmin).Post("/{employeeID}/documents", h.handleUploadDocuments)
		r.With(middleware.RequireAuth).Get("/{employeeID}/documents", h.handleListDocuments)
		r.With(middleware.RequireAuth).Get("/{employeeID}/documents/{documentID}/download", h.handleDownloadDocument)
	})
}

// canAccessEmployee gates employee-scoped reads: admins see everyone,
// employees only themselves.
func canAccessEmployee(user auth.UserContext, employeeID string) bool {
	return user.IsAdmin() || (user.EmployeeID != "" && user.EmployeeID == employeeID)
}

func (h *Handler) handleListAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.ListAreas(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "areas_list_failed", "failed to list areas", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"areas": areas}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateArea(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("name", payload.Name, "name is required")
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	area, err := h.Service.CreateArea(r.Context(), strings.TrimSpace(payload.Name))
	if err != nil {
		h.failCore(w, r, err, "area_create_failed", "failed to create area")
		return
	}
	api.Created(w, area, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteArea(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteArea(r.Context(), chi.URLParam(r, "areaID")); err != nil {
		h.failCore(w, r, err, "area_delete_failed", "failed to delete area")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	employees, total, err := h.Service.ListEmployees(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"employees": employees,
		"total":     total,
		"limit":     page.Limit,
		"offset":    page.Offset,
	}, middleware.GetRequestID(r.Context()))
}

type createEmployeePayload struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Password            string  `json:"password"`
	AreaID              string  `json:"areaId"`
	HireDate            string  `json:"hireDate"`
	TotalVacationDays   float64 `json:"totalVacationDays"`
	TotalPersonalHours  int     `json:"totalPersonalHours"`
	TotalRemoteHours    int     `json:"totalRemoteHours"`
	TotalAvailableHours int     `json:"totalAvailableHours"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload createEmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("firstName", payload.FirstName, "first name is required")
	validator.Required("lastName", payload.LastName, "last name is required")
	validator.Required("email", payload.Email, "email is required")
	var hireDate *time.Time
	if payload.HireDate != "" {
		if parsed, ok := validator.Date("hireDate", payload.HireDate); ok {
			hireDate = &parsed
		}
	}
	if payload.TotalVacationDays < 0 || payload.TotalPersonalHours < 0 || payload.TotalRemoteHours < 0 || payload.TotalAvailableHours < 0 {
		validator.Add("balances", "allotments must not be negative")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employee, err := h.Service.CreateEmployee(r.Context(), core.NewEmployee{
		FirstName:           strings.TrimSpace(payload.FirstName),
		LastName:            strings.TrimSpace(payload.LastName),
		Email:               strings.ToLower(strings.TrimSpace(payload.Email)),
		AreaID:              payload.AreaID,
		HireDate:            hireDate,
		TotalVacationDays:   payload.TotalVacationDays,
		TotalPersonalHours:  payload.TotalPersonalHours,
		TotalRemoteHours:    payload.TotalRemoteHours,
		TotalAvailableHours: payload.TotalAvailableHours,
	})
	if err != nil {
		h.failCore(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}

	if payload.Password != "" {
		hash, err := auth.HashPassword(payload.Password)
		if err == nil {
			_, err = h.Users.CreateEmployeeUser(r.Context(), employee.Email, hash, employee.ID)
		}
		if err != nil {
			slog.Warn("employee login creation failed", "employeeId", employee.ID, "err", err)
		}
	}

	api.Created(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !canAccessEmployee(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.failCore(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		AreaID    string `json:"areaId"`
		HireDate  string `json:"hireDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	validator := shared.NewValidator()
	validator.Required("firstName", payload.FirstName, "first name is required")
	validator.Required("lastName", payload.LastName, "last name is required")
	validator.Required("email", payload.Email, "email is required")
	var hireDate *time.Time
	if payload.HireDate != "" {
		if parsed, ok := validator.Date("hireDate", payload.HireDate); ok {
			hireDate = &parsed
		}
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	employee, err := h.Service.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), core.EmployeeUpdate{
		FirstName: strings.TrimSpace(payload.FirstName),
		LastName:  strings.TrimSpace(payload.LastName),
		Email:     strings.ToLower(strings.TrimSpace(payload.Email)),
		AreaID:    payload.AreaID,
		HireDate:  hireDate,
	})
	if err != nil {
		h.failCore(w, r, err, "employee_update_failed", "failed to update employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.failCore(w, r, err, "employee_delete_failed", "failed to delete employee")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

type balancesResponse struct {
	core.Pools
	VacationDisplay  string             `json:"vacationDisplay"`
	AvailableDisplay leave.Availability `json:"availableDisplay"`
	AvailableDays    float64            `json:"availableDays"`
}

func (h *Handler) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !canAccessEmployee(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.failCore(w, r, err, "balances_get_failed", "failed to load balances")
		return
	}
	api.Success(w, balancesResponse{
		Pools:            employee.Pools,
		VacationDisplay:  fmt.Sprintf("%g / %g", employee.VacationDays, employee.TotalVacationDays),
		AvailableDisplay: leave.FormatAvailable(employee.AvailableHours),
		AvailableDays:    leave.HoursToDisplayDays(employee.AvailableHours),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTotals(w http.ResponseWriter, r *http.Request) {
	var payload core.TotalsUpdate
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Empty() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "at least one total is required", middleware.GetRequestID(r.Context()))
		return
	}
	if !payload.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "totals must not be negative", middleware.GetRequestID(r.Context()))
		return
	}

	employee, err := h.Service.UpdateTotals(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		h.failCore(w, r, err, "balances_update_failed", "failed to update balances")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid multipart payload", middleware.GetRequestID(r.Context()))
		return
	}
	uploads, err := shared.ParseUploads(r.MultipartForm.File["documents"], func(name, contentType string, data []byte) core.DocumentUpload {
		return core.DocumentUpload{FileName: name, ContentType: contentType, FileSize: int64(len(data)), Data: data}
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	if len(uploads) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "at least one document is required", middleware.GetRequestID(r.Context()))
		return
	}

	created := make([]core.EmployeeDocument, 0, len(uploads))
	for _, upload := range uploads {
		doc, err := h.Service.CreateDocument(r.Context(), employeeID, upload, user.UserID)
		if err != nil {
			h.failCore(w, r, err, "document_upload_failed", "failed to upload document")
			return
		}
		created = append(created, doc)
	}
	api.Created(w, map[string]any{"documents": created}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !canAccessEmployee(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	documents, err := h.Service.ListDocuments(r.Context(), employeeID)
	if err != nil {
		h.failCore(w, r, err, "documents_list_failed", "failed to list documents")
		return
	}
	api.Success(w, map[string]any{"documents": documents}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !canAccessEmployee(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	doc, data, err := h.Service.DocumentData(r.Context(), employeeID, chi.URLParam(r, "documentID"))
	if err != nil {
		h.failCore(w, r, err, "document_download_failed", "failed to download document")
		return
	}
	shared.ServeAttachment(w, doc.FileName, doc.ContentType, data)
}

func (h *Handler) failCore(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, core.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", requestID)
	case errors.Is(err, core.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email already in use", requestID)
	case errors.Is(err, core.ErrAreaInUse):
		api.Fail(w, http.StatusConflict, "area_in_use", "area still has employees assigned", requestID)
	case errors.Is(err, core.ErrHasRequests):
		api.Fail(w, http.StatusConflict, "has_requests", "employee has leave requests on record", requestID)
	case errors.Is(err, core.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	default:
		slog.Error(message, "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}

