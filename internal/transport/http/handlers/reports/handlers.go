package reportshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leavedesk/internal/domain/reports"
	"leavedesk/internal/transport/http/api"
	"leavedesk/internal/transport/http/middleware"
	"leavedesk/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/balances.pdf", h.handleBalancesPDF)
		r.Get("/calendar.csv", h.handleCalendarCSV)
	})
}

func (h *Handler) handleBalancesPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.BalancesPDF(r.Context())
	if err != nil {
		slog.Error("balances report failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate balances report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "balances-"+time.Now().Format("2006-01-02")+".pdf"))
	if _, err := w.Write(data); err != nil {
		slog.Warn("report write failed", "err", err)
	}
}

func (h *Handler) handleCalendarCSV(w http.ResponseWriter, r *http.Request) {
	// Defaults to the current month when no range is given.
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	validator := shared.NewValidator()
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, ok := validator.Date("from", raw); ok {
			from = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, ok := validator.Date("to", raw); ok {
			to = parsed
		}
	}
	if to.Before(from) {
		validator.Add("to", "must be on or after from")
	}
	if validator.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	data, err := h.Service.CalendarCSV(r.Context(), from, to)
	if err != nil {
		slog.Error("calendar export failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to export calendar", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leave-calendar-"+from.Format("2006-01-02")+".csv"))
	if _, err := w.Write(data); err != nil {
		slog.Warn("report write failed", "err", err)
	}
}
