package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"leavedesk/internal/domain/notify"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// BalancesPDF renders the current pools of every employee. Negative balances
// are printed as-is so overdrawn pools are visible to administrators.
func (s *Service) BalancesPDF(ctx context.Context) ([]byte, error) {
	balances, err := s.Store.ListBalances(ctx)
	if err != nil {
		return nil, err
	}
	return renderBalancesPDF(balances, time.Now())
}

func renderBalancesPDF(balances []BalanceRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented names render.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Balance de Licencias")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generado: %s", generatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(10)

	headers := []string{"Empleado", "Área", "Vacaciones", "Hs. Personales", "Hs. Remotas", "Hs. Disponibles"}
	widths := []float64{70, 45, 40, 40, 40, 40}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, b := range balances {
		cells := []string{
			b.LastName + ", " + b.FirstName,
			b.AreaName,
			fmt.Sprintf("%s / %s", formatDays(b.Pools.VacationDays), formatDays(b.Pools.TotalVacationDays)),
			fmt.Sprintf("%dh / %dh", b.Pools.PersonalHours, b.Pools.TotalPersonalHours),
			fmt.Sprintf("%dh / %dh", b.Pools.RemoteHours, b.Pools.TotalRemoteHours),
			fmt.Sprintf("%dh / %dh", b.Pools.AvailableHours, b.Pools.TotalAvailableHours),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDays(d float64) string {
	if d == float64(int(d)) {
		return fmt.Sprintf("%d", int(d))
	}
	return fmt.Sprintf("%.1f", d)
}

// CalendarCSV exports approved leave overlapping [from, to] in a layout that
// common calendar tools import directly.
func (s *Service) CalendarCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	leaves, err := s.Store.ListApprovedLeave(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return renderCalendarCSV(leaves)
}

var csvHeader = []string{"Subject", "Start Date", "End Date", "All Day Event", "Start Time", "End Time", "Description"}

func renderCalendarCSV(leaves []LeaveRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range leaves {
		event := notify.CalendarEvent(row.Employee, row.Request)
		record := []string{
			event.Title,
			event.Start.Format("2006-01-02"),
			event.End.Format("2006-01-02"),
			boolWord(event.AllDay),
			event.StartTime,
			event.EndTime,
			row.Request.Reason,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func boolWord(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
