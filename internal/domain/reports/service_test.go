package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"leavedesk/internal/domain/core"
	"leavedesk/internal/domain/leave"
)

func TestRenderBalancesPDF(t *testing.T) {
	balances := []BalanceRow{
		{
			FirstName: "Ana", LastName: "García", AreaName: "Sistemas",
			Pools: core.Pools{
				VacationDays: 12.5, TotalVacationDays: 20,
				PersonalHours: 16, TotalPersonalHours: 24,
				RemoteHours: -5, TotalRemoteHours: 40,
				AvailableHours: 8, TotalAvailableHours: 8,
			},
		},
	}
	data, err := renderBalancesPDF(balances, time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderBalancesPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("output is not a PDF document")
	}
}

func TestRenderBalancesPDFEmpty(t *testing.T) {
	data, err := renderBalancesPDF(nil, time.Now())
	if err != nil {
		t.Fatalf("renderBalancesPDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected a document even with no employees")
	}
}

func TestFormatDays(t *testing.T) {
	cases := map[float64]string{20: "20", 12.5: "12.5", 0: "0", -2.5: "-2.5"}
	for in, want := range cases {
		if got := formatDays(in); got != want {
			t.Errorf("formatDays(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderCalendarCSV(t *testing.T) {
	shift := leave.ShiftMorning
	start, end := "09:00", "12:00"
	hours := 3
	leaves := []LeaveRow{
		{
			Employee: core.Employee{FirstName: "Ana", LastName: "García"},
			Request: leave.Request{
				Type:      leave.TypeVacation,
				Status:    leave.StatusApproved,
				StartDate: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 8, 9, 0, 0, 0, 0, time.UTC),
				Reason:    "viaje familiar",
			},
		},
		{
			Employee: core.Employee{FirstName: "Bruno", LastName: "Díaz"},
			Request: leave.Request{
				Type:      leave.TypeHours,
				Status:    leave.StatusApproved,
				StartDate: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
				Hours:     &hours,
				StartTime: &start,
				EndTime:   &end,
				Shift:     &shift,
			},
		},
	}

	data, err := renderCalendarCSV(leaves)
	if err != nil {
		t.Fatalf("renderCalendarCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "Subject,Start Date,End Date") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "AG Vacaciones") || !strings.Contains(lines[1], "2024-08-01") || !strings.Contains(lines[1], "TRUE") {
		t.Fatalf("vacation row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "BD Pedido de Horas") || !strings.Contains(lines[2], "FALSE") || !strings.Contains(lines[2], "09:00") {
		t.Fatalf("hours row = %q", lines[2])
	}
}

func TestRenderCalendarCSVEmpty(t *testing.T) {
	data, err := renderCalendarCSV(nil)
	if err != nil {
		t.Fatalf("renderCalendarCSV: %v", err)
	}
	if got := strings.TrimSpace(string(data)); !strings.HasPrefix(got, "Subject,") || strings.Count(got, "\n") != 0 {
		t.Fatalf("empty export = %q", got)
	}
}
