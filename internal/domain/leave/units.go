package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftHours maps a shift to its hour cost. An unknown shift maps to zero,
// meaning nothing can be deducted for it. Sufficiency checks and approval
// debits both go through this single mapping.
func ShiftHours(shift Shift) int {
	switch shift {
	case ShiftMorning:
		return 5
	case ShiftAfternoon:
		return 3
	case ShiftFullDay:
		return 8
	}
	return 0
}

const hoursPerDay = 8

// LicenseDays returns the inclusive day count of a date range. A range of
// exactly one day with the half-day flag counts as 0.5; multi-day ranges
// ignore the flag (a multi-day half-day request is not representable).
func LicenseDays(start, end time.Time, isHalfDay bool) float64 {
	if end.Before(start) {
		end = start
	}
	days := daysBetween(start, end) + 1
	if days == 1 && isHalfDay {
		return 0.5
	}
	return float64(days)
}

func daysBetween(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	diff := endDay.Sub(startDay)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// HoursToDisplayDays converts an hour balance to days for display, rounded
// to two decimals. Ledger state stays in hours; this is presentation only.
func HoursToDisplayDays(hours int) float64 {
	days, _ := decimal.NewFromInt(int64(hours)).
		Div(decimal.NewFromInt(hoursPerDay)).
		Round(2).
		Float64()
	return days
}

// DaysToHours converts a day count entered in the UI back to ledger hours.
func DaysToHours(days float64) int {
	return int(decimal.NewFromFloat(days).
		Mul(decimal.NewFromInt(hoursPerDay)).
		Round(0).
		IntPart())
}

// Availability is a human-readable decomposition of an hour balance. It is
// never used in deduction decisions.
type Availability struct {
	FullDays         int  `json:"fullDays"`
	HasMorningLeft   bool `json:"hasMorningLeft"`
	HasAfternoonLeft bool `json:"hasAfternoonLeft"`
}

func FormatAvailable(hours int) Availability {
	if hours < 0 {
		return Availability{}
	}
	remainder := hours % hoursPerDay
	return Availability{
		FullDays:         hours / hoursPerDay,
		HasMorningLeft:   remainder >= ShiftHours(ShiftMorning),
		HasAfternoonLeft: remainder >= ShiftHours(ShiftAfternoon),
	}
}
