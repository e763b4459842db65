package leave

import "leavedesk/internal/domain/core"

// Pool names a ledger resource a request draws from.
type Pool string

const (
	// PoolNone marks record-only types: LICENSE is tracked but never
	// deducted from any counter.
	PoolNone      Pool = "none"
	PoolVacation  Pool = "vacation days"
	PoolPersonal  Pool = "personal hours"
	PoolRemote    Pool = "remote hours"
	PoolAvailable Pool = "available hours"
)

// Deduction is the quantity a request costs. Days and Hours are mutually
// exclusive, selected by the pool.
type Deduction struct {
	Pool  Pool
	Days  float64
	Hours int
}

// Deduct computes what approving the request would subtract from the
// employee's ledger. Submission-time sufficiency checks and the approval
// debit both use this function, so the two can never disagree.
func Deduct(r Request) Deduction {
	switch r.Type {
	case TypeLicense:
		return Deduction{Pool: PoolNone}
	case TypeVacation:
		return Deduction{Pool: PoolVacation, Days: LicenseDays(r.StartDate, r.EndDate, r.halfDay())}
	case TypePersonal:
		return Deduction{Pool: PoolPersonal, Hours: shiftOrFullDayHours(r.Shift)}
	case TypeRemote:
		return Deduction{Pool: PoolRemote, Hours: shiftOrFullDayHours(r.Shift)}
	case TypeHours:
		hours := 0
		if r.Hours != nil {
			hours = *r.Hours
		}
		return Deduction{Pool: PoolAvailable, Hours: hours}
	}
	return Deduction{Pool: PoolNone}
}

// A missing shift deducts a full day.
func shiftOrFullDayHours(shift *Shift) int {
	if shift == nil {
		return ShiftHours(ShiftFullDay)
	}
	return ShiftHours(*shift)
}

// CheckSufficiency validates the request against the employee's available
// balances. LICENSE is always sufficient. Returns *InsufficientBalanceError
// when the pool cannot cover the request.
func CheckSufficiency(pools core.Pools, r Request) error {
	d := Deduct(r)
	switch d.Pool {
	case PoolNone:
		return nil
	case PoolVacation:
		if d.Days > pools.VacationDays {
			return &InsufficientBalanceError{Pool: d.Pool, Available: pools.VacationDays, Requested: d.Days, Unit: "d"}
		}
	case PoolPersonal:
		if d.Hours > pools.PersonalHours {
			return &InsufficientBalanceError{Pool: d.Pool, Available: float64(pools.PersonalHours), Requested: float64(d.Hours), Unit: "h"}
		}
	case PoolRemote:
		if d.Hours > pools.RemoteHours {
			return &InsufficientBalanceError{Pool: d.Pool, Available: float64(pools.RemoteHours), Requested: float64(d.Hours), Unit: "h"}
		}
	case PoolAvailable:
		if d.Hours > pools.AvailableHours {
			return &InsufficientBalanceError{Pool: d.Pool, Available: float64(pools.AvailableHours), Requested: float64(d.Hours), Unit: "h"}
		}
	}
	return nil
}

// ApplyDebit subtracts the request's cost from the pools. Applied exactly
// once, on the PENDING to APPROVED transition, inside the same transaction
// as the status change. Balances are not clamped: an admin approval that
// exceeds the remaining balance drives the pool negative, and reports
// surface it.
func ApplyDebit(pools core.Pools, r Request) core.Pools {
	d := Deduct(r)
	switch d.Pool {
	case PoolVacation:
		pools.VacationDays -= d.Days
	case PoolPersonal:
		pools.PersonalHours -= d.Hours
	case PoolRemote:
		pools.RemoteHours -= d.Hours
	case PoolAvailable:
		pools.AvailableHours -= d.Hours
	}
	return pools
}
