package core

// AdjustTotal recomputes an available balance after an admin edits the pool's
// total allotment. The delta between the old and new total is applied to the
// available amount so already-consumed usage is preserved; the result is
// clamped to [0, newTotal].
func AdjustTotal(available, total, newTotal float64) float64 {
	next := available + (newTotal - total)
	if next < 0 {
		return 0
	}
	if next > newTotal {
		return newTotal
	}
	return next
}

// AdjustTotalHours is AdjustTotal for the hour-denominated pools.
func AdjustTotalHours(available, total, newTotal int) int {
	next := available + (newTotal - total)
	if next < 0 {
		return 0
	}
	if next > newTotal {
		return newTotal
	}
	return next
}

// TotalsUpdate carries an admin edit of pool allotments. Nil fields are left
// untouched; each set field is adjusted independently.
type TotalsUpdate struct {
	TotalVacationDays   *float64 `json:"totalVacationDays"`
	TotalPersonalHours  *int     `json:"totalPersonalHours"`
	TotalRemoteHours    *int     `json:"totalRemoteHours"`
	TotalAvailableHours *int     `json:"totalAvailableHours"`
}

// Apply returns the pools after a delta-preserving totals edit.
func (u TotalsUpdate) Apply(p Pools) Pools {
	if u.TotalVacationDays != nil {
		p.VacationDays = AdjustTotal(p.VacationDays, p.TotalVacationDays, *u.TotalVacationDays)
		p.TotalVacationDays = *u.TotalVacationDays
	}
	if u.TotalPersonalHours != nil {
		p.PersonalHours = AdjustTotalHours(p.PersonalHours, p.TotalPersonalHours, *u.TotalPersonalHours)
		p.TotalPersonalHours = *u.TotalPersonalHours
	}
	if u.TotalRemoteHours != nil {
		p.RemoteHours = AdjustTotalHours(p.RemoteHours, p.TotalRemoteHours, *u.TotalRemoteHours)
		p.TotalRemoteHours = *u.TotalRemoteHours
	}
	if u.TotalAvailableHours != nil {
		p.AvailableHours = AdjustTotalHours(p.AvailableHours, p.TotalAvailableHours, *u.TotalAvailableHours)
		p.TotalAvailableHours = *u.TotalAvailableHours
	}
	return p
}

func (u TotalsUpdate) Empty() bool {
	return u.TotalVacationDays == nil && u.TotalPersonalHours == nil &&
		u.TotalRemoteHours == nil && u.TotalAvailableHours == nil
}

func (u TotalsUpdate) Valid() bool {
	if u.TotalVacationDays != nil && *u.TotalVacationDays < 0 {
		return false
	}
	if u.TotalPersonalHours != nil && *u.TotalPersonalHours < 0 {
		return false
	}
	if u.TotalRemoteHours != nil && *u.TotalRemoteHours < 0 {
		return false
	}
	if u.TotalAvailableHours != nil && *u.TotalAvailableHours < 0 {
		return false
	}
	return true
}
