package leave

import (
	"errors"
	"strings"
	"testing"

	"leavedesk/internal/domain/core"
)

func shiftPtr(s Shift) *Shift { return &s }
func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }

func fullPools() core.Pools {
	return core.Pools{
		VacationDays: 20, TotalVacationDays: 20,
		PersonalHours: 16, TotalPersonalHours: 16,
		RemoteHours: 40, TotalRemoteHours: 40,
		AvailableHours: 24, TotalAvailableHours: 24,
	}
}

func TestLicenseNeverDebits(t *testing.T) {
	pools := fullPools()
	requests := []Request{
		{Type: TypeLicense, StartDate: date(2024, 8, 1), EndDate: date(2024, 8, 1)},
		{Type: TypeLicense, StartDate: date(2024, 8, 1), EndDate: date(2024, 8, 1), IsHalfDay: boolPtr(true)},
		{Type: TypeLicense, StartDate: date(2024, 8, 1), EndDate: date(2024, 8, 15)},
	}
	for _, r := range requests {
		if err := CheckSufficiency(pools, r); err != nil {
			t.Fatalf("license must always be sufficient: %v", err)
		}
		pools = ApplyDebit(pools, r)
	}
	if pools != fullPools() {
		t.Fatalf("license approval mutated the ledger: %+v", pools)
	}
}

func TestVacationDebit(t *testing.T) {
	pools := fullPools()
	r := Request{Type: TypeVacation, StartDate: date(2024, 8, 1), EndDate: date(2024, 8, 3)}
	pools = ApplyDebit(pools, r)
	if pools.VacationDays != 17 {
		t.Fatalf("expected 17 vacation days, got %v", pools.VacationDays)
	}

	half := Request{Type: TypeVacation, StartDate: date(2024, 8, 5), EndDate: date(2024, 8, 5), IsHalfDay: boolPtr(true)}
	pools = ApplyDebit(pools, half)
	if pools.VacationDays != 16.5 {
		t.Fatalf("expected 16.5 vacation days, got %v", pools.VacationDays)
	}
}

func TestSufficiencyAndDebitAgree(t *testing.T) {
	// For every shift-based combination, an employee holding exactly the
	// shift's cost passes the check and is left at zero after the debit;
	// one hour less fails the check.
	for _, typ := range []Type{TypePersonal, TypeRemote} {
		for _, shift := range []Shift{ShiftMorning, ShiftAfternoon, ShiftFullDay} {
			cost := ShiftHours(shift)
			r := Request{Type: typ, StartDate: date(2024, 8, 1), Shift: shiftPtr(shift)}

			pools := core.Pools{PersonalHours: cost, RemoteHours: cost}
			if err := CheckSufficiency(pools, r); err != nil {
				t.Fatalf("%s/%s: expected sufficient, got %v", typ, shift, err)
			}
			debited := ApplyDebit(pools, r)
			remaining := debited.PersonalHours
			if typ == TypeRemote {
				remaining = debited.RemoteHours
			}
			if remaining != 0 {
				t.Fatalf("%s/%s: expected exact drain to 0, got %d", typ, shift, remaining)
			}

			short := core.Pools{PersonalHours: cost - 1, RemoteHours: cost - 1}
			if err := CheckSufficiency(short, r); err == nil {
				t.Fatalf("%s/%s: expected insufficiency", typ, shift)
			}
		}
	}
}

func TestInsufficientBalanceMessage(t *testing.T) {
	pools := core.Pools{PersonalHours: 4}
	r := Request{Type: TypePersonal, StartDate: date(2024, 8, 1), Shift: shiftPtr(ShiftFullDay)}

	err := CheckSufficiency(pools, r)
	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientBalanceError, got %v", err)
	}
	if insufficient.Available != 4 || insufficient.Requested != 8 {
		t.Fatalf("unexpected amounts: %+v", insufficient)
	}
	msg := err.Error()
	if !strings.Contains(msg, "4h") || !strings.Contains(msg, "8h") {
		t.Fatalf("message must cite both amounts: %q", msg)
	}
}

func TestPersonalShiftFallbackIsFullDay(t *testing.T) {
	pools := fullPools()
	r := Request{Type: TypePersonal, StartDate: date(2024, 8, 1)} // no shift
	debited := ApplyDebit(pools, r)
	if got := pools.PersonalHours - debited.PersonalHours; got != 8 {
		t.Fatalf("expected full-day fallback of 8h, got %d", got)
	}
}

func TestHoursDebit(t *testing.T) {
	pools := fullPools()
	r := Request{Type: TypeHours, StartDate: date(2024, 8, 1), Hours: intPtr(5)}
	debited := ApplyDebit(pools, r)
	if debited.AvailableHours != 19 {
		t.Fatalf("expected 19 available hours, got %d", debited.AvailableHours)
	}

	// Nil hours deducts nothing.
	empty := Request{Type: TypeHours, StartDate: date(2024, 8, 1)}
	if got := ApplyDebit(pools, empty); got != pools {
		t.Fatalf("nil hours mutated the ledger: %+v", got)
	}
}

func TestDebitDoesNotClamp(t *testing.T) {
	pools := core.Pools{RemoteHours: 3}
	r := Request{Type: TypeRemote, StartDate: date(2024, 8, 1), Shift: shiftPtr(ShiftFullDay)}
	debited := ApplyDebit(pools, r)
	if debited.RemoteHours != -5 {
		t.Fatalf("expected -5 remote hours, got %d", debited.RemoteHours)
	}
}

func TestDeductPoolSelection(t *testing.T) {
	cases := []struct {
		request Request
		pool    Pool
	}{
		{Request{Type: TypeLicense}, PoolNone},
		{Request{Type: TypeVacation}, PoolVacation},
		{Request{Type: TypePersonal}, PoolPersonal},
		{Request{Type: TypeRemote}, PoolRemote},
		{Request{Type: TypeHours}, PoolAvailable},
		{Request{Type: Type("BOGUS")}, PoolNone},
	}
	for _, tc := range cases {
		if got := Deduct(tc.request).Pool; got != tc.pool {
			t.Fatalf("%s: expected pool %q, got %q", tc.request.Type, tc.pool, got)
		}
	}
}
