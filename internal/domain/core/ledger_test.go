package core

import "testing"

func TestAdjustTotalPreservesConsumption(t *testing.T) {
	// 8 of 20 days already consumed; raising the total to 25 keeps the
	// consumed amount at 8.
	got := AdjustTotal(12, 20, 25)
	if got != 17 {
		t.Fatalf("expected 17, got %v", got)
	}
}

func TestAdjustTotalClampsAtZero(t *testing.T) {
	got := AdjustTotal(2, 20, 10)
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestAdjustTotalClampsAtNewTotal(t *testing.T) {
	// Nothing consumed: available tracks the total exactly.
	got := AdjustTotal(20, 20, 15)
	if got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestAdjustTotalHours(t *testing.T) {
	cases := []struct {
		name                       string
		available, total, newTotal int
		want                       int
	}{
		{"raise", 10, 40, 48, 18},
		{"lower", 30, 40, 24, 14},
		{"lower past consumption", 4, 40, 8, 0},
		{"unchanged", 16, 40, 40, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustTotalHours(tc.available, tc.total, tc.newTotal); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestTotalsUpdateAppliesIndependently(t *testing.T) {
	pools := Pools{
		VacationDays: 12, TotalVacationDays: 20,
		PersonalHours: 4, TotalPersonalHours: 16,
		RemoteHours: 40, TotalRemoteHours: 40,
		AvailableHours: 8, TotalAvailableHours: 24,
	}

	newVacation := 25.0
	newRemote := 32
	update := TotalsUpdate{TotalVacationDays: &newVacation, TotalRemoteHours: &newRemote}

	got := update.Apply(pools)
	if got.VacationDays != 17 || got.TotalVacationDays != 25 {
		t.Fatalf("vacation pool wrong: %+v", got)
	}
	if got.RemoteHours != 32 || got.TotalRemoteHours != 32 {
		t.Fatalf("remote pool wrong: %+v", got)
	}
	// Untouched pools keep their values.
	if got.PersonalHours != 4 || got.TotalPersonalHours != 16 {
		t.Fatalf("personal pool mutated: %+v", got)
	}
	if got.AvailableHours != 8 || got.TotalAvailableHours != 24 {
		t.Fatalf("available pool mutated: %+v", got)
	}
}

func TestTotalsUpdateValid(t *testing.T) {
	negative := -1.0
	if (TotalsUpdate{TotalVacationDays: &negative}).Valid() {
		t.Fatal("expected negative total to be invalid")
	}
	if !(TotalsUpdate{}).Valid() {
		t.Fatal("expected empty update to be valid")
	}
	if !(TotalsUpdate{}).Empty() {
		t.Fatal("expected empty update to report Empty")
	}
}
