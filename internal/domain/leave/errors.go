package leave

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("leave request not found")
	// ErrAlreadyProcessed is returned when a decision targets a request that
	// is no longer pending.
	ErrAlreadyProcessed = errors.New("request already processed")
)

// ValidationError rejects a submission before anything is persisted.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "invalid leave request: " + strings.Join(e.Issues, "; ")
}

// InsufficientBalanceError rejects a submission that exceeds the available
// balance. The message always cites both amounts.
type InsufficientBalanceError struct {
	Pool      Pool
	Available float64
	Requested float64
	Unit      string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: available %s, requested %s",
		e.Pool, formatAmount(e.Available, e.Unit), formatAmount(e.Requested, e.Unit))
}

func formatAmount(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d%s", int64(v), unit)
	}
	return fmt.Sprintf("%.1f%s", v, unit)
}
