package leave

import (
	"fmt"
	"strings"
	"time"
)

// Normalize fills defaults and clears the fields the request's type does not
// use, so persisted rows honor the one-active-variant invariant.
func Normalize(r Request) Request {
	if r.EndDate.IsZero() {
		r.EndDate = r.StartDate
	}

	switch {
	case r.Type.UsesDateRange():
		r.Shift = nil
		r.Hours = nil
		r.StartTime = nil
		r.EndTime = nil
	case r.Type.UsesShift():
		r.EndDate = r.StartDate
		r.IsHalfDay = nil
		r.Hours = nil
		r.StartTime = nil
		r.EndTime = nil
	case r.Type.UsesHours():
		r.EndDate = r.StartDate
		r.IsHalfDay = nil
		r.Shift = nil
	}
	return r
}

// Validate checks the type-specific required fields of a normalized request.
// Returns *ValidationError listing every problem found.
func Validate(r Request) error {
	var issues []string

	if strings.TrimSpace(r.Reason) == "" {
		issues = append(issues, "reason is required")
	}
	if r.StartDate.IsZero() {
		issues = append(issues, "start date is required")
	}

	switch {
	case r.Type.UsesDateRange():
		if !r.StartDate.IsZero() && r.EndDate.Before(r.StartDate) {
			issues = append(issues, "end date must be on or after start date")
		}
	case r.Type.UsesShift():
		if r.Shift == nil {
			issues = append(issues, fmt.Sprintf("shift is required for %s requests", r.Type))
		}
	case r.Type.UsesHours():
		if r.Hours == nil || *r.Hours <= 0 {
			issues = append(issues, "hours must be a positive number")
		}
		if r.StartTime == nil || !validClockTime(*r.StartTime) {
			issues = append(issues, "start time must be HH:MM")
		}
		if r.EndTime == nil || !validClockTime(*r.EndTime) {
			issues = append(issues, "end time must be HH:MM")
		}
	default:
		issues = append(issues, fmt.Sprintf("unknown leave type %q", r.Type))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validClockTime(value string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(value))
	return err == nil
}
