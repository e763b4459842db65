package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps process-local counters. The /metrics endpoint exposes a
// snapshot; there is no external metrics backend.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	clientErrors    uint64
	totalDurationMs uint64

	leaveSubmitted uint64
	leaveApproved  uint64
	leaveRejected  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status >= 400 && status < 500 {
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) LeaveSubmitted() { atomic.AddUint64(&c.leaveSubmitted, 1) }
func (c *Collector) LeaveApproved()  { atomic.AddUint64(&c.leaveApproved, 1) }
func (c *Collector) LeaveRejected()  { atomic.AddUint64(&c.leaveRejected, 1) }

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"clientErrorsTotal":   clientErrs,
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
		"leaveSubmittedTotal": atomic.LoadUint64(&c.leaveSubmitted),
		"leaveApprovedTotal":  atomic.LoadUint64(&c.leaveApproved),
		"leaveRejectedTotal":  atomic.LoadUint64(&c.leaveRejected),
	}
}
