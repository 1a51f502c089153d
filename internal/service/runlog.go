package service

import "sync"

// RunLog keeps the most recent ingest run reports in memory, newest first.
// Reports do not survive restarts; durable evidence lives in the database.
type RunLog struct {
	mu      sync.Mutex
	max     int
	reports []*SourceReport
}

// NewRunLog creates a run log holding up to max reports
func NewRunLog(max int) *RunLog {
	if max <= 0 {
		max = 20
	}
	return &RunLog{max: max}
}

// Add records a report, evicting the oldest once full
func (l *RunLog) Add(report *SourceReport) {
	if report == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reports = append([]*SourceReport{report}, l.reports...)
	if len(l.reports) > l.max {
		l.reports = l.reports[:l.max]
	}
}

// Recent returns a copy of the stored reports, newest first
func (l *RunLog) Recent() []*SourceReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*SourceReport, len(l.reports))
	copy(out, l.reports)
	return out
}
