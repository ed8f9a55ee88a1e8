// Package queue defines the visit event payload and the consumer that
// appends events to a log file.
package queue

// VisitRecordedEvent is published after a visit row is inserted.  It carries
// enough for downstream consumers to log or aggregate without querying
// MySQL.
type VisitRecordedEvent struct {
	VisitID     uint64 `json:"visit_id"`
	IPAddress   string `json:"ip_address"`
	VisitedAt   string `json:"visited_at"`
	TotalVisits int64  `json:"total_visits"`
}
