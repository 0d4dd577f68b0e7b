package domain

import "time"

// Slot is a candidate booking window computed by the availability engine.
// It is never persisted; the appointments table is the source of truth.
type Slot struct {
	EmployeeID int64
	StartTime  time.Time
}
