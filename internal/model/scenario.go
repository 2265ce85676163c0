package model

import "time"

// SavedScenario is one persisted proposal: the full assumption snapshot
// plus the technical results current at save time. Scenarios are
// immutable once created; there is no update operation, only delete.
type SavedScenario struct {
	ID          string
	Name        string
	CreatedAt   time.Time
	Assumptions ProjectAssumptions
	Estimate    SolarEstimate
	Summary     ProjectionSummary
}
