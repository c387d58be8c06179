package domain

import "time"

type MaintenanceType string

const (
	MaintenanceTypeCurrent  MaintenanceType = "current"
	MaintenanceTypeWeekly   MaintenanceType = "weekly"
	MaintenanceTypeLongterm MaintenanceType = "longterm"
)

func (t MaintenanceType) Valid() bool {
	switch t {
	case MaintenanceTypeCurrent, MaintenanceTypeWeekly, MaintenanceTypeLongterm:
		return true
	}
	return false
}

type MaintenanceStatus string

const (
	MaintenanceStatusPlanned    MaintenanceStatus = "planned"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusPlanned, MaintenanceStatusInProgress, MaintenanceStatusCompleted:
		return true
	}
	return false
}

func statusRank(s MaintenanceStatus) int {
	switch s {
	case MaintenanceStatusPlanned:
		return 0
	case MaintenanceStatusInProgress:
		return 1
	case MaintenanceStatusCompleted:
		return 2
	}
	return -1
}

// CanTransition reports whether a status change is allowed. Transitions are
// one-directional: planned -> in_progress -> completed, skipping ahead is
// allowed, moving backwards never is.
func CanTransition(from, to MaintenanceStatus) bool {
	return statusRank(from) >= 0 && statusRank(to) > statusRank(from)
}

type PartsNeed string

const (
	PartsNeedNotNeeded PartsNeed = "not_needed"
	PartsNeedNeeded    PartsNeed = "needed"
	PartsNeedOrdered   PartsNeed = "ordered"
	PartsNeedDelivered PartsNeed = "delivered"
)

func (p PartsNeed) Valid() bool {
	switch p {
	case PartsNeedNotNeeded, PartsNeedNeeded, PartsNeedOrdered, PartsNeedDelivered:
		return true
	}
	return false
}

type MaintenanceEvent struct {
	ID            int32             `json:"id"`
	BikeID        int32             `json:"bike_id"`
	Type          MaintenanceType   `json:"maintenance_type"`
	Status        MaintenanceStatus `json:"status"`
	PartsNeed     PartsNeed         `json:"parts_need"`
	Description   string            `json:"description"`
	Notes         string            `json:"notes"`
	ScheduledFor  *time.Time        `json:"scheduled_for,omitempty"`
	StartedAt     *time.Time        `json:"started_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	TestedAt      *time.Time        `json:"tested_at,omitempty"`
	CreatedByID   *int32            `json:"created_by_id,omitempty"`
	StartedByID   *int32            `json:"started_by_id,omitempty"`
	CompletedByID *int32            `json:"completed_by_id,omitempty"`
	CreatedOn     time.Time         `json:"created_on"`
	UpdatedOn     time.Time         `json:"updated_on"`

	// Display fields joined from bikes and users when fetching events.
	BikeBrand        string  `json:"bike_brand,omitempty"`
	BikeModel        string  `json:"bike_model,omitempty"`
	BikeSerialNumber string  `json:"bike_serial_number,omitempty"`
	CreatedByName    *string `json:"created_by_name,omitempty"`
	StartedByName    *string `json:"started_by_name,omitempty"`
	CompletedByName  *string `json:"completed_by_name,omitempty"`
}

// IsConflicting reports whether this event blocks another repair on the same
// bike. Only an in-progress event counts, and long-term jobs are exempt; a
// planned event of any type never blocks. The partial unique index
// maintenance_events_one_active_repair in db/schema.sql is built on the same
// predicate, and create/update/delete all rely on this one definition.
func (e *MaintenanceEvent) IsConflicting() bool {
	return e.Status == MaintenanceStatusInProgress && e.Type != MaintenanceTypeLongterm
}
