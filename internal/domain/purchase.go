package domain

import "time"

type PurchasePriority string

const (
	PurchasePriorityLow    PurchasePriority = "low"
	PurchasePriorityNormal PurchasePriority = "normal"
	PurchasePriorityHigh   PurchasePriority = "high"
	PurchasePriorityUrgent PurchasePriority = "urgent"
)

func (p PurchasePriority) Valid() bool {
	switch p {
	case PurchasePriorityLow, PurchasePriorityNormal, PurchasePriorityHigh, PurchasePriorityUrgent:
		return true
	}
	return false
}

type PurchaseStatus string

const (
	PurchaseStatusNew       PurchaseStatus = "new"
	PurchaseStatusOrdered   PurchaseStatus = "ordered"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

func (s PurchaseStatus) Valid() bool {
	switch s {
	case PurchaseStatusNew, PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// CanTransitionPurchase allows new -> ordered -> received, and cancellation
// from any non-terminal state.
func CanTransitionPurchase(from, to PurchaseStatus) bool {
	switch from {
	case PurchaseStatusNew:
		return to == PurchaseStatusOrdered || to == PurchaseStatusCancelled
	case PurchaseStatusOrdered:
		return to == PurchaseStatusReceived || to == PurchaseStatusCancelled
	}
	return false
}

type PurchaseRequest struct {
	ID          int32            `json:"id"`
	PartID      int32            `json:"part_id"`
	Quantity    int32            `json:"quantity"`
	Priority    PurchasePriority `json:"priority"`
	Status      PurchaseStatus   `json:"status"`
	Notes       string           `json:"notes"`
	CreatedByID *int32           `json:"created_by_id,omitempty"`
	CreatedOn   time.Time        `json:"created_on"`
	UpdatedOn   time.Time        `json:"updated_on"`

	PartName string `json:"part_name,omitempty"`
}
