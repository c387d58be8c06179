package repository

import (
	"context"
	"time"

	"velotrack-backoffice/internal/domain"
)

type BikeFilter struct {
	Status   string
	Brand    string
	Page     int32
	PageSize int32
}

type BikeRepository interface {
	Create(ctx context.Context, bike *domain.Bike) error
	GetByID(ctx context.Context, id int32) (*domain.Bike, error)
	Update(ctx context.Context, bike *domain.Bike) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter BikeFilter) ([]domain.Bike, int32, error)
}

type MaintenanceFilter struct {
	BikeID    *int32
	Type      string
	Status    string
	PartsNeed string
	From      *time.Time
	To        *time.Time
	Page      int32
	PageSize  int32
}

type MaintenanceRepository interface {
	// Create inserts the event and, when bikeStatus is non-nil, updates the
	// bike's condition status in the same transaction. A violation of the
	// one-active-repair index surfaces as *domain.ConflictError.
	Create(ctx context.Context, event *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error
	GetByID(ctx context.Context, id int32) (*domain.MaintenanceEvent, error)
	// Update persists the event and optionally projects bikeStatus onto the
	// bike, atomically. A projection back to in_stock only applies while the
	// bike is still marked in_repair. Conflict mapping matches Create.
	Update(ctx context.Context, event *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error
	// DeleteAndRecompute removes the event and, inside the same transaction,
	// recounts the bike's remaining active repairs; when none remain and the
	// bike is still marked in_repair its status reverts to in_stock. Returns
	// whether the status was reset.
	DeleteAndRecompute(ctx context.Context, id, bikeID int32) (bool, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error)
	// GetActiveForBike returns the event currently blocking repairs on the
	// bike, or nil when there is none.
	GetActiveForBike(ctx context.Context, bikeID int32) (*domain.MaintenanceEvent, error)
	// ListSchedulingSnapshot returns the events the weekly generator must see:
	// planned or in-progress events scheduled inside [weekStart, weekEnd],
	// plus every in-progress event regardless of date.
	ListSchedulingSnapshot(ctx context.Context, weekStart, weekEnd time.Time) ([]domain.MaintenanceEvent, error)
}

type PartUsageRepository interface {
	ListByEvent(ctx context.Context, eventID int32) ([]domain.PartUsage, error)
	GetByEventAndPart(ctx context.Context, eventID, partID int32) (*domain.PartUsage, error)
	// AddAll inserts the batch in one transaction: every row snapshots the
	// part's current unit price and decrements stock by its used quantity.
	// Any failure rolls back the entire batch.
	AddAll(ctx context.Context, usages []*domain.PartUsage) error
	// UpdateQuantities persists new used/needed quantities and applies
	// stockDelta (new used minus old used) to the part's stock.
	UpdateQuantities(ctx context.Context, usage *domain.PartUsage, stockDelta int32) error
	// Remove deletes the usage row and returns restockQuantity units to stock.
	Remove(ctx context.Context, id, partID, restockQuantity int32) error
}

type PartFilter struct {
	Category string
	Query    string
	Page     int32
	PageSize int32
}

type PartRepository interface {
	Create(ctx context.Context, part *domain.Part) error
	GetByID(ctx context.Context, id int32) (*domain.Part, error)
	Update(ctx context.Context, part *domain.Part) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, filter PartFilter) ([]domain.Part, int32, error)
	AdjustStock(ctx context.Context, id, delta int32) error
	ListBelowMinStock(ctx context.Context) ([]domain.Part, error)
}

type PurchaseRequestRepository interface {
	Create(ctx context.Context, req *domain.PurchaseRequest) error
	GetByID(ctx context.Context, id int32) (*domain.PurchaseRequest, error)
	Update(ctx context.Context, req *domain.PurchaseRequest) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.PurchaseRequest, int32, error)
}

type WeeklyScheduleRepository interface {
	ListAll(ctx context.Context) ([]domain.WeeklySchedule, error)
	ListActive(ctx context.Context) ([]domain.WeeklySchedule, error)
	// ReplaceForBike swaps the bike's day assignments in one transaction.
	ReplaceForBike(ctx context.Context, bikeID int32, days []int32) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
