package service

import (
	"context"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

// CreateMaintenanceEvent is the explicit creation command. Unknown JSON
// fields are rejected at the HTTP boundary, never turned into columns.
type CreateMaintenanceEvent struct {
	BikeID       int32                    `json:"bike_id"`
	Type         domain.MaintenanceType   `json:"maintenance_type"`
	Status       domain.MaintenanceStatus `json:"status"`
	PartsNeed    domain.PartsNeed         `json:"parts_need"`
	Description  string                   `json:"description"`
	Notes        string                   `json:"notes"`
	ScheduledFor *time.Time               `json:"scheduled_for"`
	CreatedByID  *int32                   `json:"created_by_id"`
}

// UpdateMaintenanceEvent is the explicit partial-update command; nil fields
// are left untouched.
type UpdateMaintenanceEvent struct {
	Status        *domain.MaintenanceStatus `json:"status"`
	PartsNeed     *domain.PartsNeed         `json:"parts_need"`
	Description   *string                   `json:"description"`
	Notes         *string                   `json:"notes"`
	ScheduledFor  *time.Time                `json:"scheduled_for"`
	TestedAt      *time.Time                `json:"tested_at"`
	StartedByID   *int32                    `json:"started_by_id"`
	CompletedByID *int32                    `json:"completed_by_id"`
}

func (u *UpdateMaintenanceEvent) Empty() bool {
	return u.Status == nil && u.PartsNeed == nil && u.Description == nil && u.Notes == nil &&
		u.ScheduledFor == nil && u.TestedAt == nil && u.StartedByID == nil && u.CompletedByID == nil
}

type MaintenanceService interface {
	ListEvents(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error)
	GetEvent(ctx context.Context, id int32) (*domain.MaintenanceEvent, error)
	CreateEvent(ctx context.Context, cmd *CreateMaintenanceEvent) (*domain.MaintenanceEvent, error)
	UpdateEvent(ctx context.Context, id int32, cmd *UpdateMaintenanceEvent) (*domain.MaintenanceEvent, error)
	DeleteEvent(ctx context.Context, id int32) error
}

type AddPartUsage struct {
	PartID         int32 `json:"part_id"`
	UsedQuantity   int32 `json:"used_quantity"`
	NeededQuantity int32 `json:"needed_quantity"`
}

type PartUsageService interface {
	ListUsages(ctx context.Context, eventID int32) ([]domain.PartUsage, error)
	AddUsages(ctx context.Context, eventID int32, cmds []AddPartUsage) ([]domain.PartUsage, error)
	UpdateUsage(ctx context.Context, eventID, partID int32, used, needed *int32) (*domain.PartUsage, error)
	RemoveUsage(ctx context.Context, eventID, partID int32) error
}

type ScheduleService interface {
	ListSchedules(ctx context.Context) ([]domain.WeeklySchedule, error)
	ReplaceBikeSchedule(ctx context.Context, bikeID int32, days []int32) error
	GenerateWeekly(ctx context.Context) (*WeeklyGenerationReport, error)
}

type UpdateBike struct {
	Brand        *string            `json:"brand"`
	Model        *string            `json:"model"`
	SerialNumber *string            `json:"serial_number"`
	FrameSize    *string            `json:"frame_size"`
	Color        *string            `json:"color"`
	Year         *int32             `json:"year"`
	PriceCents   *int32             `json:"price_cents"`
	Status       *domain.BikeStatus `json:"status"`
	Notes        *string            `json:"notes"`
}

func (u *UpdateBike) Empty() bool {
	return u.Brand == nil && u.Model == nil && u.SerialNumber == nil && u.FrameSize == nil &&
		u.Color == nil && u.Year == nil && u.PriceCents == nil && u.Status == nil && u.Notes == nil
}

type BikeService interface {
	ListBikes(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error)
	GetBike(ctx context.Context, id int32) (*domain.Bike, error)
	CreateBike(ctx context.Context, bike *domain.Bike) error
	UpdateBike(ctx context.Context, id int32, cmd *UpdateBike) (*domain.Bike, error)
	DeleteBike(ctx context.Context, id int32) error
}

type UpdatePart struct {
	Name             *string `json:"name"`
	Category         *string `json:"category"`
	Manufacturer     *string `json:"manufacturer"`
	UnitPriceCents   *int32  `json:"unit_price_cents"`
	StockQuantity    *int32  `json:"stock_quantity"`
	MinStockQuantity *int32  `json:"min_stock_quantity"`
}

func (u *UpdatePart) Empty() bool {
	return u.Name == nil && u.Category == nil && u.Manufacturer == nil &&
		u.UnitPriceCents == nil && u.StockQuantity == nil && u.MinStockQuantity == nil
}

type PartService interface {
	ListParts(ctx context.Context, filter repository.PartFilter) ([]domain.Part, int32, error)
	GetPart(ctx context.Context, id int32) (*domain.Part, error)
	CreatePart(ctx context.Context, part *domain.Part) error
	UpdatePart(ctx context.Context, id int32, cmd *UpdatePart) (*domain.Part, error)
	DeletePart(ctx context.Context, id int32) error
}

type UpdatePurchaseRequest struct {
	Quantity *int32                   `json:"quantity"`
	Priority *domain.PurchasePriority `json:"priority"`
	Status   *domain.PurchaseStatus   `json:"status"`
	Notes    *string                  `json:"notes"`
}

func (u *UpdatePurchaseRequest) Empty() bool {
	return u.Quantity == nil && u.Priority == nil && u.Status == nil && u.Notes == nil
}

type PurchaseService interface {
	ListRequests(ctx context.Context, status string, page, pageSize int32) ([]domain.PurchaseRequest, int32, error)
	GetRequest(ctx context.Context, id int32) (*domain.PurchaseRequest, error)
	CreateRequest(ctx context.Context, req *domain.PurchaseRequest) error
	UpdateRequest(ctx context.Context, id int32, cmd *UpdatePurchaseRequest) (*domain.PurchaseRequest, error)
	DeleteRequest(ctx context.Context, id int32) error
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
}

type EmailService interface {
	SendPurchaseStatusNotification(ctx context.Context, req *domain.PurchaseRequest) error
	SendLowStockAlert(ctx context.Context, parts []domain.Part) error
	SendWeeklyGenerationSummary(ctx context.Context, report *WeeklyGenerationReport) error
}
