package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

// mockMaintenanceRepo
type mockMaintenanceRepo struct {
	mock.Mock
}

func (m *mockMaintenanceRepo) Create(ctx context.Context, event *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error {
	args := m.Called(ctx, event, bikeStatus)
	return args.Error(0)
}
func (m *mockMaintenanceRepo) GetByID(ctx context.Context, id int32) (*domain.MaintenanceEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceEvent), args.Error(1)
}
func (m *mockMaintenanceRepo) Update(ctx context.Context, event *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error {
	args := m.Called(ctx, event, bikeStatus)
	return args.Error(0)
}
func (m *mockMaintenanceRepo) DeleteAndRecompute(ctx context.Context, id, bikeID int32) (bool, error) {
	args := m.Called(ctx, id, bikeID)
	return args.Bool(0), args.Error(1)
}
func (m *mockMaintenanceRepo) List(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.MaintenanceEvent), args.Get(1).(int32), args.Error(2)
}
func (m *mockMaintenanceRepo) GetActiveForBike(ctx context.Context, bikeID int32) (*domain.MaintenanceEvent, error) {
	args := m.Called(ctx, bikeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceEvent), args.Error(1)
}
func (m *mockMaintenanceRepo) ListSchedulingSnapshot(ctx context.Context, weekStart, weekEnd time.Time) ([]domain.MaintenanceEvent, error) {
	args := m.Called(ctx, weekStart, weekEnd)
	return args.Get(0).([]domain.MaintenanceEvent), args.Error(1)
}

// mockBikeRepo
type mockBikeRepo struct {
	mock.Mock
}

func (m *mockBikeRepo) Create(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *mockBikeRepo) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bike), args.Error(1)
}
func (m *mockBikeRepo) Update(ctx context.Context, bike *domain.Bike) error {
	args := m.Called(ctx, bike)
	return args.Error(0)
}
func (m *mockBikeRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockBikeRepo) List(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Bike), args.Get(1).(int32), args.Error(2)
}

// mockPartUsageRepo
type mockPartUsageRepo struct {
	mock.Mock
}

func (m *mockPartUsageRepo) ListByEvent(ctx context.Context, eventID int32) ([]domain.PartUsage, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.PartUsage), args.Error(1)
}
func (m *mockPartUsageRepo) GetByEventAndPart(ctx context.Context, eventID, partID int32) (*domain.PartUsage, error) {
	args := m.Called(ctx, eventID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartUsage), args.Error(1)
}
func (m *mockPartUsageRepo) AddAll(ctx context.Context, usages []*domain.PartUsage) error {
	args := m.Called(ctx, usages)
	return args.Error(0)
}
func (m *mockPartUsageRepo) UpdateQuantities(ctx context.Context, usage *domain.PartUsage, stockDelta int32) error {
	args := m.Called(ctx, usage, stockDelta)
	return args.Error(0)
}
func (m *mockPartUsageRepo) Remove(ctx context.Context, id, partID, restockQuantity int32) error {
	args := m.Called(ctx, id, partID, restockQuantity)
	return args.Error(0)
}

// mockPartRepo
type mockPartRepo struct {
	mock.Mock
}

func (m *mockPartRepo) Create(ctx context.Context, part *domain.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}
func (m *mockPartRepo) GetByID(ctx context.Context, id int32) (*domain.Part, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Part), args.Error(1)
}
func (m *mockPartRepo) Update(ctx context.Context, part *domain.Part) error {
	args := m.Called(ctx, part)
	return args.Error(0)
}
func (m *mockPartRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockPartRepo) List(ctx context.Context, filter repository.PartFilter) ([]domain.Part, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Part), args.Get(1).(int32), args.Error(2)
}
func (m *mockPartRepo) AdjustStock(ctx context.Context, id, delta int32) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}
func (m *mockPartRepo) ListBelowMinStock(ctx context.Context) ([]domain.Part, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Part), args.Error(1)
}

// mockScheduleRepo
type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) ListAll(ctx context.Context) ([]domain.WeeklySchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WeeklySchedule), args.Error(1)
}
func (m *mockScheduleRepo) ListActive(ctx context.Context) ([]domain.WeeklySchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WeeklySchedule), args.Error(1)
}
func (m *mockScheduleRepo) ReplaceForBike(ctx context.Context, bikeID int32, days []int32) error {
	args := m.Called(ctx, bikeID, days)
	return args.Error(0)
}

// mockPurchaseRepo
type mockPurchaseRepo struct {
	mock.Mock
}

func (m *mockPurchaseRepo) Create(ctx context.Context, req *domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *mockPurchaseRepo) GetByID(ctx context.Context, id int32) (*domain.PurchaseRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseRequest), args.Error(1)
}
func (m *mockPurchaseRepo) Update(ctx context.Context, req *domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *mockPurchaseRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *mockPurchaseRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.PurchaseRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.PurchaseRequest), args.Get(1).(int32), args.Error(2)
}

// mockEmailService
type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendPurchaseStatusNotification(ctx context.Context, req *domain.PurchaseRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *mockEmailService) SendLowStockAlert(ctx context.Context, parts []domain.Part) error {
	args := m.Called(ctx, parts)
	return args.Error(0)
}
func (m *mockEmailService) SendWeeklyGenerationSummary(ctx context.Context, report *WeeklyGenerationReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
