package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velotrack-backoffice/internal/domain"
)

func TestPartUsageService_AddUsages(t *testing.T) {
	ctx := context.Background()

	t.Run("records the batch against the event in one call", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		maintRepo := new(mockMaintenanceRepo)
		svc := NewPartUsageService(usageRepo, maintRepo)

		maintRepo.On("GetByID", ctx, int32(10)).Return(&domain.MaintenanceEvent{ID: 10}, nil)
		usageRepo.On("AddAll", ctx, mock.MatchedBy(func(usages []*domain.PartUsage) bool {
			return len(usages) == 2 &&
				usages[0].EventID == 10 && usages[0].PartID == 3 && usages[0].UsedQuantity == 2 &&
				usages[1].EventID == 10 && usages[1].PartID == 4 && usages[1].NeededQuantity == 1
		})).Run(func(args mock.Arguments) {
			usages := args.Get(1).([]*domain.PartUsage)
			usages[0].ID = 100
			usages[0].UnitPriceCents = 1250
			usages[1].ID = 101
		}).Return(nil)

		created, err := svc.AddUsages(ctx, 10, []AddPartUsage{
			{PartID: 3, UsedQuantity: 2},
			{PartID: 4, NeededQuantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, int32(1250), created[0].UnitPriceCents)
		usageRepo.AssertExpectations(t)
	})

	t.Run("an invalid command anywhere in the batch blocks every write", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		maintRepo := new(mockMaintenanceRepo)
		svc := NewPartUsageService(usageRepo, maintRepo)

		maintRepo.On("GetByID", ctx, int32(10)).Return(&domain.MaintenanceEvent{ID: 10}, nil)

		_, err := svc.AddUsages(ctx, 10, []AddPartUsage{
			{PartID: 3, UsedQuantity: 2},
			{UsedQuantity: 1},
		})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		usageRepo.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
	})

	t.Run("unknown event", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		maintRepo := new(mockMaintenanceRepo)
		svc := NewPartUsageService(usageRepo, maintRepo)

		maintRepo.On("GetByID", ctx, int32(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.AddUsages(ctx, 99, []AddPartUsage{{PartID: 3, UsedQuantity: 1}})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "maintenance event", notFound.Entity)
	})

	t.Run("empty and invalid payloads", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		maintRepo := new(mockMaintenanceRepo)
		svc := NewPartUsageService(usageRepo, maintRepo)
		maintRepo.On("GetByID", ctx, int32(10)).Return(&domain.MaintenanceEvent{ID: 10}, nil)

		var validation *domain.ValidationError

		_, err := svc.AddUsages(ctx, 10, nil)
		assert.ErrorAs(t, err, &validation)

		_, err = svc.AddUsages(ctx, 10, []AddPartUsage{{UsedQuantity: 1}})
		assert.ErrorAs(t, err, &validation)

		_, err = svc.AddUsages(ctx, 10, []AddPartUsage{{PartID: 3, UsedQuantity: -1}})
		assert.ErrorAs(t, err, &validation)
	})
}

func TestPartUsageService_UpdateUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("raising used quantity charges only the difference to stock", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))

		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(3)).Return(&domain.PartUsage{
			ID: 100, EventID: 10, PartID: 3, UsedQuantity: 3,
		}, nil)
		usageRepo.On("UpdateQuantities", ctx, mock.MatchedBy(func(u *domain.PartUsage) bool {
			return u.UsedQuantity == 5
		}), int32(2)).Return(nil)

		used := int32(5)
		updated, err := svc.UpdateUsage(ctx, 10, 3, &used, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(5), updated.UsedQuantity)
		usageRepo.AssertExpectations(t)
	})

	t.Run("lowering used quantity yields a negative delta", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))

		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(3)).Return(&domain.PartUsage{
			ID: 100, EventID: 10, PartID: 3, UsedQuantity: 5,
		}, nil)
		usageRepo.On("UpdateQuantities", ctx, mock.Anything, int32(-4)).Return(nil)

		used := int32(1)
		_, err := svc.UpdateUsage(ctx, 10, 3, &used, nil)
		require.NoError(t, err)
		usageRepo.AssertExpectations(t)
	})

	t.Run("needed-only update does not touch stock", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))

		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(3)).Return(&domain.PartUsage{
			ID: 100, EventID: 10, PartID: 3, UsedQuantity: 2, NeededQuantity: 2,
		}, nil)
		usageRepo.On("UpdateQuantities", ctx, mock.MatchedBy(func(u *domain.PartUsage) bool {
			return u.NeededQuantity == 4 && u.UsedQuantity == 2
		}), int32(0)).Return(nil)

		needed := int32(4)
		_, err := svc.UpdateUsage(ctx, 10, 3, nil, &needed)
		require.NoError(t, err)
		usageRepo.AssertExpectations(t)
	})

	t.Run("empty payload", func(t *testing.T) {
		svc := NewPartUsageService(new(mockPartUsageRepo), new(mockMaintenanceRepo))
		_, err := svc.UpdateUsage(ctx, 10, 3, nil, nil)
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("missing usage row", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))
		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(9)).Return(nil, sql.ErrNoRows)

		used := int32(1)
		_, err := svc.UpdateUsage(ctx, 10, 9, &used, nil)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestPartUsageService_RemoveUsage(t *testing.T) {
	ctx := context.Background()

	t.Run("removal restocks the full consumed quantity", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))

		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(3)).Return(&domain.PartUsage{
			ID: 100, EventID: 10, PartID: 3, UsedQuantity: 5,
		}, nil)
		usageRepo.On("Remove", ctx, int32(100), int32(3), int32(5)).Return(nil)

		require.NoError(t, svc.RemoveUsage(ctx, 10, 3))
		usageRepo.AssertExpectations(t)
	})

	t.Run("missing usage row", func(t *testing.T) {
		usageRepo := new(mockPartUsageRepo)
		svc := NewPartUsageService(usageRepo, new(mockMaintenanceRepo))
		usageRepo.On("GetByEventAndPart", ctx, int32(10), int32(9)).Return(nil, sql.ErrNoRows)

		err := svc.RemoveUsage(ctx, 10, 9)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}
