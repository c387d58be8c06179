package service

import (
	"context"
	"database/sql"
	"errors"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type partUsageService struct {
	usageRepo repository.PartUsageRepository
	maintRepo repository.MaintenanceRepository
}

func NewPartUsageService(usageRepo repository.PartUsageRepository, maintRepo repository.MaintenanceRepository) PartUsageService {
	return &partUsageService{usageRepo: usageRepo, maintRepo: maintRepo}
}

func (s *partUsageService) ListUsages(ctx context.Context, eventID int32) ([]domain.PartUsage, error) {
	return s.usageRepo.ListByEvent(ctx, eventID)
}

func (s *partUsageService) AddUsages(ctx context.Context, eventID int32, cmds []AddPartUsage) ([]domain.PartUsage, error) {
	if len(cmds) == 0 {
		return nil, domain.NewValidation("no part usages supplied")
	}
	if _, err := s.maintRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("maintenance event", eventID)
		}
		return nil, err
	}

	usages := make([]*domain.PartUsage, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd.PartID == 0 {
			return nil, domain.NewValidation("part_id is required")
		}
		if cmd.UsedQuantity < 0 || cmd.NeededQuantity < 0 {
			return nil, domain.NewValidation("quantities must not be negative")
		}
		usages = append(usages, &domain.PartUsage{
			EventID:        eventID,
			PartID:         cmd.PartID,
			UsedQuantity:   cmd.UsedQuantity,
			NeededQuantity: cmd.NeededQuantity,
		})
	}

	// The whole batch lands or none of it does.
	if err := s.usageRepo.AddAll(ctx, usages); err != nil {
		return nil, err
	}
	created := make([]domain.PartUsage, 0, len(usages))
	for _, u := range usages {
		created = append(created, *u)
	}
	return created, nil
}

func (s *partUsageService) UpdateUsage(ctx context.Context, eventID, partID int32, used, needed *int32) (*domain.PartUsage, error) {
	if used == nil && needed == nil {
		return nil, domain.NewValidation("update payload is empty")
	}

	usage, err := s.usageRepo.GetByEventAndPart(ctx, eventID, partID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("part usage", partID)
		}
		return nil, err
	}

	var stockDelta int32
	if used != nil {
		if *used < 0 {
			return nil, domain.NewValidation("used_quantity must not be negative")
		}
		stockDelta = *used - usage.UsedQuantity
		usage.UsedQuantity = *used
	}
	if needed != nil {
		if *needed < 0 {
			return nil, domain.NewValidation("needed_quantity must not be negative")
		}
		usage.NeededQuantity = *needed
	}

	if err := s.usageRepo.UpdateQuantities(ctx, usage, stockDelta); err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *partUsageService) RemoveUsage(ctx context.Context, eventID, partID int32) error {
	usage, err := s.usageRepo.GetByEventAndPart(ctx, eventID, partID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("part usage", partID)
		}
		return err
	}
	// Removing a usage row always gives back exactly what it had consumed.
	return s.usageRepo.Remove(ctx, usage.ID, usage.PartID, usage.UsedQuantity)
}
