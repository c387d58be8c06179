package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type maintenanceService struct {
	maintRepo repository.MaintenanceRepository
	bikeRepo  repository.BikeRepository
}

func NewMaintenanceService(maintRepo repository.MaintenanceRepository, bikeRepo repository.BikeRepository) MaintenanceService {
	return &maintenanceService{maintRepo: maintRepo, bikeRepo: bikeRepo}
}

func (s *maintenanceService) ListEvents(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error) {
	return s.maintRepo.List(ctx, filter)
}

func (s *maintenanceService) GetEvent(ctx context.Context, id int32) (*domain.MaintenanceEvent, error) {
	ev, err := s.maintRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("maintenance event", id)
	}
	return ev, err
}

func (s *maintenanceService) CreateEvent(ctx context.Context, cmd *CreateMaintenanceEvent) (*domain.MaintenanceEvent, error) {
	if cmd.BikeID == 0 {
		return nil, domain.NewValidation("bike_id is required")
	}
	if !cmd.Type.Valid() {
		return nil, domain.NewValidation("invalid maintenance_type %q", cmd.Type)
	}
	status := cmd.Status
	if status == "" {
		status = domain.MaintenanceStatusPlanned
	}
	if !status.Valid() {
		return nil, domain.NewValidation("invalid status %q", cmd.Status)
	}
	if status == domain.MaintenanceStatusCompleted {
		return nil, domain.NewValidation("an event cannot be created already completed")
	}
	partsNeed := cmd.PartsNeed
	if partsNeed == "" {
		partsNeed = domain.PartsNeedNotNeeded
	}
	if !partsNeed.Valid() {
		return nil, domain.NewValidation("invalid parts_need %q", cmd.PartsNeed)
	}

	if _, err := s.bikeRepo.GetByID(ctx, cmd.BikeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound("bike", cmd.BikeID)
		}
		return nil, err
	}

	ev := &domain.MaintenanceEvent{
		BikeID:       cmd.BikeID,
		Type:         cmd.Type,
		Status:       status,
		PartsNeed:    partsNeed,
		Description:  cmd.Description,
		Notes:        cmd.Notes,
		ScheduledFor: cmd.ScheduledFor,
		CreatedByID:  cmd.CreatedByID,
	}

	// Entering active repair directly stamps the start and projects the
	// bike into in_repair; the one-active-repair index decides conflicts.
	var bikeStatus *domain.BikeStatus
	if status == domain.MaintenanceStatusInProgress {
		now := time.Now()
		ev.StartedAt = &now
		ev.StartedByID = cmd.CreatedByID
		inRepair := domain.BikeStatusInRepair
		bikeStatus = &inRepair
	}

	if err := s.maintRepo.Create(ctx, ev, bikeStatus); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, ev.ID)
}

func (s *maintenanceService) UpdateEvent(ctx context.Context, id int32, cmd *UpdateMaintenanceEvent) (*domain.MaintenanceEvent, error) {
	if cmd.Empty() {
		return nil, domain.NewValidation("update payload is empty")
	}

	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	var bikeStatus *domain.BikeStatus
	if cmd.Status != nil && *cmd.Status != ev.Status {
		if !cmd.Status.Valid() {
			return nil, domain.NewValidation("invalid status %q", *cmd.Status)
		}
		if !domain.CanTransition(ev.Status, *cmd.Status) {
			return nil, domain.NewValidation("cannot transition from %s to %s", ev.Status, *cmd.Status)
		}

		now := time.Now()
		switch *cmd.Status {
		case domain.MaintenanceStatusInProgress:
			ev.StartedAt = &now
			inRepair := domain.BikeStatusInRepair
			bikeStatus = &inRepair
		case domain.MaintenanceStatusCompleted:
			ev.CompletedAt = &now
			inStock := domain.BikeStatusInStock
			bikeStatus = &inStock
		}
		ev.Status = *cmd.Status
	}

	if cmd.PartsNeed != nil {
		if !cmd.PartsNeed.Valid() {
			return nil, domain.NewValidation("invalid parts_need %q", *cmd.PartsNeed)
		}
		ev.PartsNeed = *cmd.PartsNeed
	}
	if cmd.Description != nil {
		ev.Description = *cmd.Description
	}
	if cmd.Notes != nil {
		ev.Notes = *cmd.Notes
	}
	if cmd.ScheduledFor != nil {
		ev.ScheduledFor = cmd.ScheduledFor
	}
	if cmd.TestedAt != nil {
		ev.TestedAt = cmd.TestedAt
	}
	if cmd.StartedByID != nil {
		ev.StartedByID = cmd.StartedByID
	}
	if cmd.CompletedByID != nil {
		ev.CompletedByID = cmd.CompletedByID
	}

	if err := s.maintRepo.Update(ctx, ev, bikeStatus); err != nil {
		return nil, err
	}
	return s.GetEvent(ctx, ev.ID)
}

func (s *maintenanceService) DeleteEvent(ctx context.Context, id int32) error {
	ev, err := s.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	_, err = s.maintRepo.DeleteAndRecompute(ctx, ev.ID, ev.BikeID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("maintenance event", id)
	}
	return err
}
