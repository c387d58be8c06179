package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type bikeService struct {
	bikeRepo  repository.BikeRepository
	maintRepo repository.MaintenanceRepository
}

func NewBikeService(bikeRepo repository.BikeRepository, maintRepo repository.MaintenanceRepository) BikeService {
	return &bikeService{bikeRepo: bikeRepo, maintRepo: maintRepo}
}

func (s *bikeService) ListBikes(ctx context.Context, filter repository.BikeFilter) ([]domain.Bike, int32, error) {
	return s.bikeRepo.List(ctx, filter)
}

func (s *bikeService) GetBike(ctx context.Context, id int32) (*domain.Bike, error) {
	bike, err := s.bikeRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("bike", id)
	}
	return bike, err
}

func (s *bikeService) CreateBike(ctx context.Context, bike *domain.Bike) error {
	if bike.Brand == "" || bike.Model == "" {
		return domain.NewValidation("brand and model are required")
	}
	if bike.Status == "" {
		bike.Status = domain.BikeStatusInStock
	}
	if !bike.Status.Valid() {
		return domain.NewValidation("invalid status %q", bike.Status)
	}
	return s.bikeRepo.Create(ctx, bike)
}

func (s *bikeService) UpdateBike(ctx context.Context, id int32, cmd *UpdateBike) (*domain.Bike, error) {
	if cmd.Empty() {
		return nil, domain.NewValidation("update payload is empty")
	}
	bike, err := s.GetBike(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Brand != nil {
		bike.Brand = *cmd.Brand
	}
	if cmd.Model != nil {
		bike.Model = *cmd.Model
	}
	if cmd.SerialNumber != nil {
		bike.SerialNumber = *cmd.SerialNumber
	}
	if cmd.FrameSize != nil {
		bike.FrameSize = *cmd.FrameSize
	}
	if cmd.Color != nil {
		bike.Color = *cmd.Color
	}
	if cmd.Year != nil {
		bike.Year = *cmd.Year
	}
	if cmd.PriceCents != nil {
		bike.PriceCents = *cmd.PriceCents
	}
	if cmd.Status != nil {
		if !cmd.Status.Valid() {
			return nil, domain.NewValidation("invalid status %q", *cmd.Status)
		}
		bike.Status = *cmd.Status
	}
	if cmd.Notes != nil {
		bike.Notes = *cmd.Notes
	}

	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		return nil, err
	}
	return bike, nil
}

func (s *bikeService) DeleteBike(ctx context.Context, id int32) error {
	if _, err := s.GetBike(ctx, id); err != nil {
		return err
	}

	// A bike with an active repair is never hard-deleted.
	blocking, err := s.maintRepo.GetActiveForBike(ctx, id)
	if err != nil {
		return err
	}
	if blocking != nil {
		return &domain.ConflictError{
			Message: fmt.Sprintf("bike %d has an active repair: event %d (%s, %s)",
				id, blocking.ID, blocking.Type, blocking.Status),
			BlockingEventID: blocking.ID,
			BlockingType:    blocking.Type,
			BlockingStatus:  blocking.Status,
		}
	}

	err = s.bikeRepo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("bike", id)
	}
	return err
}
