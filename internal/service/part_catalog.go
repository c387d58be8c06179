package service

import (
	"context"
	"database/sql"
	"errors"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type partService struct {
	partRepo repository.PartRepository
}

func NewPartService(partRepo repository.PartRepository) PartService {
	return &partService{partRepo: partRepo}
}

func (s *partService) ListParts(ctx context.Context, filter repository.PartFilter) ([]domain.Part, int32, error) {
	return s.partRepo.List(ctx, filter)
}

func (s *partService) GetPart(ctx context.Context, id int32) (*domain.Part, error) {
	part, err := s.partRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("part", id)
	}
	return part, err
}

func (s *partService) CreatePart(ctx context.Context, part *domain.Part) error {
	if part.Name == "" {
		return domain.NewValidation("name is required")
	}
	if part.UnitPriceCents < 0 || part.StockQuantity < 0 || part.MinStockQuantity < 0 {
		return domain.NewValidation("price and quantities must not be negative")
	}
	return s.partRepo.Create(ctx, part)
}

func (s *partService) UpdatePart(ctx context.Context, id int32, cmd *UpdatePart) (*domain.Part, error) {
	if cmd.Empty() {
		return nil, domain.NewValidation("update payload is empty")
	}
	part, err := s.GetPart(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, domain.NewValidation("name must not be empty")
		}
		part.Name = *cmd.Name
	}
	if cmd.Category != nil {
		part.Category = *cmd.Category
	}
	if cmd.Manufacturer != nil {
		part.Manufacturer = *cmd.Manufacturer
	}
	if cmd.UnitPriceCents != nil {
		part.UnitPriceCents = *cmd.UnitPriceCents
	}
	if cmd.StockQuantity != nil {
		part.StockQuantity = *cmd.StockQuantity
	}
	if cmd.MinStockQuantity != nil {
		part.MinStockQuantity = *cmd.MinStockQuantity
	}

	if err := s.partRepo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

func (s *partService) DeletePart(ctx context.Context, id int32) error {
	err := s.partRepo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("part", id)
	}
	return err
}
