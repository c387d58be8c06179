package service

import (
	"context"
	"database/sql"
	"errors"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/logger"
	"velotrack-backoffice/internal/repository"
)

type purchaseService struct {
	purchaseRepo repository.PurchaseRequestRepository
	partRepo     repository.PartRepository
	emailSvc     EmailService
}

func NewPurchaseService(purchaseRepo repository.PurchaseRequestRepository, partRepo repository.PartRepository, emailSvc EmailService) PurchaseService {
	return &purchaseService{purchaseRepo: purchaseRepo, partRepo: partRepo, emailSvc: emailSvc}
}

func (s *purchaseService) ListRequests(ctx context.Context, status string, page, pageSize int32) ([]domain.PurchaseRequest, int32, error) {
	return s.purchaseRepo.List(ctx, status, page, pageSize)
}

func (s *purchaseService) GetRequest(ctx context.Context, id int32) (*domain.PurchaseRequest, error) {
	req, err := s.purchaseRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("purchase request", id)
	}
	return req, err
}

func (s *purchaseService) CreateRequest(ctx context.Context, req *domain.PurchaseRequest) error {
	if req.PartID == 0 {
		return domain.NewValidation("part_id is required")
	}
	if req.Quantity <= 0 {
		return domain.NewValidation("quantity must be positive")
	}
	if req.Priority == "" {
		req.Priority = domain.PurchasePriorityNormal
	}
	if !req.Priority.Valid() {
		return domain.NewValidation("invalid priority %q", req.Priority)
	}
	req.Status = domain.PurchaseStatusNew

	if _, err := s.partRepo.GetByID(ctx, req.PartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("part", req.PartID)
		}
		return err
	}
	return s.purchaseRepo.Create(ctx, req)
}

func (s *purchaseService) UpdateRequest(ctx context.Context, id int32, cmd *UpdatePurchaseRequest) (*domain.PurchaseRequest, error) {
	if cmd.Empty() {
		return nil, domain.NewValidation("update payload is empty")
	}
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if cmd.Status != nil && *cmd.Status != req.Status {
		if !cmd.Status.Valid() {
			return nil, domain.NewValidation("invalid status %q", *cmd.Status)
		}
		if !domain.CanTransitionPurchase(req.Status, *cmd.Status) {
			return nil, domain.NewValidation("cannot transition from %s to %s", req.Status, *cmd.Status)
		}
		req.Status = *cmd.Status
		statusChanged = true
	}
	if cmd.Quantity != nil {
		if *cmd.Quantity <= 0 {
			return nil, domain.NewValidation("quantity must be positive")
		}
		req.Quantity = *cmd.Quantity
	}
	if cmd.Priority != nil {
		if !cmd.Priority.Valid() {
			return nil, domain.NewValidation("invalid priority %q", *cmd.Priority)
		}
		req.Priority = *cmd.Priority
	}
	if cmd.Notes != nil {
		req.Notes = *cmd.Notes
	}

	if err := s.purchaseRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	if statusChanged {
		// Receiving an order puts the delivered quantity on the shelf.
		if req.Status == domain.PurchaseStatusReceived {
			if err := s.partRepo.AdjustStock(ctx, req.PartID, req.Quantity); err != nil {
				logger.Error("failed to restock received purchase", "request_id", req.ID, "part_id", req.PartID, "error", err)
			}
		}
		if err := s.emailSvc.SendPurchaseStatusNotification(ctx, req); err != nil {
			logger.Warn("failed to send purchase status notification", "request_id", req.ID, "error", err)
		}
	}
	return req, nil
}

func (s *purchaseService) DeleteRequest(ctx context.Context, id int32) error {
	err := s.purchaseRepo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("purchase request", id)
	}
	return err
}
