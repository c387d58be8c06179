package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type purchaseRequestRepository struct {
	db *sql.DB
}

func NewPurchaseRequestRepository(db *sql.DB) repository.PurchaseRequestRepository {
	return &purchaseRequestRepository{db: db}
}

const purchaseSelect = `SELECT r.id, r.part_id, r.quantity, r.priority, r.status, r.notes, r.created_by, r.created_on, r.updated_on, p.name
	FROM purchase_requests r JOIN parts p ON p.id = r.part_id`

func (r *purchaseRequestRepository) Create(ctx context.Context, req *domain.PurchaseRequest) error {
	query := `INSERT INTO purchase_requests (part_id, quantity, priority, status, notes, created_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		req.PartID, req.Quantity, req.Priority, req.Status, req.Notes, req.CreatedByID, now, now,
	).Scan(&req.ID, &req.CreatedOn, &req.UpdatedOn)
}

func (r *purchaseRequestRepository) GetByID(ctx context.Context, id int32) (*domain.PurchaseRequest, error) {
	req := &domain.PurchaseRequest{}
	err := r.db.QueryRowContext(ctx, purchaseSelect+` WHERE r.id = $1`, id).Scan(
		&req.ID, &req.PartID, &req.Quantity, &req.Priority, &req.Status, &req.Notes,
		&req.CreatedByID, &req.CreatedOn, &req.UpdatedOn, &req.PartName)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *purchaseRequestRepository) Update(ctx context.Context, req *domain.PurchaseRequest) error {
	query := `UPDATE purchase_requests SET quantity=$1, priority=$2, status=$3, notes=$4, updated_on=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query,
		req.Quantity, req.Priority, req.Status, req.Notes, time.Now(), req.ID)
	return err
}

func (r *purchaseRequestRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchase_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *purchaseRequestRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.PurchaseRequest, int32, error) {
	query := purchaseSelect + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if status != "" {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query += fmt.Sprintf(" ORDER BY r.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reqs []domain.PurchaseRequest
	for rows.Next() {
		var req domain.PurchaseRequest
		if err := rows.Scan(&req.ID, &req.PartID, &req.Quantity, &req.Priority, &req.Status, &req.Notes,
			&req.CreatedByID, &req.CreatedOn, &req.UpdatedOn, &req.PartName); err != nil {
			return nil, 0, err
		}
		reqs = append(reqs, req)
	}
	return reqs, count, rows.Err()
}
