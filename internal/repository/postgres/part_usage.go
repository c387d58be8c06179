package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/logger"
	"velotrack-backoffice/internal/repository"
)

// usagePerEventPartKey is the unique constraint allowing at most one usage
// row per (event, part) pair.
const usagePerEventPartKey = "maintenance_parts_event_part_key"

type partUsageRepository struct {
	db *sql.DB
}

func NewPartUsageRepository(db *sql.DB) repository.PartUsageRepository {
	return &partUsageRepository{db: db}
}

const usageSelect = `SELECT u.id, u.event_id, u.part_id, u.used_quantity, u.needed_quantity, u.unit_price_cents,
	       u.created_on, u.updated_on, p.name
	FROM maintenance_parts u JOIN parts p ON p.id = u.part_id`

func (r *partUsageRepository) ListByEvent(ctx context.Context, eventID int32) ([]domain.PartUsage, error) {
	rows, err := r.db.QueryContext(ctx, usageSelect+` WHERE u.event_id = $1 ORDER BY u.id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []domain.PartUsage
	for rows.Next() {
		var u domain.PartUsage
		if err := rows.Scan(&u.ID, &u.EventID, &u.PartID, &u.UsedQuantity, &u.NeededQuantity,
			&u.UnitPriceCents, &u.CreatedOn, &u.UpdatedOn, &u.PartName); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}
	return usages, rows.Err()
}

func (r *partUsageRepository) GetByEventAndPart(ctx context.Context, eventID, partID int32) (*domain.PartUsage, error) {
	u := &domain.PartUsage{}
	err := r.db.QueryRowContext(ctx, usageSelect+` WHERE u.event_id = $1 AND u.part_id = $2`, eventID, partID).
		Scan(&u.ID, &u.EventID, &u.PartID, &u.UsedQuantity, &u.NeededQuantity,
			&u.UnitPriceCents, &u.CreatedOn, &u.UpdatedOn, &u.PartName)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *partUsageRepository) AddAll(ctx context.Context, usages []*domain.PartUsage) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range usages {
		if err := addTx(ctx, tx, u); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func addTx(ctx context.Context, tx *sql.Tx, u *domain.PartUsage) error {
	// Snapshot the catalog price so later price changes do not rewrite
	// historical repair cost.
	err := tx.QueryRowContext(ctx, `SELECT unit_price_cents, name FROM parts WHERE id = $1`, u.PartID).
		Scan(&u.UnitPriceCents, &u.PartName)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("part", u.PartID)
	}
	if err != nil {
		return err
	}

	now := time.Now()
	query := `INSERT INTO maintenance_parts (event_id, part_id, used_quantity, needed_quantity, unit_price_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_on, updated_on`
	err = tx.QueryRowContext(ctx, query,
		u.EventID, u.PartID, u.UsedQuantity, u.NeededQuantity, u.UnitPriceCents, now, now,
	).Scan(&u.ID, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == usagePerEventPartKey {
			return domain.NewValidation("part %d is already recorded for event %d", u.PartID, u.EventID)
		}
		return err
	}

	if u.UsedQuantity > 0 {
		return adjustStockTx(ctx, tx, u.PartID, -u.UsedQuantity)
	}
	return nil
}

func (r *partUsageRepository) UpdateQuantities(ctx context.Context, u *domain.PartUsage, stockDelta int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE maintenance_parts SET used_quantity=$1, needed_quantity=$2, updated_on=$3 WHERE id=$4`
	res, err := tx.ExecContext(ctx, query, u.UsedQuantity, u.NeededQuantity, time.Now(), u.ID)
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

	if stockDelta != 0 {
		// Increasing usage consumes more stock, decreasing usage returns it.
		if err := adjustStockTx(ctx, tx, u.PartID, -stockDelta); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *partUsageRepository) Remove(ctx context.Context, id, partID, restockQuantity int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM maintenance_parts WHERE id = $1`, id)
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

	if restockQuantity > 0 {
		if err := adjustStockTx(ctx, tx, partID, restockQuantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func adjustStockTx(ctx context.Context, tx *sql.Tx, partID, delta int32) error {
	var remaining int32
	err := tx.QueryRowContext(ctx,
		`UPDATE parts SET stock_quantity = stock_quantity + $1, updated_on = $2 WHERE id = $3 RETURNING stock_quantity`,
		delta, time.Now(), partID,
	).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("part", partID)
	}
	if err != nil {
		return err
	}
	if remaining < 0 {
		logger.Warn("part stock went negative", "part_id", partID, "stock_quantity", remaining)
	}
	return nil
}
