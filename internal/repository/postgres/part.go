package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type partRepository struct {
	db *sql.DB
}

func NewPartRepository(db *sql.DB) repository.PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(ctx context.Context, p *domain.Part) error {
	query := `INSERT INTO parts (name, category, manufacturer, unit_price_cents, stock_quantity, min_stock_quantity, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		p.Name, p.Category, p.Manufacturer, p.UnitPriceCents, p.StockQuantity, p.MinStockQuantity, now, now,
	).Scan(&p.ID, &p.CreatedOn, &p.UpdatedOn)
}

func (r *partRepository) GetByID(ctx context.Context, id int32) (*domain.Part, error) {
	p := &domain.Part{}
	query := `SELECT id, name, category, manufacturer, unit_price_cents, stock_quantity, min_stock_quantity, created_on, updated_on
	          FROM parts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Manufacturer, &p.UnitPriceCents,
		&p.StockQuantity, &p.MinStockQuantity, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partRepository) Update(ctx context.Context, p *domain.Part) error {
	query := `UPDATE parts SET name=$1, category=$2, manufacturer=$3, unit_price_cents=$4,
	          stock_quantity=$5, min_stock_quantity=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Category, p.Manufacturer, p.UnitPriceCents,
		p.StockQuantity, p.MinStockQuantity, time.Now(), p.ID)
	return err
}

func (r *partRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parts WHERE id = $1`, id)
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

func (r *partRepository) List(ctx context.Context, f repository.PartFilter) ([]domain.Part, int32, error) {
	query := `SELECT id, name, category, manufacturer, unit_price_cents, stock_quantity, min_stock_quantity, created_on, updated_on
	          FROM parts WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if f.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.Query != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Query+"%")
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		var p domain.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Manufacturer, &p.UnitPriceCents,
			&p.StockQuantity, &p.MinStockQuantity, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		parts = append(parts, p)
	}
	return parts, count, rows.Err()
}

func (r *partRepository) AdjustStock(ctx context.Context, id, delta int32) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE parts SET stock_quantity = stock_quantity + $1, updated_on = $2 WHERE id = $3`,
		delta, time.Now(), id)
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

func (r *partRepository) ListBelowMinStock(ctx context.Context) ([]domain.Part, error) {
	query := `SELECT id, name, category, manufacturer, unit_price_cents, stock_quantity, min_stock_quantity, created_on, updated_on
	          FROM parts WHERE stock_quantity < min_stock_quantity ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		var p domain.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Manufacturer, &p.UnitPriceCents,
			&p.StockQuantity, &p.MinStockQuantity, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
