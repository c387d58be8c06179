package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type bikeRepository struct {
	db *sql.DB
}

func NewBikeRepository(db *sql.DB) repository.BikeRepository {
	return &bikeRepository{db: db}
}

func (r *bikeRepository) Create(ctx context.Context, b *domain.Bike) error {
	query := `INSERT INTO bikes (brand, model, serial_number, frame_size, color, year, price_cents, status, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id, created_on, updated_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		b.Brand, b.Model, b.SerialNumber, b.FrameSize, b.Color, b.Year,
		b.PriceCents, b.Status, b.Notes, now, now,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bikeRepository) GetByID(ctx context.Context, id int32) (*domain.Bike, error) {
	b := &domain.Bike{}
	query := `SELECT id, brand, model, serial_number, frame_size, color, year, price_cents, status, notes, created_on, updated_on
	          FROM bikes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Brand, &b.Model, &b.SerialNumber, &b.FrameSize, &b.Color, &b.Year,
		&b.PriceCents, &b.Status, &b.Notes, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bikeRepository) Update(ctx context.Context, b *domain.Bike) error {
	query := `UPDATE bikes SET brand=$1, model=$2, serial_number=$3, frame_size=$4, color=$5, year=$6,
	          price_cents=$7, status=$8, notes=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query,
		b.Brand, b.Model, b.SerialNumber, b.FrameSize, b.Color, b.Year,
		b.PriceCents, b.Status, b.Notes, time.Now(), b.ID)
	return err
}

func (r *bikeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bikes WHERE id = $1`, id)
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

func (r *bikeRepository) List(ctx context.Context, f repository.BikeFilter) ([]domain.Bike, int32, error) {
	query := `SELECT id, brand, model, serial_number, frame_size, color, year, price_cents, status, notes, created_on, updated_on
	          FROM bikes WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.Brand != "" {
		query += fmt.Sprintf(" AND brand ILIKE $%d", argIdx)
		args = append(args, "%"+f.Brand+"%")
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
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bikes []domain.Bike
	for rows.Next() {
		var b domain.Bike
		if err := rows.Scan(&b.ID, &b.Brand, &b.Model, &b.SerialNumber, &b.FrameSize, &b.Color, &b.Year,
			&b.PriceCents, &b.Status, &b.Notes, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		bikes = append(bikes, b)
	}
	return bikes, count, rows.Err()
}
