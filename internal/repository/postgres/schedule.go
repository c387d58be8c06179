package postgres

import (
	"context"
	"database/sql"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

type weeklyScheduleRepository struct {
	db *sql.DB
}

func NewWeeklyScheduleRepository(db *sql.DB) repository.WeeklyScheduleRepository {
	return &weeklyScheduleRepository{db: db}
}

const scheduleSelect = `SELECT s.id, s.bike_id, s.day_of_week, s.active, s.created_on, b.brand, b.model, b.serial_number
	FROM weekly_schedules s JOIN bikes b ON b.id = s.bike_id`

func (r *weeklyScheduleRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.WeeklySchedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.WeeklySchedule
	for rows.Next() {
		var s domain.WeeklySchedule
		if err := rows.Scan(&s.ID, &s.BikeID, &s.DayOfWeek, &s.Active, &s.CreatedOn,
			&s.BikeBrand, &s.BikeModel, &s.BikeSerialNumber); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *weeklyScheduleRepository) ListAll(ctx context.Context) ([]domain.WeeklySchedule, error) {
	return r.list(ctx, scheduleSelect+` ORDER BY s.bike_id, s.day_of_week`)
}

func (r *weeklyScheduleRepository) ListActive(ctx context.Context) ([]domain.WeeklySchedule, error) {
	return r.list(ctx, scheduleSelect+` WHERE s.active ORDER BY s.bike_id, s.day_of_week`)
}

func (r *weeklyScheduleRepository) ReplaceForBike(ctx context.Context, bikeID int32, days []int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weekly_schedules WHERE bike_id = $1`, bikeID); err != nil {
		return err
	}
	for _, day := range days {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO weekly_schedules (bike_id, day_of_week, active, created_on) VALUES ($1, $2, true, $3)`,
			bikeID, day, time.Now())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
