package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
)

// activeRepairIndex is the partial unique index in db/schema.sql that
// enforces one active repair per bike. Event writes never pre-check the
// rule; they rely on this index and translate its violation.
const activeRepairIndex = "maintenance_events_one_active_repair"

// activeRepairPredicate mirrors domain.MaintenanceEvent.IsConflicting and the
// WHERE clause of the index above.
const activeRepairPredicate = `status = 'in_progress' AND maintenance_type <> 'longterm'`

const eventSelectColumns = `m.id, m.bike_id, m.maintenance_type, m.status, m.parts_need, m.description, m.notes,
	       m.scheduled_for, m.started_at, m.completed_at, m.tested_at,
	       m.created_by, m.started_by, m.completed_by, m.created_on, m.updated_on,
	       b.brand, b.model, b.serial_number, cu.name, su.name, fu.name`

const eventSelectJoins = ` FROM maintenance_events m
	        JOIN bikes b ON b.id = m.bike_id
	        LEFT JOIN users cu ON cu.id = m.created_by
	        LEFT JOIN users su ON su.id = m.started_by
	        LEFT JOIN users fu ON fu.id = m.completed_by`

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(db *sql.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

func scanEvent(row interface{ Scan(dest ...any) error }, ev *domain.MaintenanceEvent) error {
	return row.Scan(&ev.ID, &ev.BikeID, &ev.Type, &ev.Status, &ev.PartsNeed, &ev.Description, &ev.Notes,
		&ev.ScheduledFor, &ev.StartedAt, &ev.CompletedAt, &ev.TestedAt,
		&ev.CreatedByID, &ev.StartedByID, &ev.CompletedByID, &ev.CreatedOn, &ev.UpdatedOn,
		&ev.BikeBrand, &ev.BikeModel, &ev.BikeSerialNumber,
		&ev.CreatedByName, &ev.StartedByName, &ev.CompletedByName)
}

func (r *maintenanceRepository) Create(ctx context.Context, ev *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO maintenance_events (bike_id, maintenance_type, status, parts_need, description, notes, scheduled_for, started_at, created_by, started_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_on, updated_on`
	now := time.Now()
	err = tx.QueryRowContext(ctx, query,
		ev.BikeID, ev.Type, ev.Status, ev.PartsNeed, ev.Description, ev.Notes,
		ev.ScheduledFor, ev.StartedAt, ev.CreatedByID, ev.StartedByID, now, now,
	).Scan(&ev.ID, &ev.CreatedOn, &ev.UpdatedOn)
	if err != nil {
		return r.mapConflict(ctx, err, ev.BikeID)
	}

	if bikeStatus != nil {
		if err := projectBikeStatusTx(ctx, tx, ev.BikeID, *bikeStatus, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// projectBikeStatusTx applies the bike-status projection. Reverting to
// in_stock only touches a bike still marked in_repair, so manual overrides
// (rented, sold, stolen) survive a completion, same as the delete path.
func projectBikeStatusTx(ctx context.Context, tx *sql.Tx, bikeID int32, status domain.BikeStatus, now time.Time) error {
	query := `UPDATE bikes SET status = $1, updated_on = $2 WHERE id = $3`
	args := []interface{}{status, now, bikeID}
	if status == domain.BikeStatusInStock {
		query += ` AND status = $4`
		args = append(args, domain.BikeStatusInRepair)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int32) (*domain.MaintenanceEvent, error) {
	ev := &domain.MaintenanceEvent{}
	query := `SELECT ` + eventSelectColumns + eventSelectJoins + ` WHERE m.id = $1`
	if err := scanEvent(r.db.QueryRowContext(ctx, query, id), ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *maintenanceRepository) Update(ctx context.Context, ev *domain.MaintenanceEvent, bikeStatus *domain.BikeStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `UPDATE maintenance_events
	          SET maintenance_type=$1, status=$2, parts_need=$3, description=$4, notes=$5,
	              scheduled_for=$6, started_at=$7, completed_at=$8, tested_at=$9,
	              started_by=$10, completed_by=$11, updated_on=$12
	          WHERE id=$13`
	_, err = tx.ExecContext(ctx, query,
		ev.Type, ev.Status, ev.PartsNeed, ev.Description, ev.Notes,
		ev.ScheduledFor, ev.StartedAt, ev.CompletedAt, ev.TestedAt,
		ev.StartedByID, ev.CompletedByID, now, ev.ID)
	if err != nil {
		return r.mapConflict(ctx, err, ev.BikeID)
	}

	if bikeStatus != nil {
		if err := projectBikeStatusTx(ctx, tx, ev.BikeID, *bikeStatus, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *maintenanceRepository) DeleteAndRecompute(ctx context.Context, id, bikeID int32) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM maintenance_events WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, sql.ErrNoRows
	}

	var active int32
	countQuery := `SELECT count(*) FROM maintenance_events WHERE bike_id = $1 AND ` + activeRepairPredicate
	if err := tx.QueryRowContext(ctx, countQuery, bikeID).Scan(&active); err != nil {
		return false, err
	}

	reset := false
	if active == 0 {
		// Recomputation, not a decrement: only flips a bike that is still
		// marked in_repair, manual overrides stay untouched.
		res, err := tx.ExecContext(ctx,
			`UPDATE bikes SET status = $1, updated_on = $2 WHERE id = $3 AND status = $4`,
			domain.BikeStatusInStock, time.Now(), bikeID, domain.BikeStatusInRepair)
		if err != nil {
			return false, err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			reset = true
		}
	}
	return reset, tx.Commit()
}

func (r *maintenanceRepository) List(ctx context.Context, f repository.MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error) {
	query := `SELECT ` + eventSelectColumns + eventSelectJoins + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if f.BikeID != nil {
		query += fmt.Sprintf(" AND m.bike_id = $%d", argIdx)
		args = append(args, *f.BikeID)
		argIdx++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND m.maintenance_type = $%d", argIdx)
		args = append(args, f.Type)
		argIdx++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND m.status = $%d", argIdx)
		args = append(args, f.Status)
		argIdx++
	}
	if f.PartsNeed != "" {
		query += fmt.Sprintf(" AND m.parts_need = $%d", argIdx)
		args = append(args, f.PartsNeed)
		argIdx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND m.scheduled_for >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND m.scheduled_for <= $%d", argIdx)
		args = append(args, *f.To)
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
	query += fmt.Sprintf(" ORDER BY m.created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []domain.MaintenanceEvent
	for rows.Next() {
		var ev domain.MaintenanceEvent
		if err := scanEvent(rows, &ev); err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	return events, count, rows.Err()
}

func (r *maintenanceRepository) GetActiveForBike(ctx context.Context, bikeID int32) (*domain.MaintenanceEvent, error) {
	ev := &domain.MaintenanceEvent{}
	query := `SELECT ` + eventSelectColumns + eventSelectJoins +
		` WHERE m.bike_id = $1 AND m.` + activeRepairPredicateQualified() + ` ORDER BY m.created_on DESC LIMIT 1`
	err := scanEvent(r.db.QueryRowContext(ctx, query, bikeID), ev)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *maintenanceRepository) ListSchedulingSnapshot(ctx context.Context, weekStart, weekEnd time.Time) ([]domain.MaintenanceEvent, error) {
	query := `SELECT ` + eventSelectColumns + eventSelectJoins + `
	          WHERE (m.status IN ($1, $2) AND m.scheduled_for >= $3 AND m.scheduled_for < $4)
	             OR m.status = $2`
	rows, err := r.db.QueryContext(ctx, query,
		domain.MaintenanceStatusPlanned, domain.MaintenanceStatusInProgress,
		weekStart, weekEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.MaintenanceEvent
	for rows.Next() {
		var ev domain.MaintenanceEvent
		if err := scanEvent(rows, &ev); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// activeRepairPredicateQualified rewrites the shared predicate for queries
// that alias maintenance_events as m.
func activeRepairPredicateQualified() string {
	return `status = 'in_progress' AND m.maintenance_type <> 'longterm'`
}

// mapConflict translates a unique violation on the one-active-repair index
// into a domain.ConflictError carrying the blocking event's summary. The
// follow-up read runs outside the aborted transaction.
func (r *maintenanceRepository) mapConflict(ctx context.Context, err error, bikeID int32) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" || pqErr.Constraint != activeRepairIndex {
		return err
	}

	conflict := &domain.ConflictError{
		Message: fmt.Sprintf("bike %d already has an active repair", bikeID),
	}
	if blocking, berr := r.GetActiveForBike(ctx, bikeID); berr == nil && blocking != nil {
		conflict.BlockingEventID = blocking.ID
		conflict.BlockingType = blocking.Type
		conflict.BlockingStatus = blocking.Status
		conflict.Message = fmt.Sprintf("bike %d already has an active repair: event %d (%s, %s)",
			bikeID, blocking.ID, blocking.Type, blocking.Status)
	}
	return conflict
}
