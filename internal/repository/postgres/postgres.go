package postgres

import (
	"database/sql"

	"velotrack-backoffice/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BikeRepository
	repository.MaintenanceRepository
	repository.PartUsageRepository
	repository.PartRepository
	repository.PurchaseRequestRepository
	repository.WeeklyScheduleRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                        db,
		BikeRepository:            NewBikeRepository(db),
		MaintenanceRepository:     NewMaintenanceRepository(db),
		PartUsageRepository:       NewPartUsageRepository(db),
		PartRepository:            NewPartRepository(db),
		PurchaseRequestRepository: NewPurchaseRequestRepository(db),
		WeeklyScheduleRepository:  NewWeeklyScheduleRepository(db),
		UserRepository:            NewUserRepository(db),
	}
}
