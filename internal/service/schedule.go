package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/logger"
	"velotrack-backoffice/internal/repository"
)

// WeeklyIntent is one planned insert produced by PlanWeek.
type WeeklyIntent struct {
	BikeID    int32     `json:"bike_id"`
	DayOfWeek int32     `json:"day_of_week"`
	Date      time.Time `json:"date"`
}

// WeeklySkip records a schedule entry the planner refused, with the reason
// and the blocking event when one exists.
type WeeklySkip struct {
	BikeID          int32     `json:"bike_id"`
	Date            time.Time `json:"date"`
	Reason          string    `json:"reason"`
	BlockingEventID int32     `json:"blocking_event_id,omitempty"`
}

type WeeklyError struct {
	BikeID int32  `json:"bike_id"`
	Error  string `json:"error"`
}

type WeeklyPlan struct {
	Intents []WeeklyIntent
	Skipped []WeeklySkip
}

// WeeklyGenerationReport is the outcome of one generator run. The run is
// best-effort: per-bike failures are collected here instead of aborting the
// batch.
type WeeklyGenerationReport struct {
	Created []domain.MaintenanceEvent `json:"created"`
	Skipped []WeeklySkip              `json:"skipped"`
	Errors  []WeeklyError             `json:"errors"`
	Summary string                    `json:"summary"`
}

const (
	skipReasonAlreadyScheduled = "already scheduled"
	skipReasonRepairInProgress = "repair in progress"
)

// NextMonday returns the Monday of the upcoming week. When today already is a
// Monday it still advances a full week: the generator always targets the next
// week, never the current day.
func NextMonday(today time.Time) time.Time {
	days := (int(time.Monday) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	year, month, day := today.AddDate(0, 0, days).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, today.Location())
}

// PlanWeek is the pure scheduling algorithm: it maps active (bike, weekday)
// assignments onto concrete dates in the upcoming week and decides, from the
// snapshot of existing events, which inserts to attempt and which to skip.
// It performs no I/O; the caller executes the intents.
func PlanWeek(schedules []domain.WeeklySchedule, existing []domain.MaintenanceEvent, today time.Time) WeeklyPlan {
	monday := NextMonday(today)
	plan := WeeklyPlan{}

	for _, sched := range schedules {
		if sched.DayOfWeek < 1 || sched.DayOfWeek > 7 {
			continue
		}
		target := monday.AddDate(0, 0, int(sched.DayOfWeek-1))

		if blocking := findOnDate(existing, sched.BikeID, target); blocking != nil {
			plan.Skipped = append(plan.Skipped, WeeklySkip{
				BikeID:          sched.BikeID,
				Date:            target,
				Reason:          skipReasonAlreadyScheduled,
				BlockingEventID: blocking.ID,
			})
			continue
		}
		if blocking := findInProgress(existing, sched.BikeID); blocking != nil {
			plan.Skipped = append(plan.Skipped, WeeklySkip{
				BikeID:          sched.BikeID,
				Date:            target,
				Reason:          skipReasonRepairInProgress,
				BlockingEventID: blocking.ID,
			})
			continue
		}

		plan.Intents = append(plan.Intents, WeeklyIntent{
			BikeID:    sched.BikeID,
			DayOfWeek: sched.DayOfWeek,
			Date:      target,
		})
	}
	return plan
}

func findOnDate(events []domain.MaintenanceEvent, bikeID int32, date time.Time) *domain.MaintenanceEvent {
	for i := range events {
		ev := &events[i]
		if ev.BikeID != bikeID || ev.ScheduledFor == nil {
			continue
		}
		if ev.Status != domain.MaintenanceStatusPlanned && ev.Status != domain.MaintenanceStatusInProgress {
			continue
		}
		y1, m1, d1 := ev.ScheduledFor.Date()
		y2, m2, d2 := date.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return ev
		}
	}
	return nil
}

// An in-flight repair blocks new weekly scheduling regardless of its date.
func findInProgress(events []domain.MaintenanceEvent, bikeID int32) *domain.MaintenanceEvent {
	for i := range events {
		ev := &events[i]
		if ev.BikeID == bikeID && ev.Status == domain.MaintenanceStatusInProgress {
			return ev
		}
	}
	return nil
}

type scheduleService struct {
	scheduleRepo repository.WeeklyScheduleRepository
	maintRepo    repository.MaintenanceRepository
	bikeRepo     repository.BikeRepository
	now          func() time.Time
}

func NewScheduleService(scheduleRepo repository.WeeklyScheduleRepository, maintRepo repository.MaintenanceRepository, bikeRepo repository.BikeRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		maintRepo:    maintRepo,
		bikeRepo:     bikeRepo,
		now:          time.Now,
	}
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]domain.WeeklySchedule, error) {
	return s.scheduleRepo.ListAll(ctx)
}

func (s *scheduleService) ReplaceBikeSchedule(ctx context.Context, bikeID int32, days []int32) error {
	if _, err := s.bikeRepo.GetByID(ctx, bikeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("bike", bikeID)
		}
		return err
	}

	seen := map[int32]bool{}
	var deduped []int32
	for _, day := range days {
		if day < 1 || day > 7 {
			return domain.NewValidation("day_of_week must be between 1 (Monday) and 7 (Sunday), got %d", day)
		}
		if !seen[day] {
			seen[day] = true
			deduped = append(deduped, day)
		}
	}
	return s.scheduleRepo.ReplaceForBike(ctx, bikeID, deduped)
}

func (s *scheduleService) GenerateWeekly(ctx context.Context) (*WeeklyGenerationReport, error) {
	schedules, err := s.scheduleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, domain.NewValidation("no active weekly schedules configured")
	}

	today := s.now()
	weekStart := NextMonday(today)
	weekEnd := weekStart.AddDate(0, 0, 6)

	snapshot, err := s.maintRepo.ListSchedulingSnapshot(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	plan := PlanWeek(schedules, snapshot, today)
	report := &WeeklyGenerationReport{Skipped: plan.Skipped}

	for _, intent := range plan.Intents {
		date := intent.Date
		ev := &domain.MaintenanceEvent{
			BikeID:       intent.BikeID,
			Type:         domain.MaintenanceTypeWeekly,
			Status:       domain.MaintenanceStatusPlanned,
			PartsNeed:    domain.PartsNeedNotNeeded,
			Description:  fmt.Sprintf("Weekly maintenance (%s)", date.Weekday()),
			ScheduledFor: &date,
		}
		if err := s.maintRepo.Create(ctx, ev, nil); err != nil {
			logger.Error("weekly generation failed for bike", "bike_id", intent.BikeID, "error", err)
			report.Errors = append(report.Errors, WeeklyError{BikeID: intent.BikeID, Error: err.Error()})
			continue
		}
		report.Created = append(report.Created, *ev)
	}

	report.Summary = fmt.Sprintf("created %d, skipped %d, failed %d",
		len(report.Created), len(report.Skipped), len(report.Errors))
	return report, nil
}
