package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
	"velotrack-backoffice/internal/service"
)

type mockMaintenanceService struct {
	mock.Mock
}

func (m *mockMaintenanceService) ListEvents(ctx context.Context, filter repository.MaintenanceFilter) ([]domain.MaintenanceEvent, int32, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.MaintenanceEvent), args.Get(1).(int32), args.Error(2)
}
func (m *mockMaintenanceService) GetEvent(ctx context.Context, id int32) (*domain.MaintenanceEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceEvent), args.Error(1)
}
func (m *mockMaintenanceService) CreateEvent(ctx context.Context, cmd *service.CreateMaintenanceEvent) (*domain.MaintenanceEvent, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceEvent), args.Error(1)
}
func (m *mockMaintenanceService) UpdateEvent(ctx context.Context, id int32, cmd *service.UpdateMaintenanceEvent) (*domain.MaintenanceEvent, error) {
	args := m.Called(ctx, id, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaintenanceEvent), args.Error(1)
}
func (m *mockMaintenanceService) DeleteEvent(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockPartUsageService struct {
	mock.Mock
}

func (m *mockPartUsageService) ListUsages(ctx context.Context, eventID int32) ([]domain.PartUsage, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]domain.PartUsage), args.Error(1)
}
func (m *mockPartUsageService) AddUsages(ctx context.Context, eventID int32, cmds []service.AddPartUsage) ([]domain.PartUsage, error) {
	args := m.Called(ctx, eventID, cmds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartUsage), args.Error(1)
}
func (m *mockPartUsageService) UpdateUsage(ctx context.Context, eventID, partID int32, used, needed *int32) (*domain.PartUsage, error) {
	args := m.Called(ctx, eventID, partID, used, needed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartUsage), args.Error(1)
}
func (m *mockPartUsageService) RemoveUsage(ctx context.Context, eventID, partID int32) error {
	args := m.Called(ctx, eventID, partID)
	return args.Error(0)
}

type mockScheduleService struct {
	mock.Mock
}

func (m *mockScheduleService) ListSchedules(ctx context.Context) ([]domain.WeeklySchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WeeklySchedule), args.Error(1)
}
func (m *mockScheduleService) ReplaceBikeSchedule(ctx context.Context, bikeID int32, days []int32) error {
	args := m.Called(ctx, bikeID, days)
	return args.Error(0)
}
func (m *mockScheduleService) GenerateWeekly(ctx context.Context) (*service.WeeklyGenerationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WeeklyGenerationReport), args.Error(1)
}

func newTestRouter(maintSvc service.MaintenanceService, usageSvc service.PartUsageService, scheduleSvc service.ScheduleService) *mux.Router {
	return NewRouter(
		NewMaintenanceHandler(maintSvc, usageSvc, scheduleSvc),
		NewBikeHandler(nil),
		NewPartHandler(nil),
		NewPurchaseHandler(nil),
		NewUserHandler(nil),
	)
}

func doRequest(router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestMaintenanceHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("GetEvent", mock.Anything, int32(10)).Return(&domain.MaintenanceEvent{
			ID: 10, BikeID: 1, Type: domain.MaintenanceTypeCurrent, Status: domain.MaintenanceStatusPlanned,
		}, nil)

		rec := doRequest(router, http.MethodGet, "/maintenance/10", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var ev domain.MaintenanceEvent
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
		assert.Equal(t, int32(10), ev.ID)
	})

	t.Run("missing event id is 404", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("GetEvent", mock.Anything, int32(404)).Return(nil, domain.NewNotFound("maintenance event", int32(404)))

		rec := doRequest(router, http.MethodGet, "/maintenance/404", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMaintenanceHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("CreateEvent", mock.Anything, mock.MatchedBy(func(cmd *service.CreateMaintenanceEvent) bool {
			return cmd.BikeID == 1 && cmd.Type == domain.MaintenanceTypeCurrent
		})).Return(&domain.MaintenanceEvent{ID: 10, BikeID: 1}, nil)

		rec := doRequest(router, http.MethodPost, "/maintenance", map[string]any{
			"bike_id":          1,
			"maintenance_type": "current",
			"description":      "brake pads worn",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("unknown JSON fields are rejected", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		rec := doRequest(router, http.MethodPost, "/maintenance",
			`{"bike_id": 1, "maintenance_type": "current", "stattus": "planned"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		maintSvc.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
	})

	t.Run("conflict is 400 with the blocking event in the message", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, &domain.ConflictError{
			Message:         "bike 1 already has an active repair: event 10 (current, in_progress)",
			BlockingEventID: 10,
		})

		rec := doRequest(router, http.MethodPost, "/maintenance", map[string]any{
			"bike_id": 1, "maintenance_type": "current", "status": "in_progress",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "event 10")
	})

	t.Run("unknown bike referenced by the body is 400, not 404", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, domain.NewNotFound("bike", int32(99)))

		rec := doRequest(router, http.MethodPost, "/maintenance", map[string]any{
			"bike_id": 99, "maintenance_type": "current",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMaintenanceHandler_List(t *testing.T) {
	t.Run("filters are passed through", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("ListEvents", mock.Anything, mock.MatchedBy(func(f repository.MaintenanceFilter) bool {
			return f.Type == "weekly" && f.Status == "planned" &&
				f.BikeID != nil && *f.BikeID == 1 &&
				f.From != nil && f.From.Format("2006-01-02") == "2026-08-31"
		})).Return([]domain.MaintenanceEvent{{ID: 10}}, int32(1), nil)

		rec := doRequest(router, http.MethodGet, "/maintenance?type=weekly&status=planned&bike_id=1&from=2026-08-31", nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items []domain.MaintenanceEvent `json:"items"`
			Total int32                     `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int32(1), resp.Total)
		require.Len(t, resp.Items, 1)
	})

	t.Run("malformed date filter", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		rec := doRequest(router, http.MethodGet, "/maintenance?from=31-08-2026", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty result is an empty list, not null", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("ListEvents", mock.Anything, mock.Anything).Return([]domain.MaintenanceEvent(nil), int32(0), nil)

		rec := doRequest(router, http.MethodGet, "/maintenance", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"items":[]`)
	})
}

func TestMaintenanceHandler_Parts(t *testing.T) {
	t.Run("add usages", func(t *testing.T) {
		usageSvc := new(mockPartUsageService)
		router := newTestRouter(new(mockMaintenanceService), usageSvc, new(mockScheduleService))

		usageSvc.On("AddUsages", mock.Anything, int32(10), []service.AddPartUsage{{PartID: 3, UsedQuantity: 2}}).
			Return([]domain.PartUsage{{ID: 100, EventID: 10, PartID: 3, UsedQuantity: 2, UnitPriceCents: 1250}}, nil)

		rec := doRequest(router, http.MethodPost, "/maintenance/10/parts",
			`[{"part_id": 3, "used_quantity": 2}]`)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"unit_price_cents":1250`)
	})

	t.Run("update usage", func(t *testing.T) {
		usageSvc := new(mockPartUsageService)
		router := newTestRouter(new(mockMaintenanceService), usageSvc, new(mockScheduleService))

		used := int32(5)
		usageSvc.On("UpdateUsage", mock.Anything, int32(10), int32(3), &used, (*int32)(nil)).
			Return(&domain.PartUsage{ID: 100, UsedQuantity: 5}, nil)

		rec := doRequest(router, http.MethodPut, "/maintenance/10/parts/3", `{"used_quantity": 5}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("remove usage on an unknown pair is 400", func(t *testing.T) {
		usageSvc := new(mockPartUsageService)
		router := newTestRouter(new(mockMaintenanceService), usageSvc, new(mockScheduleService))

		usageSvc.On("RemoveUsage", mock.Anything, int32(10), int32(9)).
			Return(domain.NewNotFound("part usage", int32(9)))

		rec := doRequest(router, http.MethodDelete, "/maintenance/10/parts/9", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMaintenanceHandler_Weekly(t *testing.T) {
	t.Run("generate returns the report", func(t *testing.T) {
		scheduleSvc := new(mockScheduleService)
		router := newTestRouter(new(mockMaintenanceService), new(mockPartUsageService), scheduleSvc)

		scheduleSvc.On("GenerateWeekly", mock.Anything).Return(&service.WeeklyGenerationReport{
			Created: []domain.MaintenanceEvent{{ID: 10}},
			Summary: "created 1, skipped 0, failed 0",
		}, nil)

		rec := doRequest(router, http.MethodPost, "/maintenance/generate-weekly", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "created 1, skipped 0, failed 0")
		assert.Contains(t, rec.Body.String(), `"skipped":[]`)
	})

	t.Run("generate without active schedules is 400", func(t *testing.T) {
		scheduleSvc := new(mockScheduleService)
		router := newTestRouter(new(mockMaintenanceService), new(mockPartUsageService), scheduleSvc)

		scheduleSvc.On("GenerateWeekly", mock.Anything).
			Return(nil, domain.NewValidation("no active weekly schedules configured"))

		rec := doRequest(router, http.MethodPost, "/maintenance/generate-weekly", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("put schedule replaces a bike's days", func(t *testing.T) {
		scheduleSvc := new(mockScheduleService)
		router := newTestRouter(new(mockMaintenanceService), new(mockPartUsageService), scheduleSvc)

		scheduleSvc.On("ReplaceBikeSchedule", mock.Anything, int32(1), []int32{1, 4}).Return(nil)

		rec := doRequest(router, http.MethodPut, "/maintenance/weekly-schedule", `{"bike_id": 1, "days": [1, 4]}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMaintenanceHandler_Patch(t *testing.T) {
	t.Run("invalid transition is 400", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("UpdateEvent", mock.Anything, int32(10), mock.Anything).
			Return(nil, domain.NewValidation("cannot transition from completed to planned"))

		rec := doRequest(router, http.MethodPatch, "/maintenance/10", `{"status": "planned"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unexpected failures stay generic", func(t *testing.T) {
		maintSvc := new(mockMaintenanceService)
		router := newTestRouter(maintSvc, new(mockPartUsageService), new(mockScheduleService))

		maintSvc.On("UpdateEvent", mock.Anything, int32(10), mock.Anything).
			Return(nil, assert.AnError)

		rec := doRequest(router, http.MethodPatch, "/maintenance/10", `{"notes": "x"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal server error")
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}
