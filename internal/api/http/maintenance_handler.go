package http

import (
	"net/http"
	"time"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
	"velotrack-backoffice/internal/service"
)

type MaintenanceHandler struct {
	maintSvc    service.MaintenanceService
	usageSvc    service.PartUsageService
	scheduleSvc service.ScheduleService
}

func NewMaintenanceHandler(maintSvc service.MaintenanceService, usageSvc service.PartUsageService, scheduleSvc service.ScheduleService) *MaintenanceHandler {
	return &MaintenanceHandler{maintSvc: maintSvc, usageSvc: usageSvc, scheduleSvc: scheduleSvc}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MaintenanceFilter{
		Type:      q.Get("type"),
		Status:    q.Get("status"),
		PartsNeed: q.Get("parts_need"),
		Page:      queryInt32(r, "page", 1),
		PageSize:  queryInt32(r, "page_size", 50),
	}
	if raw := q.Get("bike_id"); raw != "" {
		bikeID := queryInt32(r, "bike_id", 0)
		if bikeID <= 0 {
			respondError(w, domain.NewValidation("invalid bike_id %q", raw))
			return
		}
		filter.BikeID = &bikeID
	}
	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		if raw := q.Get(name); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(w, domain.NewValidation("invalid %s date %q, want YYYY-MM-DD", name, raw))
				return
			}
			*dst = &t
		}
	}

	events, total, err := h.maintSvc.ListEvents(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if events == nil {
		events = []domain.MaintenanceEvent{}
	}
	respondJSON(w, http.StatusOK, listResponse{Items: events, Total: total})
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	ev, err := h.maintSvc.GetEvent(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd service.CreateMaintenanceEvent
	if err := decodeStrict(r, &cmd); err != nil {
		respondError(w, err)
		return
	}
	ev, err := h.maintSvc.CreateEvent(r.Context(), &cmd)
	if err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, ev)
}

func (h *MaintenanceHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var cmd service.UpdateMaintenanceEvent
	if err := decodeStrict(r, &cmd); err != nil {
		respondError(w, err)
		return
	}
	ev, err := h.maintSvc.UpdateEvent(r.Context(), id, &cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.maintSvc.DeleteEvent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MaintenanceHandler) ListParts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	usages, err := h.usageSvc.ListUsages(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if usages == nil {
		usages = []domain.PartUsage{}
	}
	respondJSON(w, http.StatusOK, usages)
}

func (h *MaintenanceHandler) AddParts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var cmds []service.AddPartUsage
	if err := decodeStrict(r, &cmds); err != nil {
		respondError(w, err)
		return
	}
	created, err := h.usageSvc.AddUsages(r.Context(), id, cmds)
	if err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type updateUsageRequest struct {
	UsedQuantity   *int32 `json:"used_quantity"`
	NeededQuantity *int32 `json:"needed_quantity"`
}

func (h *MaintenanceHandler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		respondError(w, err)
		return
	}
	partID, err := pathID(r, "partId")
	if err != nil {
		respondError(w, err)
		return
	}
	var req updateUsageRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(w, err)
		return
	}
	usage, err := h.usageSvc.UpdateUsage(r.Context(), eventID, partID, req.UsedQuantity, req.NeededQuantity)
	if err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, usage)
}

func (h *MaintenanceHandler) DeletePart(w http.ResponseWriter, r *http.Request) {
	eventID, err := pathID(r, "eventId")
	if err != nil {
		respondError(w, err)
		return
	}
	partID, err := pathID(r, "partId")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.usageSvc.RemoveUsage(r.Context(), eventID, partID); err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MaintenanceHandler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.scheduleSvc.ListSchedules(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if schedules == nil {
		schedules = []domain.WeeklySchedule{}
	}
	respondJSON(w, http.StatusOK, schedules)
}

type putScheduleRequest struct {
	BikeID int32   `json:"bike_id"`
	Days   []int32 `json:"days"`
}

func (h *MaintenanceHandler) PutWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	var req putScheduleRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.BikeID <= 0 {
		respondError(w, domain.NewValidation("bike_id is required"))
		return
	}
	if err := h.scheduleSvc.ReplaceBikeSchedule(r.Context(), req.BikeID, req.Days); err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *MaintenanceHandler) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	report, err := h.scheduleSvc.GenerateWeekly(r.Context())
	if err != nil {
		respondCreateError(w, err)
		return
	}
	if report.Created == nil {
		report.Created = []domain.MaintenanceEvent{}
	}
	if report.Skipped == nil {
		report.Skipped = []service.WeeklySkip{}
	}
	if report.Errors == nil {
		report.Errors = []service.WeeklyError{}
	}
	respondJSON(w, http.StatusOK, report)
}
