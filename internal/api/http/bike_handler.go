package http

import (
	"net/http"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
	"velotrack-backoffice/internal/service"
)

type BikeHandler struct {
	bikeSvc service.BikeService
}

func NewBikeHandler(bikeSvc service.BikeService) *BikeHandler {
	return &BikeHandler{bikeSvc: bikeSvc}
}

func (h *BikeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.BikeFilter{
		Status:   r.URL.Query().Get("status"),
		Brand:    r.URL.Query().Get("brand"),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 50),
	}
	bikes, total, err := h.bikeSvc.ListBikes(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if bikes == nil {
		bikes = []domain.Bike{}
	}
	respondJSON(w, http.StatusOK, listResponse{Items: bikes, Total: total})
}

func (h *BikeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	bike, err := h.bikeSvc.GetBike(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bike)
}

type createBikeRequest struct {
	Brand        string            `json:"brand"`
	Model        string            `json:"model"`
	SerialNumber string            `json:"serial_number"`
	FrameSize    string            `json:"frame_size"`
	Color        string            `json:"color"`
	Year         int32             `json:"year"`
	PriceCents   int32             `json:"price_cents"`
	Status       domain.BikeStatus `json:"status"`
	Notes        string            `json:"notes"`
}

func (h *BikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBikeRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(w, err)
		return
	}
	bike := &domain.Bike{
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		FrameSize:    req.FrameSize,
		Color:        req.Color,
		Year:         req.Year,
		PriceCents:   req.PriceCents,
		Status:       req.Status,
		Notes:        req.Notes,
	}
	if err := h.bikeSvc.CreateBike(r.Context(), bike); err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bike)
}

func (h *BikeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var cmd service.UpdateBike
	if err := decodeStrict(r, &cmd); err != nil {
		respondError(w, err)
		return
	}
	bike, err := h.bikeSvc.UpdateBike(r.Context(), id, &cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bike)
}

func (h *BikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.bikeSvc.DeleteBike(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
