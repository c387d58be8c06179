package http

import (
	"net/http"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/repository"
	"velotrack-backoffice/internal/service"
)

type PartHandler struct {
	partSvc service.PartService
}

func NewPartHandler(partSvc service.PartService) *PartHandler {
	return &PartHandler{partSvc: partSvc}
}

func (h *PartHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.PartFilter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Page:     queryInt32(r, "page", 1),
		PageSize: queryInt32(r, "page_size", 50),
	}
	parts, total, err := h.partSvc.ListParts(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	if parts == nil {
		parts = []domain.Part{}
	}
	respondJSON(w, http.StatusOK, listResponse{Items: parts, Total: total})
}

func (h *PartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	part, err := h.partSvc.GetPart(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, part)
}

type createPartRequest struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	Manufacturer     string `json:"manufacturer"`
	UnitPriceCents   int32  `json:"unit_price_cents"`
	StockQuantity    int32  `json:"stock_quantity"`
	MinStockQuantity int32  `json:"min_stock_quantity"`
}

func (h *PartHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPartRequest
	if err := decodeStrict(r, &req); err != nil {
		respondError(w, err)
		return
	}
	part := &domain.Part{
		Name:             req.Name,
		Category:         req.Category,
		Manufacturer:     req.Manufacturer,
		UnitPriceCents:   req.UnitPriceCents,
		StockQuantity:    req.StockQuantity,
		MinStockQuantity: req.MinStockQuantity,
	}
	if err := h.partSvc.CreatePart(r.Context(), part); err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, part)
}

func (h *PartHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var cmd service.UpdatePart
	if err := decodeStrict(r, &cmd); err != nil {
		respondError(w, err)
		return
	}
	part, err := h.partSvc.UpdatePart(r.Context(), id, &cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, part)
}

func (h *PartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.partSvc.DeletePart(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
