package http

import (
	"net/http"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/service"
)

type PurchaseHandler struct {
	purchaseSvc service.PurchaseService
}

func NewPurchaseHandler(purchaseSvc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc}
}

func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	reqs, total, err := h.purchaseSvc.ListRequests(r.Context(),
		r.URL.Query().Get("status"),
		queryInt32(r, "page", 1),
		queryInt32(r, "page_size", 50))
	if err != nil {
		respondError(w, err)
		return
	}
	if reqs == nil {
		reqs = []domain.PurchaseRequest{}
	}
	respondJSON(w, http.StatusOK, listResponse{Items: reqs, Total: total})
}

func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	req, err := h.purchaseSvc.GetRequest(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type createPurchaseRequest struct {
	PartID      int32                   `json:"part_id"`
	Quantity    int32                   `json:"quantity"`
	Priority    domain.PurchasePriority `json:"priority"`
	Notes       string                  `json:"notes"`
	CreatedByID *int32                  `json:"created_by_id"`
}

func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body createPurchaseRequest
	if err := decodeStrict(r, &body); err != nil {
		respondError(w, err)
		return
	}
	req := &domain.PurchaseRequest{
		PartID:      body.PartID,
		Quantity:    body.Quantity,
		Priority:    body.Priority,
		Notes:       body.Notes,
		CreatedByID: body.CreatedByID,
	}
	if err := h.purchaseSvc.CreateRequest(r.Context(), req); err != nil {
		respondCreateError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

func (h *PurchaseHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var cmd service.UpdatePurchaseRequest
	if err := decodeStrict(r, &cmd); err != nil {
		respondError(w, err)
		return
	}
	req, err := h.purchaseSvc.UpdateRequest(r.Context(), id, &cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.purchaseSvc.DeleteRequest(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
