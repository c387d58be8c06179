package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"velotrack-backoffice/internal/domain"
	"velotrack-backoffice/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses: NotFound
// 404, Conflict and ValidationError 400, anything else 500 with a generic
// message (details stay server-side).
func respondError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	var validation *domain.ValidationError

	switch {
	case errors.As(err, &notFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &conflict):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: conflict.Error()})
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error()})
	default:
		logger.Error("request failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// respondCreateError is respondError for endpoints where the missing entity
// is referenced by the request body or a sub-resource path, so a miss is the
// caller's mistake (400), not an unknown route (404).
func respondCreateError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: notFound.Error()})
		return
	}
	respondError(w, err)
}

// decodeStrict decodes a JSON body rejecting unknown fields, so typos and
// stray keys fail loudly instead of being ignored.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidation("invalid request body: %v", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidation("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}
