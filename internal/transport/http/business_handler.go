package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/services/directorysvc"
	"github.com/izzybakes/pastry-orders/pkg/api"
)

type listBusinessesRequest struct {
	OnlyPending bool `schema:"only_pending"`
}

func (h *HTTPTransport) listBusinesses(w http.ResponseWriter, r *http.Request) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	query := &listBusinessesRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	businesses, err := h.directory.List(r.Context(), query.OnlyPending)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing businesses", "error", err)

		return
	}

	wire := make([]api.Business, 0, len(businesses))
	for _, b := range businesses {
		wire = append(wire, api.BusinessFromModel(b))
	}

	respondJSON(w, http.StatusOK, wire)
}

func (h *HTTPTransport) signupBusiness(w http.ResponseWriter, r *http.Request) {
	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for signup", "error", err)

		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := h.directory.Signup(r.Context(), business.Business{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BusinessType: req.BusinessType,
		Address:      req.Address,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error signing up business", "error", err)

		return
	}

	respondJSON(w, http.StatusCreated, api.BusinessFromModel(created))
}

func (h *HTTPTransport) approveBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req api.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for approval", "error", err)

		return
	}

	updated, err := h.directory.SetApproval(r.Context(), id, req.Approved)
	if err != nil {
		if errors.Is(err, directorysvc.ErrBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error updating approval", "error", err, "business_id", id)

		return
	}

	respondJSON(w, http.StatusOK, api.BusinessFromModel(updated))
}
