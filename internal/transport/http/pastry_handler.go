package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
	"github.com/izzybakes/pastry-orders/pkg/api"
)

func (h *HTTPTransport) listPastries(w http.ResponseWriter, r *http.Request) {
	pastries, err := h.catalog.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error listing pastries", "error", err)

		return
	}

	wire := make([]api.Pastry, 0, len(pastries))
	for _, p := range pastries {
		wire = append(wire, api.PastryFromModel(p))
	}

	respondJSON(w, http.StatusOK, wire)
}

func (h *HTTPTransport) createPastry(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePastryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create pastry", "error", err)

		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := h.catalog.Create(r.Context(), pastry.Pastry{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  currency.FromFloat(req.Price),
		Active:      req.Active,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error creating pastry", "error", err)

		return
	}

	respondJSON(w, http.StatusCreated, api.PastryFromModel(created))
}
