package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/izzybakes/pastry-orders/internal/service/services/ordersvc"
	"github.com/izzybakes/pastry-orders/pkg/api"
)

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	created, err := h.orders.Create(r.Context(), req.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, ordersvc.ErrBusinessNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ordersvc.ErrBusinessNotApproved):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			slog.Error("Error creating order", "error", err)
		}

		return
	}

	respondJSON(w, http.StatusCreated, api.OrderFromModel(created))
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ordersvc.ErrOrderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)

			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting order", "error", err, "order_id", id)

		return
	}

	respondJSON(w, http.StatusOK, api.OrderFromModel(o))
}
