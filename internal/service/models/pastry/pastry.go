package pastry

import (
	"time"

	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
)

// Pastry represents a catalog entry that businesses can order.
type Pastry struct {
	ID            string
	Name          string
	Description   string
	PriceCents    currency.Cents
	PriceCurrency currency.Currency
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
