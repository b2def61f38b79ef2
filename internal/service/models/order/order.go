package order

import (
	"time"

	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
)

// Order represents a placed delivery order. Items are a snapshot of the
// cart at submission time; prices never re-resolve against the catalog.
type Order struct {
	ID              string
	BusinessID      string
	Items           []Item
	DeliveryDate    string
	DeliveryTime    string
	DeliveryAddress string
	Notes           string
	SubtotalCents   currency.Cents
	DeliveryFee     currency.Cents
	TotalCents      currency.Cents
	Currency        currency.Currency
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Item is a single order line.
type Item struct {
	ID             int64
	OrderID        string
	PastryID       string
	Name           string
	Quantity       int
	UnitPriceCents currency.Cents
}
