package composer

import (
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

// Totals is the derived pricing of a cart.
type Totals struct {
	Subtotal    currency.Cents
	DeliveryFee currency.Cents
	Total       currency.Cents
}

// ComputeTotals derives the order totals from the cart and the catalog.
// Entries with quantity <= 0 and entries referencing a pastry no longer
// in the catalog contribute nothing. The result does not depend on the
// iteration order of the cart map.
func ComputeTotals(cart map[string]int, catalog []pastry.Pastry, deliveryFee currency.Cents) Totals {
	var subtotal currency.Cents
	for _, p := range catalog {
		qty := cart[p.ID]
		if qty <= 0 {
			continue
		}
		subtotal += p.PriceCents.Mul(qty)
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       subtotal + deliveryFee,
	}
}
