package httptransport

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/izzybakes/pastry-orders/pkg/api"
)

// newValidator returns a configured validator with struct-level
// validation registered for order creation.
func newValidator() *validator.Validate {
	v := validator.New()

	// The client snapshots its totals; make sure the arithmetic holds
	// before trusting them.
	v.RegisterStructValidation(createOrderStructValidation, api.CreateOrderRequest{})

	return v
}

// createOrderStructValidation verifies that subtotal equals the sum of
// quantity*unit_price and that total equals subtotal plus the delivery
// fee, comparing in rounded cents to sidestep float noise.
func createOrderStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(api.CreateOrderRequest)

	var sumCents int64
	for _, it := range req.Items {
		sumCents += int64(it.Quantity) * toCents(it.UnitPrice)
	}

	subtotalCents := toCents(req.Subtotal)
	if sumCents != subtotalCents {
		sl.ReportError(req.Subtotal, "subtotal", "Subtotal", "subtotal_match_items",
			fmt.Sprintf("items sum %.2f != subtotal %.2f", float64(sumCents)/100, req.Subtotal))
	}

	if subtotalCents+toCents(req.DeliveryFee) != toCents(req.Total) {
		sl.ReportError(req.Total, "total", "Total", "total_match_subtotal",
			fmt.Sprintf("subtotal %.2f + delivery fee %.2f != total %.2f", req.Subtotal, req.DeliveryFee, req.Total))
	}
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
