package api

import (
	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

// ToModel converts a wire pastry to the internal model, moving the price
// into cents.
func (p Pastry) ToModel() pastry.Pastry {
	return pastry.Pastry{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    currency.FromFloat(p.Price),
		PriceCurrency: currency.CurrencyUSD,
		Active:        p.Active,
	}
}

// PastryFromModel converts an internal pastry to its wire shape.
func PastryFromModel(p pastry.Pastry) Pastry {
	return Pastry{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.PriceCents.Float64(),
		Active:      p.Active,
	}
}

// ToModel converts a wire business to the internal model.
func (b Business) ToModel() business.Business {
	return business.Business{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		BusinessType: b.BusinessType,
		Address:      b.Address,
		Approved:     b.Approved,
	}
}

// BusinessFromModel converts an internal business to its wire shape.
func BusinessFromModel(b business.Business) Business {
	return Business{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		BusinessType: b.BusinessType,
		Address:      b.Address,
		Approved:     b.Approved,
	}
}

// ToModel converts a wire order request to the internal model. Amounts
// round to cents here and never touch floats again.
func (r CreateOrderRequest) ToModel() order.Order {
	items := make([]order.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, order.Item{
			PastryID:       it.PastryID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: currency.FromFloat(it.UnitPrice),
		})
	}

	return order.Order{
		BusinessID:      r.BusinessID,
		Items:           items,
		DeliveryDate:    r.DeliveryDate,
		DeliveryTime:    r.DeliveryTime,
		DeliveryAddress: r.DeliveryAddress,
		Notes:           r.Notes,
		SubtotalCents:   currency.FromFloat(r.Subtotal),
		DeliveryFee:     currency.FromFloat(r.DeliveryFee),
		TotalCents:      currency.FromFloat(r.Total),
		Currency:        currency.CurrencyUSD,
	}
}

// CreateOrderRequestFromModel converts an internal order draft to the
// wire request shape, rounding amounts to 2 decimal places.
func CreateOrderRequestFromModel(o order.Order) CreateOrderRequest {
	return CreateOrderRequest{
		BusinessID:      o.BusinessID,
		Items:           orderItemsFromModel(o.Items),
		DeliveryDate:    o.DeliveryDate,
		DeliveryTime:    o.DeliveryTime,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		Subtotal:        o.SubtotalCents.Float64(),
		DeliveryFee:     o.DeliveryFee.Float64(),
		Total:           o.TotalCents.Float64(),
	}
}

// ToModel converts a wire order to the internal model.
func (o Order) ToModel() order.Order {
	items := make([]order.Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, order.Item{
			PastryID:       it.PastryID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: currency.FromFloat(it.UnitPrice),
		})
	}

	return order.Order{
		ID:              o.ID,
		BusinessID:      o.BusinessID,
		Items:           items,
		DeliveryDate:    o.DeliveryDate,
		DeliveryTime:    o.DeliveryTime,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		SubtotalCents:   currency.FromFloat(o.Subtotal),
		DeliveryFee:     currency.FromFloat(o.DeliveryFee),
		TotalCents:      currency.FromFloat(o.Total),
		Currency:        currency.CurrencyUSD,
		CreatedAt:       o.CreatedAt,
	}
}

// OrderFromModel converts an internal order to its wire shape.
func OrderFromModel(o order.Order) Order {
	return Order{
		ID:              o.ID,
		BusinessID:      o.BusinessID,
		Items:           orderItemsFromModel(o.Items),
		DeliveryDate:    o.DeliveryDate,
		DeliveryTime:    o.DeliveryTime,
		DeliveryAddress: o.DeliveryAddress,
		Notes:           o.Notes,
		Subtotal:        o.SubtotalCents.Float64(),
		DeliveryFee:     o.DeliveryFee.Float64(),
		Total:           o.TotalCents.Float64(),
		CreatedAt:       o.CreatedAt,
	}
}

func orderItemsFromModel(items []order.Item) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItem{
			PastryID:  it.PastryID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPriceCents.Float64(),
		})
	}
	return out
}
