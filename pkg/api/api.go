// Package api defines the HTTP/JSON wire contract shared by the server
// transport and pkg/client. Currency amounts cross the wire as floats
// rounded to 2 decimal places; everything internal stays in cents.
package api

import "time"

// Pastry is a catalog entry as it appears on the wire.
type Pastry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
}

// CreatePastryRequest is the body of POST /api/pastries.
type CreatePastryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Active      bool    `json:"active"`
}

// Business is a directory entry as it appears on the wire.
type Business struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
	Address      string `json:"address"`
	Approved     bool   `json:"approved"`
}

// SignupRequest is the body of POST /api/business/signup.
type SignupRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	BusinessType string `json:"business_type" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

// ApproveRequest is the body of PATCH /api/business/{id}/approve.
type ApproveRequest struct {
	Approved bool `json:"approved"`
}

// OrderItem is one order line as it appears on the wire.
type OrderItem struct {
	PastryID  string  `json:"pastry_id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// CreateOrderRequest is the body of POST /api/orders. The amounts are a
// client-side snapshot; the server checks their arithmetic before
// accepting (see the struct-level validation in the transport package).
type CreateOrderRequest struct {
	BusinessID      string      `json:"business_id" validate:"required"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryDate    string      `json:"delivery_date" validate:"required"`
	DeliveryTime    string      `json:"delivery_time" validate:"required"`
	DeliveryAddress string      `json:"delivery_address" validate:"required"`
	Notes           string      `json:"notes,omitempty"`
	Subtotal        float64     `json:"subtotal" validate:"gte=0"`
	DeliveryFee     float64     `json:"delivery_fee" validate:"gte=0"`
	Total           float64     `json:"total" validate:"gte=0"`
}

// Order is a placed order as it appears on the wire.
type Order struct {
	ID              string      `json:"id"`
	BusinessID      string      `json:"business_id"`
	Items           []OrderItem `json:"items"`
	DeliveryDate    string      `json:"delivery_date"`
	DeliveryTime    string      `json:"delivery_time"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes,omitempty"`
	Subtotal        float64     `json:"subtotal"`
	DeliveryFee     float64     `json:"delivery_fee"`
	Total           float64     `json:"total"`
	CreatedAt       time.Time   `json:"created_at"`
}
