package composer

import (
	"context"
	"sync"
	"time"

	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
)

// CatalogSource lists the pastries available for ordering.
type CatalogSource interface {
	ListPastries(ctx context.Context) ([]pastry.Pastry, error)
}

// OrderSink accepts a finalized order and returns it with its assigned ID.
type OrderSink interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// State is the submission state of the composer.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// Delivery holds the delivery metadata of an order in progress.
type Delivery struct {
	Date    string
	Time    string
	Address string
}

// Composer owns the cart, the delivery details, and the submission state
// machine of one ordering session. A successful submission clears the
// cart, delivery fields, and notes; the business ID is kept so the same
// business can order again.
type Composer struct {
	mu          sync.Mutex
	state       State
	catalog     []pastry.Pastry
	cart        map[string]int
	businessID  string
	delivery    Delivery
	notes       string
	deliveryFee currency.Cents

	source CatalogSource
	sink   OrderSink
}

// option is a function that configures the Composer.
type option func(*Composer)

// NewComposer creates a composer with an empty cart.
func NewComposer(opts ...option) *Composer {
	c := &Composer{
		state: StateIdle,
		cart:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithCatalogSource sets where the composer refreshes its catalog from.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCatalogSource(source CatalogSource) option {
	return func(c *Composer) {
		c.source = source
	}
}

// WithOrderSink sets where finalized orders are submitted.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderSink(sink OrderSink) option {
	return func(c *Composer) {
		c.sink = sink
	}
}

// WithDeliveryFee sets the fixed delivery fee added to every order.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDeliveryFee(fee currency.Cents) option {
	return func(c *Composer) {
		c.deliveryFee = fee
	}
}

// RefreshCatalog replaces the catalog snapshot from the source. Cart
// entries for pastries that disappeared are kept but price as zero until
// the pastry comes back.
func (c *Composer) RefreshCatalog(ctx context.Context) error {
	pastries, err := c.source.ListPastries(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.catalog = pastries
	c.mu.Unlock()

	return nil
}

// Catalog returns a copy of the current catalog snapshot.
func (c *Composer) Catalog() []pastry.Pastry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]pastry.Pastry, len(c.catalog))
	copy(out, c.catalog)

	return out
}

// SetQuantity sets the cart entry for a pastry, clamping negative
// quantities to zero. This is the only cart mutation primitive.
func (c *Composer) SetQuantity(pastryID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty < 0 {
		qty = 0
	}
	c.cart[pastryID] = qty
}

// Quantity returns the cart quantity for a pastry; absent entries read
// as zero.
func (c *Composer) Quantity(pastryID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cart[pastryID]
}

// Increment adds one to the cart entry for a pastry.
func (c *Composer) Increment(pastryID string) {
	c.SetQuantity(pastryID, c.Quantity(pastryID)+1)
}

// Decrement removes one from the cart entry for a pastry, stopping at zero.
func (c *Composer) Decrement(pastryID string) {
	c.SetQuantity(pastryID, c.Quantity(pastryID)-1)
}

// Clear empties the cart and drops the delivery details and notes. The
// business ID is kept.
func (c *Composer) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// reset clears cart, delivery, and notes. Caller holds c.mu.
func (c *Composer) reset() {
	c.cart = make(map[string]int)
	c.delivery = Delivery{}
	c.notes = ""
}

// Cart returns a copy of the cart mapping.
func (c *Composer) Cart() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]int, len(c.cart))
	for id, qty := range c.cart {
		out[id] = qty
	}

	return out
}

func (c *Composer) SetBusinessID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.businessID = id
}

func (c *Composer) SetDelivery(d Delivery) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delivery = d
}

func (c *Composer) SetNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = notes
}

// State reports the current submission state.
func (c *Composer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Totals recomputes the derived pricing from the current cart and
// catalog snapshot.
func (c *Composer) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ComputeTotals(c.cart, c.catalog, c.deliveryFee)
}

// Submit validates the session, snapshots it into an order, and sends it
// to the sink. Validation failures return a *ValidationError without any
// network call. At most one submission is in flight at a time; re-entrant
// calls get ErrSubmissionInFlight. On success the returned value is the
// assigned order ID and the cart, delivery fields, and notes are cleared.
// On any failure the session is left untouched.
func (c *Composer) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	c.state = StateValidating

	draft, err := c.buildDraft()
	if err != nil {
		c.state = StateIdle
		c.mu.Unlock()
		return "", err
	}

	c.state = StateSubmitting
	c.mu.Unlock()

	created, err := c.sink.CreateOrder(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle

	if err != nil {
		return "", err
	}

	c.reset()

	return created.ID, nil
}

// buildDraft validates the session and snapshots it. Caller holds c.mu.
// Items follow catalog order, so the snapshot is deterministic.
func (c *Composer) buildDraft() (order.Order, error) {
	if c.businessID == "" {
		return order.Order{}, &ValidationError{Kind: KindBusinessRequired}
	}

	items := make([]order.Item, 0, len(c.cart))
	for _, p := range c.catalog {
		qty := c.cart[p.ID]
		if qty <= 0 {
			continue
		}
		items = append(items, order.Item{
			PastryID:       p.ID,
			Name:           p.Name,
			Quantity:       qty,
			UnitPriceCents: p.PriceCents,
		})
	}
	if len(items) == 0 {
		return order.Order{}, &ValidationError{Kind: KindEmptyCart}
	}

	if c.delivery.Date == "" || c.delivery.Time == "" || c.delivery.Address == "" {
		return order.Order{}, &ValidationError{Kind: KindDeliveryRequired}
	}

	totals := ComputeTotals(c.cart, c.catalog, c.deliveryFee)
	now := time.Now()

	return order.Order{
		BusinessID:      c.businessID,
		Items:           items,
		DeliveryDate:    c.delivery.Date,
		DeliveryTime:    c.delivery.Time,
		DeliveryAddress: c.delivery.Address,
		Notes:           c.notes,
		SubtotalCents:   totals.Subtotal,
		DeliveryFee:     totals.DeliveryFee,
		TotalCents:      totals.Total,
		Currency:        currency.CurrencyUSD,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
