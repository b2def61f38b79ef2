// Command kiosk is a terminal front-end for the pastry orders API. It
// covers the same flows as the web UI: browsing the catalog, business
// signup, the admin approval list, pastry creation, and placing orders
// through the order composer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/izzybakes/pastry-orders/internal/composer"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/pkg/api"
	"github.com/izzybakes/pastry-orders/pkg/client"
)

const defaultBaseURL = "http://localhost:8000"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	baseURL := os.Getenv("PASTRY_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := client.New(baseURL)
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "pastries":
		err = listPastries(ctx, c)
	case "add-pastry":
		err = addPastry(ctx, c, os.Args[2:])
	case "signup":
		err = signup(ctx, c, os.Args[2:])
	case "businesses":
		err = listBusinesses(ctx, c, os.Args[2:])
	case "approve":
		err = approve(ctx, c, os.Args[2:])
	case "order":
		err = placeOrder(ctx, c, os.Args[2:])
	case "show-order":
		err = showOrder(ctx, c, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kiosk <command> [flags]

commands:
  pastries            list the catalog
  add-pastry          add a pastry to the catalog
  signup              register a business (starts pending approval)
  businesses          list businesses
  approve             approve a business
  order               place a delivery order
  show-order          show a placed order

set PASTRY_API_URL to point at the API (default `+defaultBaseURL+`)`)
}

func listPastries(ctx context.Context, c *client.Client) error {
	pastries, err := c.ListPastries(ctx)
	if err != nil {
		return err
	}

	if len(pastries) == 0 {
		fmt.Println("No pastries yet.")
		return nil
	}
	for _, p := range pastries {
		desc := p.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Printf("%s  $%s  %s  (%s)\n", p.ID, p.PriceCents, p.Name, desc)
	}

	return nil
}

func addPastry(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("add-pastry", flag.ExitOnError)
	name := fs.String("name", "", "pastry name")
	description := fs.String("description", "", "optional description")
	price := fs.Float64("price", 0, "price, e.g. 3.50")
	active := fs.Bool("active", true, "whether the pastry is orderable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := c.CreatePastry(ctx, api.CreatePastryRequest{
		Name:        *name,
		Description: *description,
		Price:       *price,
		Active:      *active,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Pastry added. ID: %s\n", created.ID)

	return nil
}

func signup(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "business name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	businessType := fs.String("type", "", "business type (restaurant, school, etc.)")
	address := fs.String("address", "", "business address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := c.SignupBusiness(ctx, api.SignupRequest{
		Name:         *name,
		Email:        *email,
		Phone:        *phone,
		BusinessType: *businessType,
		Address:      *address,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved. Your business ID is %s. Pending approval.\n", created.ID)

	return nil
}

func listBusinesses(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("businesses", flag.ExitOnError)
	onlyPending := fs.Bool("pending", true, "show only pending approvals")
	if err := fs.Parse(args); err != nil {
		return err
	}

	businesses, err := c.ListBusinesses(ctx, *onlyPending)
	if err != nil {
		return err
	}

	if len(businesses) == 0 {
		fmt.Println("No businesses found.")
		return nil
	}
	for _, b := range businesses {
		status := "Pending"
		if b.Approved {
			status = "Approved"
		}
		fmt.Printf("%s  [%s]  %s  %s - %s - %s\n", b.ID, status, b.Name, b.Email, b.BusinessType, b.Address)
	}

	return nil
}

func approve(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	id := fs.String("id", "", "business id")
	approved := fs.Bool("approved", true, "approval flag to set")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	updated, err := c.SetApproval(ctx, *id, *approved)
	if err != nil {
		return err
	}

	fmt.Printf("Updated approval status: %s approved=%t\n", updated.Name, updated.Approved)

	return nil
}

// itemFlags collects repeated -item id=qty flags.
type itemFlags map[string]int

func (f itemFlags) String() string {
	parts := make([]string, 0, len(f))
	for id, qty := range f {
		parts = append(parts, fmt.Sprintf("%s=%d", id, qty))
	}
	return strings.Join(parts, ",")
}

func (f itemFlags) Set(value string) error {
	id, qtyStr, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("expected id=qty, got %q", value)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return fmt.Errorf("invalid quantity in %q: %w", value, err)
	}
	f[id] = qty
	return nil
}

func placeOrder(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	businessID := fs.String("business", "", "approved business id")
	date := fs.String("date", "", "delivery date, e.g. 2026-09-01")
	timeOfDay := fs.String("time", "", "delivery time, e.g. 14:30")
	address := fs.String("address", "", "delivery address")
	notes := fs.String("notes", "", "optional notes")
	items := itemFlags{}
	fs.Var(items, "item", "pastry to order as id=qty (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The delivery fee is a fixed constant, currently zero; override via
	// PASTRY_DELIVERY_FEE when that changes.
	var deliveryFee float64
	if raw := os.Getenv("PASTRY_DELIVERY_FEE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid PASTRY_DELIVERY_FEE: %w", err)
		}
		deliveryFee = parsed
	}

	comp := composer.NewComposer(
		composer.WithCatalogSource(c),
		composer.WithOrderSink(c),
		composer.WithDeliveryFee(currency.FromFloat(deliveryFee)),
	)
	if err := comp.RefreshCatalog(ctx); err != nil {
		return err
	}

	comp.SetBusinessID(*businessID)
	comp.SetDelivery(composer.Delivery{
		Date:    *date,
		Time:    *timeOfDay,
		Address: *address,
	})
	comp.SetNotes(*notes)
	for id, qty := range items {
		comp.SetQuantity(id, qty)
	}

	totals := comp.Totals()
	fmt.Printf("Subtotal: $%s - Delivery: $%s - Total: $%s\n",
		totals.Subtotal, totals.DeliveryFee, totals.Total)

	id, err := comp.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Order placed. ID: %s\n", id)

	return nil
}

func showOrder(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("show-order", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	o, err := c.GetOrder(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Printf("Order %s for business %s\n", o.ID, o.BusinessID)
	fmt.Printf("Delivery: %s %s to %s\n", o.DeliveryDate, o.DeliveryTime, o.DeliveryAddress)
	if o.Notes != "" {
		fmt.Printf("Notes: %s\n", o.Notes)
	}
	for _, it := range o.Items {
		fmt.Printf("  %dx %s @ $%s\n", it.Quantity, it.Name, it.UnitPriceCents)
	}
	fmt.Printf("Subtotal: $%s - Delivery: $%s - Total: $%s\n",
		o.SubtotalCents, o.DeliveryFee, o.TotalCents)

	return nil
}
