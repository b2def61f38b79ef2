// Package client is a thin HTTP client for the pastry orders API: one
// request per call, no retries, no caching. Non-2xx responses come back
// as *api.Error carrying the server's text body.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
	"github.com/izzybakes/pastry-orders/pkg/api"
)

// Client talks to the pastry orders API. It implements the composer's
// CatalogSource and OrderSink.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// option is a function that configures the Client.
type option func(*Client)

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient replaces the underlying *http.Client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHTTPClient(httpClient *http.Client) option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// ListPastries fetches the catalog. An empty catalog is an empty slice,
// never nil.
func (c *Client) ListPastries(ctx context.Context) ([]pastry.Pastry, error) {
	var wire []api.Pastry
	if err := c.do(ctx, http.MethodGet, "/api/pastries", nil, &wire); err != nil {
		return nil, err
	}

	pastries := make([]pastry.Pastry, 0, len(wire))
	for _, p := range wire {
		pastries = append(pastries, p.ToModel())
	}

	return pastries, nil
}

// CreatePastry adds a pastry to the catalog.
func (c *Client) CreatePastry(ctx context.Context, req api.CreatePastryRequest) (pastry.Pastry, error) {
	var wire api.Pastry
	if err := c.do(ctx, http.MethodPost, "/api/pastries", req, &wire); err != nil {
		return pastry.Pastry{}, err
	}

	return wire.ToModel(), nil
}

// ListBusinesses fetches the business directory, optionally filtered to
// businesses still pending approval.
func (c *Client) ListBusinesses(ctx context.Context, onlyPending bool) ([]business.Business, error) {
	var wire []api.Business
	path := "/api/business?only_pending=" + strconv.FormatBool(onlyPending)
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}

	businesses := make([]business.Business, 0, len(wire))
	for _, b := range wire {
		businesses = append(businesses, b.ToModel())
	}

	return businesses, nil
}

// SignupBusiness registers a new business; it starts unapproved.
func (c *Client) SignupBusiness(ctx context.Context, req api.SignupRequest) (business.Business, error) {
	var wire api.Business
	if err := c.do(ctx, http.MethodPost, "/api/business/signup", req, &wire); err != nil {
		return business.Business{}, err
	}

	return wire.ToModel(), nil
}

// SetApproval updates the approval flag of a business.
func (c *Client) SetApproval(ctx context.Context, id string, approved bool) (business.Business, error) {
	var wire api.Business
	path := "/api/business/" + id + "/approve"
	if err := c.do(ctx, http.MethodPatch, path, api.ApproveRequest{Approved: approved}, &wire); err != nil {
		return business.Business{}, err
	}

	return wire.ToModel(), nil
}

// CreateOrder submits a finalized order and returns it with its ID.
func (c *Client) CreateOrder(ctx context.Context, o order.Order) (order.Order, error) {
	var wire api.Order
	req := api.CreateOrderRequestFromModel(o)
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &wire); err != nil {
		return order.Order{}, err
	}

	return wire.ToModel(), nil
}

// GetOrder fetches one placed order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (order.Order, error) {
	var wire api.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &wire); err != nil {
		return order.Order{}, err
	}

	return wire.ToModel(), nil
}

// do issues one JSON request. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return &api.Error{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(text)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
