package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izzybakes/pastry-orders/internal/service/models/business"
	"github.com/izzybakes/pastry-orders/internal/service/models/currency"
	"github.com/izzybakes/pastry-orders/internal/service/models/order"
	"github.com/izzybakes/pastry-orders/internal/service/models/pastry"
	"github.com/izzybakes/pastry-orders/internal/service/services/directorysvc"
	"github.com/izzybakes/pastry-orders/internal/service/services/ordersvc"
	"github.com/izzybakes/pastry-orders/pkg/api"
)

type mockCatalogService struct {
	pastries []pastry.Pastry
	created  pastry.Pastry
	err      error
}

func (m *mockCatalogService) List(_ context.Context) ([]pastry.Pastry, error) {
	return m.pastries, m.err
}

func (m *mockCatalogService) Create(_ context.Context, p pastry.Pastry) (pastry.Pastry, error) {
	if m.err != nil {
		return pastry.Pastry{}, m.err
	}
	p.ID = "p-created"
	m.created = p
	return p, nil
}

type mockDirectoryService struct {
	businesses      []business.Business
	gotOnlyPending  bool
	signedUp        business.Business
	approvalID      string
	approvalGranted bool
	err             error
}

func (m *mockDirectoryService) List(_ context.Context, onlyPending bool) ([]business.Business, error) {
	m.gotOnlyPending = onlyPending
	return m.businesses, m.err
}

func (m *mockDirectoryService) Signup(_ context.Context, b business.Business) (business.Business, error) {
	if m.err != nil {
		return business.Business{}, m.err
	}
	b.ID = "b-created"
	m.signedUp = b
	return b, nil
}

func (m *mockDirectoryService) SetApproval(_ context.Context, id string, approved bool) (business.Business, error) {
	if m.err != nil {
		return business.Business{}, m.err
	}
	m.approvalID = id
	m.approvalGranted = approved
	return business.Business{ID: id, Approved: approved}, nil
}

type mockOrderService struct {
	got    order.Order
	stored order.Order
	err    error
}

func (m *mockOrderService) Create(_ context.Context, o order.Order) (order.Order, error) {
	if m.err != nil {
		return order.Order{}, m.err
	}
	m.got = o
	o.ID = "o-created"
	return o, nil
}

func (m *mockOrderService) GetByID(_ context.Context, _ string) (order.Order, error) {
	if m.err != nil {
		return order.Order{}, m.err
	}
	return m.stored, nil
}

func newTestTransport(catalog catalogService, directory directoryService, orders orderService) *HTTPTransport {
	h := NewHTTPTransport(catalog, directory, orders)
	h.RegisterRoutes()
	return h
}

func (h *HTTPTransport) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestListPastries_EmptyCatalogEncodesAsArray(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/api/pastries", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestCreatePastry(t *testing.T) {
	catalog := &mockCatalogService{}
	h := newTestTransport(catalog, &mockDirectoryService{}, &mockOrderService{})

	body := `{"name":"Croissant","description":"Buttery","price":3.5,"active":true}`
	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/pastries", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, currency.Cents(350), catalog.created.PriceCents)

	var wire api.Pastry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wire))
	assert.Equal(t, "p-created", wire.ID)
	assert.InDelta(t, 3.5, wire.Price, 1e-9)
}

func TestCreatePastry_RejectsMissingName(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/pastries", strings.NewReader(`{"price":1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListBusinesses_ParsesOnlyPending(t *testing.T) {
	directory := &mockDirectoryService{}
	h := newTestTransport(&mockCatalogService{}, directory, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/api/business?only_pending=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, directory.gotOnlyPending)
}

func TestListBusinesses_IgnoresUnknownQueryKeys(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/api/business?page=3", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupBusiness(t *testing.T) {
	directory := &mockDirectoryService{}
	h := newTestTransport(&mockCatalogService{}, directory, &mockOrderService{})

	body := `{"name":"Cafe Uno","email":"uno@example.com","phone":"555-0101","business_type":"cafe","address":"12 Main St"}`
	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/business/signup", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "cafe", directory.signedUp.BusinessType)

	var wire api.Business
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wire))
	assert.Equal(t, "b-created", wire.ID)
	assert.False(t, wire.Approved)
}

func TestSignupBusiness_RejectsInvalidEmail(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	body := `{"name":"Cafe Uno","email":"not-an-email","phone":"555-0101","business_type":"cafe","address":"12 Main St"}`
	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/business/signup", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApproveBusiness(t *testing.T) {
	directory := &mockDirectoryService{}
	h := newTestTransport(&mockCatalogService{}, directory, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodPatch, "/api/business/b1/approve", strings.NewReader(`{"approved":true}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b1", directory.approvalID)
	assert.True(t, directory.approvalGranted)
}

func TestApproveBusiness_UnknownBusiness(t *testing.T) {
	directory := &mockDirectoryService{err: directorysvc.ErrBusinessNotFound}
	h := newTestTransport(&mockCatalogService{}, directory, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodPatch, "/api/business/nope/approve", strings.NewReader(`{"approved":true}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func validOrderBody() string {
	return `{
		"business_id": "biz-1",
		"items": [{"pastry_id":"p1","name":"Croissant","quantity":2,"unit_price":3.5}],
		"delivery_date": "2026-09-01",
		"delivery_time": "14:30",
		"delivery_address": "12 Main St",
		"subtotal": 7,
		"delivery_fee": 0,
		"total": 7
	}`
}

func TestCreateOrder(t *testing.T) {
	orders := &mockOrderService{}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody())))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "biz-1", orders.got.BusinessID)
	assert.Equal(t, currency.Cents(700), orders.got.TotalCents)

	var wire api.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wire))
	assert.Equal(t, "o-created", wire.ID)
}

func TestCreateOrder_UnknownBusiness(t *testing.T) {
	orders := &mockOrderService{err: ordersvc.ErrBusinessNotFound}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody())))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "business not found")
}

func TestCreateOrder_UnapprovedBusiness(t *testing.T) {
	orders := &mockOrderService{err: ordersvc.ErrBusinessNotApproved}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody())))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	body := `{"business_id":"biz-1","items":[],"delivery_date":"2026-09-01","delivery_time":"14:30","delivery_address":"12 Main St","subtotal":0,"delivery_fee":0,"total":0}`
	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, &mockOrderService{})

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	orders := &mockOrderService{stored: order.Order{
		ID:         "o1",
		BusinessID: "biz-1",
		TotalCents: 700,
	}}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/api/orders/o1", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var wire api.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wire))
	assert.Equal(t, "o1", wire.ID)
	assert.InDelta(t, 7.00, wire.Total, 1e-9)
}

func TestGetOrder_Unknown(t *testing.T) {
	orders := &mockOrderService{err: ordersvc.ErrOrderNotFound}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodGet, "/api/orders/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrder_ServiceFailure(t *testing.T) {
	orders := &mockOrderService{err: errors.New("boom")}
	h := newTestTransport(&mockCatalogService{}, &mockDirectoryService{}, orders)

	rec := h.serve(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validOrderBody())))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
