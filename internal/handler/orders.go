package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/phoo-bakery/api/internal/middleware"
	"github.com/phoo-bakery/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(ctx context.Context, req service.CreateOrderRequest) (database.Order, error)
	UpdateStatus(ctx context.Context, req service.UpdateStatusRequest) (database.Order, error)
}

// OrderStore defines the database methods needed by order read handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
}

// OrderListCache caches the serialized GET /orders body. Get also returns the
// list generation, which Set uses to skip bodies read before an invalidation.
// Satisfied by *cache.OrderListCache.
type OrderListCache interface {
	Get(ctx context.Context) ([]byte, int64, bool)
	Set(ctx context.Context, generation int64, body []byte)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	cache OrderListCache
}

// NewOrderHandler creates a new OrderHandler. cache may be nil.
func NewOrderHandler(svc OrderServicer, store OrderStore, cache OrderListCache) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, cache: cache}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/", h.UpdateStatus)
	r.Post("/quote", h.Quote)
	r.Get("/{id}", h.Get)
}

// --- Request / Response types ---

type createOrderRequest struct {
	Category          string   `json:"category"`
	Size              string   `json:"size"`
	CustomerPhone     string   `json:"customerPhone"`
	CustomerAddress   string   `json:"customerAddress"`
	DesiredDate       string   `json:"desiredDate"`
	DesiredTime       string   `json:"desiredTime"`
	Extras            []string `json:"extras"`
	CakeSketchImage   string   `json:"cakeSketchImage"`
	PaymentScreenshot string   `json:"paymentScreenshot"`
	Remarks           string   `json:"remarks"`
}

type updateStatusRequest struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	UpdatedBy string `json:"updatedBy"`
}

type quoteRequest struct {
	Size   string   `json:"size"`
	Extras []string `json:"extras"`
}

type orderResponse struct {
	ID                uuid.UUID `json:"id"`
	Category          string    `json:"category"`
	Size              string    `json:"size"`
	CustomerPhone     string    `json:"customerPhone"`
	CustomerAddress   *string   `json:"customerAddress"`
	DesiredDate       string    `json:"desiredDate"`
	DesiredTime       string    `json:"desiredTime"`
	Extras            []string  `json:"extras"`
	BasePrice         string    `json:"basePrice"`
	ExtraFee          string    `json:"extraFee"`
	TotalAmount       string    `json:"totalAmount"`
	CakeSketchImage   *string   `json:"cakeSketchImage"`
	PaymentScreenshot *string   `json:"paymentScreenshot"`
	Remarks           *string   `json:"remarks"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	UpdatedBy         *string   `json:"updatedBy"`
}

type createOrderResponse struct {
	Message string    `json:"message"`
	OrderID uuid.UUID `json:"orderId"`
}

type updateStatusResponse struct {
	Message string        `json:"message"`
	Order   orderResponse `json:"order"`
}

type quoteResponse struct {
	Size        string   `json:"size"`
	Extras      []string `json:"extras"`
	BasePrice   string   `json:"basePrice"`
	ExtraFee    string   `json:"extraFee"`
	TotalAmount string   `json:"totalAmount"`
}

// --- Handlers ---

// List handles GET /orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var generation int64
	if h.cache != nil {
		body, gen, ok := h.cache.Get(r.Context())
		if ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
		generation = gen
	}

	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		log.Printf("ERROR: marshal orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	body = append(body, '\n')
	if h.cache != nil {
		h.cache.Set(r.Context(), generation, body)
	}
	writeRawJSON(w, http.StatusOK, body)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.svc.CreateOrder(r.Context(), service.CreateOrderRequest{
		Category:          req.Category,
		Size:              req.Size,
		CustomerPhone:     req.CustomerPhone,
		CustomerAddress:   req.CustomerAddress,
		DesiredDate:       req.DesiredDate,
		DesiredTime:       req.DesiredTime,
		Extras:            req.Extras,
		CakeSketchImage:   req.CakeSketchImage,
		PaymentScreenshot: req.PaymentScreenshot,
		Remarks:           req.Remarks,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("ERROR: create order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{
		Message: "Order created",
		OrderID: order.ID,
	})
}

// UpdateStatus handles PUT /orders. When updatedBy is omitted the identified
// staff member, if any, is recorded instead.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = middleware.StaffName(r.Context())
	}

	order, err := h.svc.UpdateStatus(r.Context(), service.UpdateStatusRequest{
		ID:        req.ID,
		Status:    req.Status,
		UpdatedBy: updatedBy,
	})
	if err != nil {
		switch {
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		default:
			log.Printf("ERROR: update order status: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to update order status")
		}
		return
	}

	writeJSON(w, http.StatusOK, updateStatusResponse{
		Message: "Order status updated",
		Order:   toOrderResponse(order),
	})
}

// Quote handles POST /orders/quote, pricing a form before it is submitted.
func (h *OrderHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	extras := catalog.SanitizeExtras(req.Extras)
	fees := catalog.ComputeFees(req.Size, extras)
	writeJSON(w, http.StatusOK, quoteResponse{
		Size:        req.Size,
		Extras:      extras,
		BasePrice:   fees.BasePrice.StringFixed(2),
		ExtraFee:    fees.ExtraFee.StringFixed(2),
		TotalAmount: fees.TotalAmount.StringFixed(2),
	})
}

// --- Helpers ---

func toOrderResponse(o database.Order) orderResponse {
	return orderResponse{
		ID:                o.ID,
		Category:          string(o.Category),
		Size:              string(o.Size),
		CustomerPhone:     o.CustomerPhone,
		CustomerAddress:   textPtr(o.CustomerAddress),
		DesiredDate:       o.DesiredDate,
		DesiredTime:       o.DesiredTime,
		Extras:            catalog.SanitizeExtras(o.Extras),
		BasePrice:         numericToString(o.BasePrice),
		ExtraFee:          numericToString(o.ExtraFee),
		TotalAmount:       numericToString(o.TotalAmount),
		CakeSketchImage:   textPtr(o.CakeSketchImage),
		PaymentScreenshot: textPtr(o.PaymentScreenshot),
		Remarks:           textPtr(o.Remarks),
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt.UTC(),
		UpdatedAt:         o.UpdatedAt.UTC(),
		UpdatedBy:         textPtr(o.UpdatedBy),
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrPhoneRequired) ||
		errors.Is(err, service.ErrDateRequired) ||
		errors.Is(err, service.ErrTimeRequired) ||
		errors.Is(err, service.ErrInvalidDate) ||
		errors.Is(err, service.ErrInvalidTime) ||
		errors.Is(err, service.ErrPhoneTooLong) ||
		errors.Is(err, service.ErrInvalidCategory) ||
		errors.Is(err, service.ErrInvalidSize) ||
		errors.Is(err, service.ErrInvalidImage) ||
		errors.Is(err, service.ErrOrderIDRequired) ||
		errors.Is(err, service.ErrInvalidOrderID) ||
		errors.Is(err, service.ErrInvalidStatus)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("ERROR: write response: %v", err)
	}
}
