package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/phoo-bakery/api/internal/enum"
	"github.com/phoo-bakery/api/internal/events"
	"github.com/phoo-bakery/api/internal/imagestore"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Errors returned by the order service.
var (
	ErrPhoneRequired   = errors.New("customerPhone is required")
	ErrDateRequired    = errors.New("desiredDate is required")
	ErrTimeRequired    = errors.New("desiredTime is required")
	ErrInvalidDate     = errors.New("desiredDate must be YYYY-MM-DD")
	ErrInvalidTime     = errors.New("desiredTime must be a clock time such as 14:30")
	ErrPhoneTooLong    = fmt.Errorf("customerPhone must be at most %d characters", maxPhoneLength)
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSize     = errors.New("invalid size")
	ErrInvalidImage    = errors.New("image must be a data URI")
	ErrOrderIDRequired = errors.New("id is required")
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrOrderNotFound   = errors.New("order not found")
)

// Stored formats and column limits, see migrations/000001_init.up.sql.
const (
	maxPhoneLength = 50
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
)

// Accepted desiredTime spellings; stored as timeLayout.
var timeLayouts = []string{"15:04", "3:04PM", "3:04 PM", "15:04:05"}

// OrderStore defines the DB methods needed to create and update orders.
// Satisfied by *database.Queries.
type OrderStore interface {
	CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// ImageUploader stores a base64 data URI and returns its public URL.
// Satisfied by *imagestore.Store.
type ImageUploader interface {
	Upload(ctx context.Context, dataURI, folder string) (string, error)
}

// CreateOrderRequest is the raw input for creating an order.
type CreateOrderRequest struct {
	Category          string
	Size              string
	CustomerPhone     string
	CustomerAddress   string
	DesiredDate       string
	DesiredTime       string
	Extras            []string
	CakeSketchImage   string // data URI
	PaymentScreenshot string // data URI
	Remarks           string
}

// UpdateStatusRequest is the raw input for a status change.
type UpdateStatusRequest struct {
	ID        string
	Status    string
	UpdatedBy string
}

// OrderService handles order business logic.
type OrderService struct {
	store    OrderStore
	images   ImageUploader
	notifier events.Notifier
}

// NewOrderService creates a new OrderService. notifier may be nil.
func NewOrderService(store OrderStore, images ImageUploader, notifier events.Notifier) *OrderService {
	return &OrderService{store: store, images: images, notifier: notifier}
}

// orderEvent is the payload of every order event.
type orderEvent struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	DesiredDate string    `json:"desiredDate"`
	DesiredTime string    `json:"desiredTime"`
	TotalAmount string    `json:"totalAmount"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
}

// CreateOrder validates the request, prices it, uploads both images in
// parallel and persists a PENDING order. Any upload failure aborts the order.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (database.Order, error) {
	req, err := normalizeCreateRequest(trimCreateRequest(req))
	if err != nil {
		return database.Order{}, err
	}

	extras := catalog.SanitizeExtras(req.Extras)
	fees := catalog.ComputeFees(req.Size, extras)

	sketchURL, paymentURL, err := s.uploadImages(ctx, req.CakeSketchImage, req.PaymentScreenshot)
	if err != nil {
		return database.Order{}, err
	}

	order, err := s.store.CreateOrder(ctx, database.CreateOrderParams{
		Category:          database.CakeCategory(req.Category),
		Size:              database.CakeSize(req.Size),
		CustomerPhone:     req.CustomerPhone,
		CustomerAddress:   optionalText(req.CustomerAddress),
		DesiredDate:       req.DesiredDate,
		DesiredTime:       req.DesiredTime,
		Extras:            extras,
		BasePrice:         decimalToNumeric(fees.BasePrice),
		ExtraFee:          decimalToNumeric(fees.ExtraFee),
		TotalAmount:       decimalToNumeric(fees.TotalAmount),
		CakeSketchImage:   optionalText(sketchURL),
		PaymentScreenshot: optionalText(paymentURL),
		Remarks:           optionalText(req.Remarks),
		Status:            database.OrderStatusPENDING,
	})
	if err != nil {
		return database.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.notify(ctx, enum.EventOrderCreated, order)
	return order, nil
}

// UpdateStatus sets status and updatedBy on an existing order.
// Any status may move to any other status.
func (s *OrderService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (database.Order, error) {
	idStr := strings.TrimSpace(req.ID)
	if idStr == "" {
		return database.Order{}, ErrOrderIDRequired
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return database.Order{}, ErrInvalidOrderID
	}
	if !catalog.IsStatus(req.Status) {
		return database.Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	order, err := s.store.UpdateOrderStatus(ctx, database.UpdateOrderStatusParams{
		ID:        id,
		Status:    database.OrderStatus(req.Status),
		UpdatedBy: optionalText(strings.TrimSpace(req.UpdatedBy)),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Order{}, ErrOrderNotFound
		}
		return database.Order{}, fmt.Errorf("update order status: %w", err)
	}

	s.notify(ctx, enum.EventOrderStatusChanged, order)
	return order, nil
}

// uploadImages uploads whichever images are present concurrently and waits for both.
func (s *OrderService) uploadImages(ctx context.Context, sketch, payment string) (string, string, error) {
	var sketchURL, paymentURL string

	g, gctx := errgroup.WithContext(ctx)
	if sketch != "" {
		g.Go(func() error {
			url, err := s.images.Upload(gctx, sketch, imagestore.FolderCakeSketches)
			if err != nil {
				return fmt.Errorf("upload cake sketch: %w", err)
			}
			sketchURL = url
			return nil
		})
	}
	if payment != "" {
		g.Go(func() error {
			url, err := s.images.Upload(gctx, payment, imagestore.FolderPaymentScreenshots)
			if err != nil {
				return fmt.Errorf("upload payment screenshot: %w", err)
			}
			paymentURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", "", err
	}
	return sketchURL, paymentURL, nil
}

func (s *OrderService) notify(ctx context.Context, eventType string, order database.Order) {
	if s.notifier == nil {
		return
	}
	evt, err := events.New(eventType, orderEvent{
		ID:          order.ID,
		Status:      string(order.Status),
		DesiredDate: order.DesiredDate,
		DesiredTime: order.DesiredTime,
		TotalAmount: numericToDecimal(order.TotalAmount).StringFixed(2),
		UpdatedBy:   order.UpdatedBy.String,
	})
	if err != nil {
		log.Printf("ERROR: build %s event: %v", eventType, err)
		return
	}
	s.notifier.Notify(ctx, evt)
}

// --- Helpers ---

func trimCreateRequest(req CreateOrderRequest) CreateOrderRequest {
	req.Category = strings.TrimSpace(req.Category)
	req.Size = strings.TrimSpace(req.Size)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.CustomerAddress = strings.TrimSpace(req.CustomerAddress)
	req.DesiredDate = strings.TrimSpace(req.DesiredDate)
	req.DesiredTime = strings.TrimSpace(req.DesiredTime)
	req.CakeSketchImage = strings.TrimSpace(req.CakeSketchImage)
	req.PaymentScreenshot = strings.TrimSpace(req.PaymentScreenshot)
	req.Remarks = strings.TrimSpace(req.Remarks)
	return req
}

// normalizeCreateRequest validates req and rewrites desiredTime to
// zero-padded 24h HH:MM so stored times sort chronologically.
func normalizeCreateRequest(req CreateOrderRequest) (CreateOrderRequest, error) {
	if !catalog.IsCategory(req.Category) {
		return req, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	if !catalog.IsSize(req.Size) {
		return req, fmt.Errorf("%w: %q", ErrInvalidSize, req.Size)
	}
	if req.CustomerPhone == "" {
		return req, ErrPhoneRequired
	}
	if utf8.RuneCountInString(req.CustomerPhone) > maxPhoneLength {
		return req, ErrPhoneTooLong
	}
	if req.DesiredDate == "" {
		return req, ErrDateRequired
	}
	if _, err := time.Parse(dateLayout, req.DesiredDate); err != nil {
		return req, fmt.Errorf("%w: %q", ErrInvalidDate, req.DesiredDate)
	}
	if req.DesiredTime == "" {
		return req, ErrTimeRequired
	}
	clock, ok := parseClock(req.DesiredTime)
	if !ok {
		return req, fmt.Errorf("%w: %q", ErrInvalidTime, req.DesiredTime)
	}
	req.DesiredTime = clock.Format(timeLayout)
	if req.CakeSketchImage != "" && !imagestore.IsDataURI(req.CakeSketchImage) {
		return req, fmt.Errorf("cakeSketchImage: %w", ErrInvalidImage)
	}
	if req.PaymentScreenshot != "" && !imagestore.IsDataURI(req.PaymentScreenshot) {
		return req, fmt.Errorf("paymentScreenshot: %w", ErrInvalidImage)
	}
	return req, nil
}

func parseClock(s string) (time.Time, bool) {
	s = strings.ToUpper(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func optionalText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
