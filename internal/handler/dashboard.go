package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/phoo-bakery/api/internal/dashboard"
	"github.com/phoo-bakery/api/internal/database"
	"github.com/phoo-bakery/api/internal/enum"
)

// DashboardHandler serves the staff summary computed by package dashboard.
type DashboardHandler struct {
	store OrderStore
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store OrderStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
// Expected to be mounted at /dashboard.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Summary)
}

type statsResponse struct {
	Total      int    `json:"total"`
	Pending    int    `json:"pending"`
	Confirmed  int    `json:"confirmed"`
	Done       int    `json:"done"`
	TotalSales string `json:"totalSales"`
}

type dateGroupResponse struct {
	Date   string          `json:"date"`
	Label  string          `json:"label"`
	Orders []orderResponse `json:"orders"`
}

type dashboardResponse struct {
	Filter string              `json:"filter"`
	Stats  statsResponse       `json:"stats"`
	Groups []dateGroupResponse `json:"groups"`
}

// Summary handles GET /dashboard?status=. Stats cover every order; groups
// cover the orders matching the filter (default PENDING, or ALL).
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("status")))
	if filter == "" {
		filter = dashboard.DefaultFilter
	}
	if filter != enum.FilterAll && !catalog.IsStatus(filter) {
		writeError(w, http.StatusBadRequest, "invalid status filter")
		return
	}

	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		log.Printf("ERROR: dashboard list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}

	byID := make(map[string]orderResponse, len(orders))
	views := make([]dashboard.Order, len(orders))
	for i, o := range orders {
		byID[o.ID.String()] = toOrderResponse(o)
		views[i] = toDashboardOrder(o)
	}

	stats := dashboard.ComputeStats(views)
	groups := dashboard.Group(dashboard.Filter(views, filter))

	resp := dashboardResponse{
		Filter: filter,
		Stats: statsResponse{
			Total:      stats.Total,
			Pending:    stats.Pending,
			Confirmed:  stats.Confirmed,
			Done:       stats.Done,
			TotalSales: stats.TotalSales.StringFixed(2),
		},
		Groups: make([]dateGroupResponse, len(groups)),
	}
	for i, g := range groups {
		list := make([]orderResponse, len(g.Orders))
		for j, o := range g.Orders {
			list[j] = byID[o.ID]
		}
		resp.Groups[i] = dateGroupResponse{Date: g.Date, Label: g.Label, Orders: list}
	}

	writeJSON(w, http.StatusOK, resp)
}

func toDashboardOrder(o database.Order) dashboard.Order {
	return dashboard.Order{
		ID:                o.ID.String(),
		Category:          string(o.Category),
		Size:              string(o.Size),
		CustomerPhone:     o.CustomerPhone,
		CustomerAddress:   o.CustomerAddress.String,
		DesiredDate:       o.DesiredDate,
		DesiredTime:       o.DesiredTime,
		Extras:            catalog.SanitizeExtras(o.Extras),
		BasePrice:         numericToDecimal(o.BasePrice),
		ExtraFee:          numericToDecimal(o.ExtraFee),
		TotalAmount:       numericToDecimal(o.TotalAmount),
		CakeSketchImage:   o.CakeSketchImage.String,
		PaymentScreenshot: o.PaymentScreenshot.String,
		Remarks:           o.Remarks.String,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
		UpdatedBy:         o.UpdatedBy.String,
	}
}
