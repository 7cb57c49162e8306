// Package dashboard holds the staff-side view of the order list: statistics,
// status filtering and date grouping, plus the client, poller and view that
// drive cmd/dashboard. GET /dashboard reuses the same computations.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/phoo-bakery/api/internal/enum"
	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	labelLayout = "Mon, 2 Jan 2006"

	UnscheduledLabel = "Unscheduled"
)

// Order is an order as the dashboard receives it from GET /orders.
type Order struct {
	ID                string          `json:"id"`
	Category          string          `json:"category"`
	Size              string          `json:"size"`
	CustomerPhone     string          `json:"customerPhone"`
	CustomerAddress   string          `json:"customerAddress"`
	DesiredDate       string          `json:"desiredDate"`
	DesiredTime       string          `json:"desiredTime"`
	Extras            []string        `json:"extras"`
	BasePrice         decimal.Decimal `json:"basePrice"`
	ExtraFee          decimal.Decimal `json:"extraFee"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	CakeSketchImage   string          `json:"cakeSketchImage"`
	PaymentScreenshot string          `json:"paymentScreenshot"`
	Remarks           string          `json:"remarks"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	UpdatedBy         string          `json:"updatedBy"`
}

// Stats summarizes the full, unfiltered order list.
type Stats struct {
	Total      int
	Pending    int
	Confirmed  int
	Done       int
	TotalSales decimal.Decimal // sum of TotalAmount over DONE orders
}

func ComputeStats(orders []Order) Stats {
	s := Stats{Total: len(orders), TotalSales: decimal.Zero}
	for _, o := range orders {
		switch o.Status {
		case enum.OrderStatusPending:
			s.Pending++
		case enum.OrderStatusConfirmed:
			s.Confirmed++
		case enum.OrderStatusDone:
			s.Done++
			s.TotalSales = s.TotalSales.Add(o.TotalAmount)
		}
	}
	return s
}

// Filter returns the orders with the given status, or all of them for
// enum.FilterAll. The input slice is never modified.
func Filter(orders []Order, status string) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if status == enum.FilterAll || o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// DateGroup is one day's worth of orders.
type DateGroup struct {
	Date   string // desiredDate, or enum.DateUnscheduled
	Label  string
	Orders []Order
}

// Group partitions orders by desiredDate. Groups are ordered by date with the
// unscheduled bucket last; orders within a group by desiredTime then createdAt.
func Group(orders []Order) []DateGroup {
	byDate := make(map[string][]Order)
	for _, o := range orders {
		key := strings.TrimSpace(o.DesiredDate)
		if key == "" {
			key = enum.DateUnscheduled
		}
		byDate[key] = append(byDate[key], o)
	}

	groups := make([]DateGroup, 0, len(byDate))
	for date, list := range byDate {
		sort.SliceStable(list, func(i, j int) bool { return lessOrder(list[i], list[j]) })
		groups = append(groups, DateGroup{Date: date, Label: dateLabel(date), Orders: list})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Date, groups[j].Date
		if a == enum.DateUnscheduled || b == enum.DateUnscheduled {
			return b == enum.DateUnscheduled && a != enum.DateUnscheduled
		}
		return lessDate(a, b)
	})
	return groups
}

func lessOrder(a, b Order) bool {
	if a.DesiredTime != b.DesiredTime {
		return lessTime(a.DesiredTime, b.DesiredTime)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

var timeLayouts = []string{"15:04", "3:04PM", "3:04 PM", "15:04:05"}

func parseClock(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// lessTime orders clock times chronologically ("9:00" before "10:00").
// Unparsable values sort after parsable ones, then by string.
func lessTime(a, b string) bool {
	ta, okA := parseClock(a)
	tb, okB := parseClock(b)
	switch {
	case okA && okB:
		if !ta.Equal(tb) {
			return ta.Before(tb)
		}
		return a < b
	case okA != okB:
		return okA
	default:
		return a < b
	}
}

func lessDate(a, b string) bool {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	if errA == nil && errB == nil && !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a < b
}

func dateLabel(date string) string {
	if date == enum.DateUnscheduled {
		return UnscheduledLabel
	}
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(labelLayout)
}
