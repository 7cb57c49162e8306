package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/phoo-bakery/api/internal/enum"
)

// DefaultFilter is the status filter a fresh view starts with.
const DefaultFilter = enum.OrderStatusPending

// Banner kinds.
const (
	BannerSuccess = "success"
	BannerError   = "error"
	BannerInfo    = "info"
)

// Banner is the one-line message shown above the order list.
type Banner struct {
	Kind string
	Text string
}

// API is the part of the order API the view needs. Satisfied by *Client.
type API interface {
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status, updatedBy string) (Order, error)
}

// Snapshot is an immutable copy of the view state for rendering.
type Snapshot struct {
	Filter      string
	Stats       Stats
	Groups      []DateGroup
	Selected    *Order
	Banner      Banner
	LastUpdated time.Time
	Loaded      bool
}

// View holds the dashboard state. Safe for concurrent use by the poller and
// the input loop.
type View struct {
	api   API
	staff string
	now   func() time.Time

	mu          sync.Mutex
	filter      string
	orders      []Order
	selectedID  string
	banner      Banner
	lastUpdated time.Time
	loaded      bool

	// Fetch sequence numbers. A fetch numbered at or below applied is stale
	// and its result is dropped.
	started uint64
	applied uint64
}

// NewView creates a view filtered to DefaultFilter. staff is recorded as
// updatedBy on status changes and may be empty.
func NewView(api API, staff string) *View {
	return &View{
		api:    api,
		staff:  staff,
		now:    time.Now,
		filter: DefaultFilter,
	}
}

// Reload fetches the full order list. On failure the previous snapshot is
// kept and an error banner is set. A fetch overtaken by a newer fetch or by a
// status change is discarded.
func (v *View) Reload(ctx context.Context) error {
	v.mu.Lock()
	v.started++
	seq := v.started
	v.mu.Unlock()

	orders, err := v.api.ListOrders(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.applied {
		return nil
	}
	if err != nil {
		v.banner = Banner{Kind: BannerError, Text: fmt.Sprintf("Could not load orders: %v", err)}
		return err
	}
	v.applied = seq
	v.orders = orders
	v.lastUpdated = v.now()
	v.loaded = true
	if v.banner.Kind == BannerError {
		v.banner = Banner{}
	}
	return nil
}

// SetFilter changes the status filter. Accepts enum.FilterAll or any status code.
func (v *View) SetFilter(status string) error {
	if status != enum.FilterAll && !catalog.IsStatus(status) {
		return fmt.Errorf("unknown filter %q", status)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = status
	return nil
}

// Select marks an order for detail display. An empty id clears the selection.
func (v *View) Select(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if id == "" {
		v.selectedID = ""
		return nil
	}
	if _, ok := v.find(id); !ok {
		return fmt.Errorf("order %s not loaded", id)
	}
	v.selectedID = id
	return nil
}

// ChangeStatus updates an order on the server and then re-fetches the list.
// The local snapshot is never patched optimistically.
func (v *View) ChangeStatus(ctx context.Context, id, status string) error {
	if !catalog.IsStatus(status) {
		err := fmt.Errorf("unknown status %q", status)
		v.setBanner(BannerError, err.Error())
		return err
	}

	if _, err := v.api.UpdateStatus(ctx, id, status, v.staff); err != nil {
		msg := err.Error()
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		v.setBanner(BannerError, "Status update failed: "+msg)
		return err
	}
	v.mu.Lock()
	// fetches already in flight read the pre-change state
	v.applied = v.started
	v.banner = Banner{Kind: BannerSuccess, Text: fmt.Sprintf("Order %s is now %s", shortID(id), catalog.FormatEnumLabel(status))}
	v.mu.Unlock()
	return v.Reload(ctx)
}

// Resolve expands an id prefix, such as the short id shown by Render, to the
// full id of a loaded order. The prefix must match exactly one order.
func (v *View) Resolve(prefix string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("order id required")
	}
	match := ""
	for _, o := range v.orders {
		if o.ID == prefix {
			return o.ID, nil
		}
		if strings.HasPrefix(o.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("order id %q is ambiguous", prefix)
			}
			match = o.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("order %s not loaded", prefix)
	}
	return match, nil
}

// Info sets an informational banner.
func (v *View) Info(text string) {
	v.setBanner(BannerInfo, text)
}

// Snapshot returns the current state with stats over all orders and groups
// over the filtered ones.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Snapshot{
		Filter:      v.filter,
		Stats:       ComputeStats(v.orders),
		Groups:      Group(Filter(v.orders, v.filter)),
		Banner:      v.banner,
		LastUpdated: v.lastUpdated,
		Loaded:      v.loaded,
	}
	if o, ok := v.find(v.selectedID); ok {
		s.Selected = &o
	}
	return s
}

func (v *View) setBanner(kind, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banner = Banner{Kind: kind, Text: text}
}

// find must be called with v.mu held.
func (v *View) find(id string) (Order, bool) {
	if id == "" {
		return Order{}, false
	}
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
