package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","status":"DONE","totalAmount":"38000.00","customerAddress":null,"extras":["dolls"]}]`))
	}))
	defer srv.Close()

	orders, err := NewClient(srv.URL+"/", "").ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "a", orders[0].ID)
	assert.Equal(t, "38000", orders[0].TotalAmount.String())
	assert.Equal(t, "", orders[0].CustomerAddress)
	assert.Equal(t, []string{"dolls"}, orders[0].Extras)
}

func TestClient_UpdateStatusSendsBodyAndToken(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"updated","order":{"id":"a","status":"DONE"}}`))
	}))
	defer srv.Close()

	o, err := NewClient(srv.URL, "tok").UpdateStatus(context.Background(), "a", "DONE", "Ma Hla")
	require.NoError(t, err)
	assert.Equal(t, "DONE", o.Status)
	assert.Equal(t, map[string]string{"id": "a", "status": "DONE", "updatedBy": "Ma Hla"}, got)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid status: \"NOPE\""}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").UpdateStatus(context.Background(), "a", "NOPE", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "invalid status")
}

func TestClient_Catalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"statuses":[{"code":"PENDING","label":"Pending"}],"basePrices":{"SIX_INCH":"15000.00"}}`))
	}))
	defer srv.Close()

	cat, err := NewClient(srv.URL, "").Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Statuses, 1)
	assert.Equal(t, "Pending", cat.Statuses[0].Label)
	assert.Equal(t, "15000", cat.BasePrices["SIX_INCH"].String())
}

// --- View ---

type fakeAPI struct {
	mu        sync.Mutex
	orders    []Order
	listErr   error
	updateErr error
	lists     int
	updates   []string
}

func (f *fakeAPI) ListOrders(_ context.Context) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Order(nil), f.orders...), nil
}

func (f *fakeAPI) UpdateStatus(_ context.Context, id, status, updatedBy string) (Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return Order{}, f.updateErr
	}
	f.updates = append(f.updates, id+"="+status+"/"+updatedBy)
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return f.orders[i], nil
		}
	}
	return Order{}, &APIError{StatusCode: 404, Message: "order not found"}
}

func TestView_DefaultsToPending(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0), order("b", "DONE", 500)}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, "PENDING", s.Filter)
	assert.Equal(t, 2, s.Stats.Total)
	require.Len(t, s.Groups, 1)
	require.Len(t, s.Groups[0].Orders, 1)
	assert.Equal(t, "a", s.Groups[0].Orders[0].ID)
}

func TestView_SetFilter(t *testing.T) {
	v := NewView(&fakeAPI{}, "")
	assert.NoError(t, v.SetFilter("ALL"))
	assert.NoError(t, v.SetFilter("CANCELLED"))
	assert.Error(t, v.SetFilter("ARCHIVED"))
	assert.Equal(t, "CANCELLED", v.Snapshot().Filter)
}

func TestView_ChangeStatusRefetches(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0)}}
	v := NewView(api, "Ma Hla")
	require.NoError(t, v.Reload(context.Background()))

	require.NoError(t, v.ChangeStatus(context.Background(), "a", "CONFIRMED"))

	assert.Equal(t, []string{"a=CONFIRMED/Ma Hla"}, api.updates)
	assert.Equal(t, 2, api.lists)
	s := v.Snapshot()
	assert.Equal(t, 0, s.Stats.Pending)
	assert.Equal(t, 1, s.Stats.Confirmed)
	assert.Equal(t, BannerSuccess, s.Banner.Kind)
}

func TestView_ChangeStatusFailureKeepsSnapshot(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0)}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	api.updateErr = &APIError{StatusCode: 500, Message: "failed to update order"}
	err := v.ChangeStatus(context.Background(), "a", "DONE")
	require.Error(t, err)

	s := v.Snapshot()
	assert.Equal(t, BannerError, s.Banner.Kind)
	assert.Contains(t, s.Banner.Text, "failed to update order")
	assert.Equal(t, 1, s.Stats.Pending)
	assert.Equal(t, 1, api.lists, "no refetch after a failed update")
}

func TestView_ChangeStatusRejectsUnknownStatus(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0)}}
	v := NewView(api, "")
	assert.Error(t, v.ChangeStatus(context.Background(), "a", "NOT_A_STATUS"))
	assert.Empty(t, api.updates)
}

func TestView_FetchErrorKeepsLastSnapshot(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0)}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	api.listErr = errors.New("connection refused")
	require.Error(t, v.Reload(context.Background()))

	s := v.Snapshot()
	assert.Equal(t, 1, s.Stats.Total)
	assert.Equal(t, BannerError, s.Banner.Kind)

	// retry clears the error banner
	api.listErr = nil
	require.NoError(t, v.Reload(context.Background()))
	assert.Empty(t, v.Snapshot().Banner.Text)
}

// gatedAPI holds the next gated ListOrders call after it has read the
// orders, so a fetch can finish after a status change.
type gatedAPI struct {
	*fakeAPI
	gated   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (g *gatedAPI) ListOrders(ctx context.Context) ([]Order, error) {
	orders, err := g.fakeAPI.ListOrders(ctx)
	if g.gated.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return orders, err
}

func TestView_PollStartedBeforeStatusChangeIsDiscarded(t *testing.T) {
	api := &gatedAPI{
		fakeAPI: &fakeAPI{orders: []Order{order("a", "PENDING", 0)}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	api.gated.Store(true)
	polled := make(chan error, 1)
	go func() { polled <- v.Reload(context.Background()) }()
	<-api.entered

	require.NoError(t, v.ChangeStatus(context.Background(), "a", "CONFIRMED"))
	assert.Equal(t, 1, v.Snapshot().Stats.Confirmed)

	close(api.release)
	require.NoError(t, <-polled)

	s := v.Snapshot()
	assert.Equal(t, 1, s.Stats.Confirmed, "stale poll must not roll back the change")
	assert.Equal(t, 0, s.Stats.Pending)
	assert.Equal(t, BannerSuccess, s.Banner.Kind)
}

func TestView_OlderFetchIsDiscarded(t *testing.T) {
	api := &gatedAPI{
		fakeAPI: &fakeAPI{orders: []Order{order("a", "PENDING", 0)}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	v := NewView(api, "")

	api.gated.Store(true)
	polled := make(chan error, 1)
	go func() { polled <- v.Reload(context.Background()) }()
	<-api.entered

	api.fakeAPI.mu.Lock()
	api.fakeAPI.orders = append(api.fakeAPI.orders, order("b", "PENDING", 0))
	api.fakeAPI.mu.Unlock()
	require.NoError(t, v.Reload(context.Background()))
	require.Equal(t, 2, v.Snapshot().Stats.Total)

	close(api.release)
	require.NoError(t, <-polled)
	assert.Equal(t, 2, v.Snapshot().Stats.Total, "older fetch must not replace a newer one")
}

func TestView_Select(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("a", "PENDING", 0)}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	assert.Error(t, v.Select("zzz"))
	require.NoError(t, v.Select("a"))
	require.NotNil(t, v.Snapshot().Selected)
	assert.Equal(t, "a", v.Snapshot().Selected.ID)

	require.NoError(t, v.Select(""))
	assert.Nil(t, v.Snapshot().Selected)
}

func TestRender(t *testing.T) {
	api := &fakeAPI{orders: []Order{
		{ID: "0123456789", Category: "RED_VELVET", Size: "EIGHT_INCH", Status: "PENDING", DesiredDate: "2026-10-20", DesiredTime: "9:00", Extras: []string{"money_pulling"}},
	}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))
	require.NoError(t, v.Select("0123456789"))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, v.Snapshot()))
	out := buf.String()

	assert.Contains(t, out, "Filter: Pending")
	assert.Contains(t, out, "Tue, 20 Oct 2026 (1)")
	assert.Contains(t, out, "Red Velvet")
	assert.Contains(t, out, "Money Pulling")
	assert.Contains(t, out, "Order 0123456789")
}

func TestRender_NotLoaded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, NewView(&fakeAPI{}, "").Snapshot()))
	assert.True(t, strings.Contains(buf.String(), "Loading orders..."))
}

// --- Poller ---

func TestPoller_FetchesImmediatelyAndOnRefresh(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(context.Context) error {
		calls.Add(1)
		return nil
	}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		p.Refresh()
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestPoller_SkipsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	p := NewPoller(func(context.Context) error {
		calls.Add(1)
		<-release
		return nil
	}, time.Hour)

	ctx := context.Background()
	assert.True(t, p.trigger(ctx))
	assert.False(t, p.trigger(ctx), "second fetch must be skipped while the first is running")

	close(release)
	p.wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, p.trigger(ctx))
	p.wg.Wait()
}

func TestPoller_TicksOnInterval(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(func(context.Context) error {
		calls.Add(1)
		return nil
	}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(func(context.Context) error { return nil }, 0)
	assert.Equal(t, DefaultInterval, p.interval)
}

func TestView_Resolve(t *testing.T) {
	api := &fakeAPI{orders: []Order{order("abc123", "PENDING", 0), order("abd456", "PENDING", 0)}}
	v := NewView(api, "")
	require.NoError(t, v.Reload(context.Background()))

	id, err := v.Resolve("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = v.Resolve("ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = v.Resolve("zzz")
	assert.Error(t, err)

	_, err = v.Resolve(" ")
	assert.Error(t, err)
}
