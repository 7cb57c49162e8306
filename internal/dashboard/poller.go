package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often the dashboard re-fetches orders.
const DefaultInterval = 10 * time.Second

// Poller fetches on a fixed interval and on demand. A tick that arrives
// while a fetch is still running is skipped.
type Poller struct {
	fetch    func(ctx context.Context) error
	interval time.Duration
	refresh  chan struct{}
	inFlight atomic.Bool
	wg       sync.WaitGroup
}

// NewPoller creates a poller. fetch is expected to record its own result.
func NewPoller(fetch func(ctx context.Context) error, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:    fetch,
		interval: interval,
		refresh:  make(chan struct{}, 1),
	}
}

// Run fetches immediately, then on every tick and every Refresh, until ctx
// is done. It waits for an in-flight fetch before returning.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer p.wg.Wait()

	p.trigger(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.trigger(ctx)
		case <-p.refresh:
			p.trigger(ctx)
		}
	}
}

// Refresh requests an immediate fetch. Never blocks.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// trigger starts a fetch unless one is already running. Reports whether it started.
func (p *Poller) trigger(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		return false
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.inFlight.Store(false)
		_ = p.fetch(ctx)
	}()
	return true
}
