package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/phoo-bakery/api/internal/dashboard"
)

const help = `Commands:
  f STATUS      filter by status (ALL, PENDING, CONFIRMED, PROCESSING, DONE, CANCELLED)
  s ID          show order details (short id is enough, empty clears)
  set ID STATUS change an order's status
  r             refresh now
  q             quit`

func main() {
	baseURL := flag.String("url", envOr("BAKERY_API_URL", "http://localhost:8081"), "Order API base URL")
	interval := flag.Duration("interval", dashboard.DefaultInterval, "Polling interval")
	filter := flag.String("filter", dashboard.DefaultFilter, "Initial status filter")
	token := flag.String("token", os.Getenv("BAKERY_STAFF_TOKEN"), "Staff token sent as a bearer token")
	staff := flag.String("staff", os.Getenv("BAKERY_STAFF_NAME"), "Name recorded as updatedBy on status changes")
	setStatus := flag.String("set-status", "", "Change one order's status (ID=STATUS) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := dashboard.NewView(dashboard.NewClient(*baseURL, *token), *staff)
	if err := view.SetFilter(strings.ToUpper(*filter)); err != nil {
		log.Fatal(err)
	}

	if *setStatus != "" {
		if err := runSetStatus(ctx, view, *setStatus); err != nil {
			log.Fatal(err)
		}
		return
	}

	out := &screen{w: os.Stdout}
	poller := dashboard.NewPoller(func(ctx context.Context) error {
		err := view.Reload(ctx)
		out.draw(view)
		return err
	}, *interval)

	go readCommands(ctx, os.Stdin, view, poller, out, stop)
	poller.Run(ctx)
}

// runSetStatus handles the one-shot -set-status mode.
func runSetStatus(ctx context.Context, view *dashboard.View, arg string) error {
	id, status, ok := strings.Cut(arg, "=")
	if !ok {
		return fmt.Errorf("-set-status wants ID=STATUS, got %q", arg)
	}
	if err := view.Reload(ctx); err != nil {
		return err
	}
	full, err := view.Resolve(id)
	if err != nil {
		return err
	}
	if err := view.ChangeStatus(ctx, full, strings.ToUpper(strings.TrimSpace(status))); err != nil {
		return err
	}
	fmt.Println(view.Snapshot().Banner.Text)
	return nil
}

func readCommands(ctx context.Context, in io.Reader, view *dashboard.View, poller *dashboard.Poller, out *screen, quit func()) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			out.draw(view)
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "q", "quit":
			quit()
			return
		case "r", "refresh":
			poller.Refresh()
			continue
		case "f", "filter":
			if len(fields) < 2 {
				view.Info("usage: f STATUS")
			} else if err := view.SetFilter(strings.ToUpper(fields[1])); err != nil {
				view.Info(err.Error())
			}
		case "s", "show":
			id := ""
			if len(fields) > 1 {
				full, err := view.Resolve(fields[1])
				if err != nil {
					view.Info(err.Error())
					break
				}
				id = full
			}
			_ = view.Select(id)
		case "set":
			if len(fields) < 3 {
				view.Info("usage: set ID STATUS")
				break
			}
			id, err := view.Resolve(fields[1])
			if err != nil {
				view.Info(err.Error())
				break
			}
			cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
			// errors land in the banner
			_ = view.ChangeStatus(cctx, id, strings.ToUpper(fields[2]))
			cancel()
		default:
			view.Info(help)
		}
		out.draw(view)
	}
}

// screen serializes redraws from the poller and the command loop.
type screen struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *screen) draw(view *dashboard.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\033[H\033[2J")
	if err := dashboard.Render(s.w, view.Snapshot()); err != nil {
		log.Printf("ERROR: render: %v", err)
	}
	fmt.Fprintln(s.w, "\n(type a command, or anything else for help)")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
