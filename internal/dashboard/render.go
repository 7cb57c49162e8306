package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/phoo-bakery/api/internal/enum"
)

// Render writes a plain-text dashboard for s.
func Render(w io.Writer, s Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Total\tPending\tConfirmed\tDone\tSales (DONE)\n")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", s.Stats.Total, s.Stats.Pending, s.Stats.Confirmed, s.Stats.Done, s.Stats.TotalSales.StringFixed(0))
	fmt.Fprintln(tw)

	filter := "All"
	if s.Filter != enum.FilterAll {
		filter = catalog.FormatEnumLabel(s.Filter)
	}
	fmt.Fprintf(tw, "Filter: %s", filter)
	if !s.LastUpdated.IsZero() {
		fmt.Fprintf(tw, "    updated %s", s.LastUpdated.Format("15:04:05"))
	}
	fmt.Fprintln(tw)

	if s.Banner.Text != "" {
		fmt.Fprintf(tw, "[%s] %s\n", strings.ToUpper(s.Banner.Kind), s.Banner.Text)
	}
	fmt.Fprintln(tw)

	switch {
	case !s.Loaded:
		fmt.Fprintln(tw, "Loading orders...")
	case len(s.Groups) == 0:
		fmt.Fprintln(tw, "No orders match this filter.")
	}

	for _, g := range s.Groups {
		fmt.Fprintf(tw, "== %s (%d)\n", g.Label, len(g.Orders))
		fmt.Fprintf(tw, "ID\tTime\tCake\tSize\tExtras\tPhone\tTotal\tStatus\n")
		for _, o := range g.Orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(o.ID),
				o.DesiredTime,
				catalog.FormatEnumLabel(o.Category),
				catalog.FormatEnumLabel(o.Size),
				extrasLabel(o.Extras),
				o.CustomerPhone,
				o.TotalAmount.StringFixed(0),
				catalog.FormatEnumLabel(o.Status),
			)
		}
		fmt.Fprintln(tw)
	}

	if o := s.Selected; o != nil {
		renderDetail(tw, *o)
	}
	return tw.Flush()
}

func renderDetail(w io.Writer, o Order) {
	fmt.Fprintf(w, "Order %s\n", o.ID)
	rows := [][2]string{
		{"Status", catalog.FormatEnumLabel(o.Status)},
		{"Cake", catalog.FormatEnumLabel(o.Category) + ", " + catalog.FormatEnumLabel(o.Size)},
		{"Extras", extrasLabel(o.Extras)},
		{"When", strings.TrimSpace(o.DesiredDate + " @ " + o.DesiredTime)},
		{"Phone", o.CustomerPhone},
		{"Address", o.CustomerAddress},
		{"Base", o.BasePrice.StringFixed(0)},
		{"Extras fee", o.ExtraFee.StringFixed(0)},
		{"Total", o.TotalAmount.StringFixed(0)},
		{"Sketch", o.CakeSketchImage},
		{"Payment", o.PaymentScreenshot},
		{"Remarks", o.Remarks},
		{"Updated by", o.UpdatedBy},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\n", r[0], r[1])
	}
}

func extrasLabel(extras []string) string {
	if len(extras) == 0 {
		return "-"
	}
	labels := make([]string, len(extras))
	for i, e := range extras {
		labels[i] = catalog.FormatEnumLabel(e)
	}
	return strings.Join(labels, ", ")
}
