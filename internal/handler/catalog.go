package handler

import (
	"net/http"

	"github.com/phoo-bakery/api/internal/catalog"
	"github.com/shopspring/decimal"
)

type catalogResponse struct {
	Categories []catalog.Option  `json:"categories"`
	Sizes      []catalog.Option  `json:"sizes"`
	Extras     []catalog.Option  `json:"extras"`
	Statuses   []catalog.Option  `json:"statuses"`
	BasePrices map[string]string `json:"basePrices"`
	ExtraFees  map[string]string `json:"extraFees"`
}

// Catalog handles GET /catalog: every enumeration with labels plus both
// price tables, for rendering the order form.
func Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Categories: catalog.CategoryOptions(),
		Sizes:      catalog.SizeOptions(),
		Extras:     catalog.ExtraOptions(),
		Statuses:   catalog.StatusOptions(),
		BasePrices: priceStrings(catalog.BasePriceTable()),
		ExtraFees:  priceStrings(catalog.ExtraPriceTable()),
	})
}

func priceStrings(t map[string]decimal.Decimal) map[string]string {
	out := make(map[string]string, len(t))
	for code, price := range t {
		out[code] = price.StringFixed(2)
	}
	return out
}
