package catalog

import "github.com/shopspring/decimal"

// Fees is the price breakdown of a cake order.
type Fees struct {
	BasePrice   decimal.Decimal
	ExtraFee    decimal.Decimal
	TotalAmount decimal.Decimal
}

// ComputeFees prices a size and a list of extras from the static tables.
// Unknown codes price at zero. Callers that persist the result are expected
// to pass extras through SanitizeExtras first.
func ComputeFees(size string, extras []string) Fees {
	base := SizePrice(size)
	extraFee := decimal.Zero
	for _, e := range extras {
		extraFee = extraFee.Add(ExtraPrice(e))
	}
	return Fees{
		BasePrice:   base,
		ExtraFee:    extraFee,
		TotalAmount: base.Add(extraFee),
	}
}
