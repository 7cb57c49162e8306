// Package catalog holds the static cake catalog: the valid category, size,
// extra and status codes, their display labels, and the price tables.
package catalog

import (
	"strings"

	"github.com/phoo-bakery/api/internal/enum"
	"github.com/shopspring/decimal"
)

// Option is a code paired with its display label.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var categoryOptions = []Option{
	{Code: enum.CategoryVanilla, Label: "Vanilla"},
	{Code: enum.CategoryChocolate, Label: "Chocolate"},
	{Code: enum.CategoryRedVelvet, Label: "Red Velvet"},
	{Code: enum.CategoryCoconut, Label: "Coconut"},
	{Code: enum.CategoryThaiTea, Label: "Thai Tea"},
	{Code: enum.CategoryCheeseLava, Label: "Cheese Lava"},
	{Code: enum.CategoryRainbowCrepe, Label: "Rainbow Crepe"},
}

var sizeOptions = []Option{
	{Code: enum.SizeSixInch, Label: "6 inch (small)"},
	{Code: enum.SizeSevenInch, Label: "7 inch"},
	{Code: enum.SizeEightInch, Label: "8 inch (medium)"},
	{Code: enum.SizeNineInch, Label: "9 inch"},
	{Code: enum.SizeTenInch, Label: "10 inch (large)"},
	{Code: enum.SizeTwelveInch, Label: "12 inch"},
	{Code: enum.SizeFourteenInch, Label: "14 inch"},
}

var extraOptions = []Option{
	{Code: enum.ExtraDolls, Label: "Dolls"},
	{Code: enum.ExtraToppings, Label: "Toppings"},
	{Code: enum.ExtraFruits, Label: "Fruits"},
	{Code: enum.ExtraMoneyPulling, Label: "Money Pulling"},
}

var statusCodes = []string{
	enum.OrderStatusPending,
	enum.OrderStatusConfirmed,
	enum.OrderStatusProcessing,
	enum.OrderStatusDone,
	enum.OrderStatusCancelled,
}

// Prices are in kyat.
var basePriceTable = map[string]decimal.Decimal{
	enum.SizeSixInch:      decimal.NewFromInt(15000),
	enum.SizeSevenInch:    decimal.NewFromInt(20000),
	enum.SizeEightInch:    decimal.NewFromInt(25000),
	enum.SizeNineInch:     decimal.NewFromInt(32000),
	enum.SizeTenInch:      decimal.NewFromInt(40000),
	enum.SizeTwelveInch:   decimal.NewFromInt(60000),
	enum.SizeFourteenInch: decimal.NewFromInt(80000),
}

var extraPriceTable = map[string]decimal.Decimal{
	enum.ExtraDolls:        decimal.NewFromInt(5000),
	enum.ExtraToppings:     decimal.NewFromInt(3000),
	enum.ExtraFruits:       decimal.NewFromInt(8000),
	enum.ExtraMoneyPulling: decimal.NewFromInt(15000),
}

// CategoryOptions returns the cake categories in display order.
func CategoryOptions() []Option { return clone(categoryOptions) }

// SizeOptions returns the cake sizes in display order.
func SizeOptions() []Option { return clone(sizeOptions) }

// ExtraOptions returns the paid extras in display order.
func ExtraOptions() []Option { return clone(extraOptions) }

// StatusOptions returns the order statuses with labels derived from their codes.
func StatusOptions() []Option {
	out := make([]Option, len(statusCodes))
	for i, code := range statusCodes {
		out[i] = Option{Code: code, Label: FormatEnumLabel(code)}
	}
	return out
}

func Categories() []string { return codes(categoryOptions) }
func Sizes() []string      { return codes(sizeOptions) }
func Extras() []string     { return codes(extraOptions) }
func Statuses() []string   { return append([]string(nil), statusCodes...) }

func IsCategory(s string) bool { return hasCode(categoryOptions, s) }
func IsSize(s string) bool     { return hasCode(sizeOptions, s) }
func IsExtra(s string) bool    { return hasCode(extraOptions, s) }

func IsStatus(s string) bool {
	for _, c := range statusCodes {
		if c == s {
			return true
		}
	}
	return false
}

// SizePrice returns the base price for a size code, or zero for an unknown code.
func SizePrice(size string) decimal.Decimal {
	if p, ok := basePriceTable[size]; ok {
		return p
	}
	return decimal.Zero
}

// ExtraPrice returns the fee for an extra code, or zero for an unknown code.
func ExtraPrice(extra string) decimal.Decimal {
	if p, ok := extraPriceTable[extra]; ok {
		return p
	}
	return decimal.Zero
}

// BasePriceTable returns a copy of the size → base price table.
func BasePriceTable() map[string]decimal.Decimal { return cloneTable(basePriceTable) }

// ExtraPriceTable returns a copy of the extra → fee table.
func ExtraPriceTable() map[string]decimal.Decimal { return cloneTable(extraPriceTable) }

// SanitizeExtras drops unknown codes and repeats, keeping first-seen order.
// A repeated extra would otherwise be charged twice.
func SanitizeExtras(extras []string) []string {
	out := make([]string, 0, len(extras))
	seen := make(map[string]struct{}, len(extras))
	for _, e := range extras {
		if !IsExtra(e) {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// FormatEnumLabel turns an upper-snake-case code into a title-cased phrase:
// "RED_VELVET" becomes "Red Velvet".
func FormatEnumLabel(code string) string {
	segments := strings.Split(strings.ToLower(code), "_")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = strings.ToUpper(seg[:1]) + seg[1:]
	}
	return strings.Join(segments, " ")
}

func codes(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Code
	}
	return out
}

func hasCode(opts []Option, s string) bool {
	for _, o := range opts {
		if o.Code == s {
			return true
		}
	}
	return false
}

func clone(opts []Option) []Option {
	return append([]Option(nil), opts...)
}

func cloneTable(t map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
