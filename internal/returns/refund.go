package returns

import (
	"math"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the precision refunds are presented at.
const CurrencyPlaces = 2

// Refund amounts are JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Quote is the clamped quantity and the refund it earns.
type Quote struct {
	Quantity     int             `json:"quantity"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
}

// SelectProduct picks the first line for productID.
func SelectProduct(lines []LineItem, productID ID) (LineItem, bool) {
	for _, line := range lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return LineItem{}, false
}

// SetQuantity clamps requested into [1, line.Quantity] and prices it. The
// bound is the purchased quantity, never catalog stock. The refund is kept
// exact; round with FormatAmount when presenting it.
func SetQuantity(line LineItem, requested int) Quote {
	purchased := line.Quantity
	if purchased < 1 {
		purchased = 1
	}
	quantity := requested
	if quantity < 1 {
		quantity = 1
	}
	if quantity > purchased {
		quantity = purchased
	}
	return Quote{
		Quantity:     quantity,
		RefundAmount: Refund(line.UnitPrice, quantity),
	}
}

// InitialQuote is the quote a freshly selected product starts with.
func InitialQuote(line LineItem) Quote { return SetQuantity(line, 1) }

// Refund multiplies without intermediate rounding.
func Refund(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// FormatAmount renders an amount at currency precision.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(CurrencyPlaces)
}

// ParseQuantity reads a requested quantity from a loosely typed form value.
// Anything that is not a number becomes 0 so that the clamp raises it to 1.
func ParseQuantity(v any) int {
	n, ok := asNumber(v)
	if !ok {
		return 0
	}
	switch {
	case n >= math.MaxInt32:
		return math.MaxInt32
	case n <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Floor(n))
}
