package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuoteLineItem is one row of a vendor quote's itemization. Amounts are held
// in integer centavos; the JSONB column stores the slice as-is.
type QuoteLineItem struct {
	Description   string `json:"description"`
	Quantity      int    `json:"quantity"`
	UnitCentavos  int64  `json:"unit_centavos"`
	TotalCentavos int64  `json:"total_centavos"`
}

// QuoteItemization is the full itemized breakdown attached to a quote.
type QuoteItemization []QuoteLineItem

// TotalCentavos sums the line totals.
func (q QuoteItemization) TotalCentavos() int64 {
	var total int64
	for _, item := range q {
		total += item.TotalCentavos
	}
	return total
}

// Validate checks every line's arithmetic and rejects non-positive amounts.
func (q QuoteItemization) Validate() error {
	for i, item := range q {
		if item.Description == "" {
			return fmt.Errorf("line %d: description required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("line %d: quantity must be positive", i)
		}
		if item.UnitCentavos <= 0 {
			return fmt.Errorf("line %d: unit amount must be positive", i)
		}
		if item.TotalCentavos != item.UnitCentavos*int64(item.Quantity) {
			return fmt.Errorf("line %d: total does not match unit*quantity", i)
		}
	}
	return nil
}

// DepositFor computes the downpayment for a quoted total at the given percent,
// rounded half-up to a whole centavo.
func DepositFor(totalCentavos int64, percent decimal.Decimal) int64 {
	total := decimal.NewFromInt(totalCentavos)
	deposit := total.Mul(percent).Div(decimal.NewFromInt(100))
	return deposit.Round(0).IntPart()
}
