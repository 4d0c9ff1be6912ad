package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteItemizationTotal(t *testing.T) {
	itemization := QuoteItemization{
		{Description: "Full-day coverage", Quantity: 1, UnitCentavos: 4500000, TotalCentavos: 4500000},
		{Description: "Prints", Quantity: 20, UnitCentavos: 15000, TotalCentavos: 300000},
	}
	require.NoError(t, itemization.Validate())
	assert.Equal(t, int64(4800000), itemization.TotalCentavos())
}

func TestQuoteItemizationValidate(t *testing.T) {
	bad := QuoteItemization{
		{Description: "Prints", Quantity: 20, UnitCentavos: 15000, TotalCentavos: 999},
	}
	assert.Error(t, bad.Validate())

	missing := QuoteItemization{
		{Quantity: 1, UnitCentavos: 100, TotalCentavos: 100},
	}
	assert.Error(t, missing.Validate())
}

func TestDepositForRounds(t *testing.T) {
	// 30% of 4800000 is exact
	assert.Equal(t, int64(1440000), DepositFor(4800000, decimal.NewFromInt(30)))
	// 33% of 101 centavos rounds half-up
	assert.Equal(t, int64(33), DepositFor(101, decimal.NewFromInt(33)))
}
