package promotions

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidateAcceptsWellFormedPromotions(t *testing.T) {
	require.NoError(t, Validate(flashPromotion("f1", "9.99", "14.99")))
	require.NoError(t, Validate(multiBuyPromotion("m1", 3, "100")))
}

func TestValidateReportsEveryViolation(t *testing.T) {
	p := Promotion{
		StartAt: "2026-03-31T00:00:00Z",
		EndAt:   "2026-03-01T00:00:00Z",
		Config:  MultiBuyDiscount{ThresholdQuantity: 1, DiscountPercent: decimal.NewFromInt(120)},
	}

	err := Validate(p)
	require.Error(t, err)
	errs := multierr.Errors(err)
	for _, want := range []error{ErrMissingID, ErrMissingMerchant, ErrEmptyWindow, ErrNoChannels, ErrInertScope, ErrThresholdQty, ErrDiscountPercent} {
		assert.ErrorIs(t, err, want)
	}
	assert.Len(t, errs, 7)
}

func TestValidateFlashSaleConfig(t *testing.T) {
	zero := 0
	cases := []struct {
		name string
		cfg  FlashSale
		want error
	}{
		{name: "flash above original", cfg: FlashSale{FlashPrice: decimal.NewFromInt(20), OriginalPrice: decimal.NewFromInt(10)}, want: ErrFlashPrice},
		{name: "flash equals original", cfg: FlashSale{FlashPrice: decimal.NewFromInt(10), OriginalPrice: decimal.NewFromInt(10)}, want: ErrFlashPrice},
		{name: "zero flash", cfg: FlashSale{FlashPrice: decimal.Zero, OriginalPrice: decimal.NewFromInt(10)}, want: ErrFlashPrice},
		{name: "zero stock limit", cfg: FlashSale{FlashPrice: decimal.NewFromInt(5), OriginalPrice: decimal.NewFromInt(10), StockLimit: &zero}, want: ErrStockLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := flashPromotion("f1", "1", "2")
			p.Config = tc.cfg
			assert.ErrorIs(t, Validate(p), tc.want)
		})
	}
}

func TestValidateMissingConfig(t *testing.T) {
	p := flashPromotion("f1", "9.99", "14.99")
	p.Config = nil
	assert.ErrorIs(t, Validate(p), ErrMissingConfig)
}

func TestValidateLeavesUnparseableWindowToClassify(t *testing.T) {
	p := flashPromotion("f1", "9.99", "14.99")
	p.StartAt = "garbage"
	assert.NoError(t, Validate(p))
}
