package promotions

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testMerchant = "merchant-1"

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	require.Truef(t, want.Equal(actual), "expected %s, got %s", want.String(), actual.String())
}

func flashPromotion(id, flash, original string) Promotion {
	return Promotion{
		ID:                id,
		MerchantID:        testMerchant,
		Name:              "Flash " + id,
		StartAt:           "2026-03-01T00:00:00Z",
		EndAt:             "2026-03-31T23:59:59Z",
		Channels:          []string{"storefront"},
		Scope:             Scope{Global: true},
		Config:            FlashSale{FlashPrice: decimal.RequireFromString(flash), OriginalPrice: decimal.RequireFromString(original)},
		HumanReadableRule: "Flash sale " + flash,
	}
}

func multiBuyPromotion(id string, threshold int, percent string) Promotion {
	return Promotion{
		ID:                id,
		MerchantID:        testMerchant,
		Name:              "Multi " + id,
		StartAt:           "2026-03-01T00:00:00Z",
		EndAt:             "2026-03-31T23:59:59Z",
		Channels:          []string{"storefront"},
		Scope:             Scope{Global: true},
		Config:            MultiBuyDiscount{ThresholdQuantity: threshold, DiscountPercent: decimal.RequireFromString(percent)},
		HumanReadableRule: "Buy " + percent + "% off",
	}
}

func baseInput(t *testing.T, unitPrice string, qty int) EvaluationInput {
	return EvaluationInput{
		MerchantID:  testMerchant,
		ProductID:   "product-1",
		CategoryIDs: []string{"category-1"},
		BrandID:     "brand-1",
		Channel:     "storefront",
		Quantity:    qty,
		UnitPrice:   dec(t, unitPrice),
		Now:         testNow,
	}
}

type recordingSink struct {
	diagnostics []Diagnostic
}

func (s *recordingSink) Report(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

func (s *recordingSink) reasons() []Reason {
	out := make([]Reason, 0, len(s.diagnostics))
	for _, d := range s.diagnostics {
		out = append(out, d.Reason)
	}
	return out
}
