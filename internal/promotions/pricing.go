package promotions

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var half = decimal.New(5, -1)

// PricingOptions controls rounding and the stale-catalog guard.
type PricingOptions struct {
	MinorUnits          int32
	FlashPriceTolerance decimal.Decimal
}

// Pricing is the computed line price. EffectiveUnitPrice is exact; LineTotal
// is rounded once, to the currency minor unit, and TotalDiscount is the rounded
// undiscounted total minus LineTotal, so the two always sum to it.
type Pricing struct {
	EffectiveUnitPrice decimal.Decimal
	LineTotal          decimal.Decimal
	TotalDiscount      decimal.Decimal
	StockLimited       bool
	StockLimit         *int
	Applied            []Promotion
}

// Price applies the resolved winners to the line. The flash sale sets the unit
// price first and the multi-buy percentage then applies on top of it. Winners
// that turn out not to apply are skipped; data problems come back as
// diagnostics.
func Price(winners Winners, line LineItem, opts PricingOptions) (Pricing, []Diagnostic) {
	var diagnostics []Diagnostic
	pricing := Pricing{EffectiveUnitPrice: line.UnitPrice}

	for _, winner := range winners.ordered() {
		switch cfg := winner.Config.(type) {
		case FlashSale:
			if err := checkFlashPrice(cfg, line, opts.FlashPriceTolerance); err != nil {
				diagnostics = append(diagnostics, diagnosticFor(*winner, ReasonPriceMismatch, err))
				continue
			}
			pricing.EffectiveUnitPrice = cfg.FlashPrice
			if cfg.StockLimit != nil {
				limit := *cfg.StockLimit
				pricing.StockLimited = true
				pricing.StockLimit = &limit
			}
		case MultiBuyDiscount:
			if !thresholdMet(cfg, line) {
				continue
			}
			pricing.EffectiveUnitPrice = pricing.EffectiveUnitPrice.Mul(decimal.NewFromInt(1).Sub(cfg.DiscountPercent.Shift(-2)))
		default:
			diagnostics = append(diagnostics, diagnosticFor(*winner, ReasonUnknownKind, fmt.Errorf("%w: %T", ErrUnknownKind, winner.Config)))
			continue
		}
		pricing.Applied = append(pricing.Applied, *winner)
	}

	qty := decimal.NewFromInt(int64(line.Quantity))
	original := line.UnitPrice.Mul(qty)
	total := pricing.EffectiveUnitPrice.Mul(qty)
	pricing.LineTotal = roundHalfUp(total, opts.MinorUnits)
	pricing.TotalDiscount = roundHalfUp(original, opts.MinorUnits).Sub(pricing.LineTotal)
	return pricing, diagnostics
}

// discountMagnitude is the saving a promotion would give this line on its own.
func discountMagnitude(p Promotion, line LineItem) decimal.Decimal {
	qty := decimal.NewFromInt(int64(line.Quantity))
	switch cfg := p.Config.(type) {
	case FlashSale:
		saving := line.UnitPrice.Sub(cfg.FlashPrice)
		if !saving.IsPositive() {
			return decimal.Zero
		}
		return saving.Mul(qty)
	case MultiBuyDiscount:
		if !thresholdMet(cfg, line) {
			return decimal.Zero
		}
		return line.UnitPrice.Mul(cfg.DiscountPercent.Shift(-2)).Mul(qty)
	default:
		return decimal.Zero
	}
}

// checkFlashPrice rejects flash sales priced against a different catalog price
// than the caller's, and flash prices that would not lower the price.
func checkFlashPrice(cfg FlashSale, line LineItem, tolerance decimal.Decimal) error {
	drift := cfg.OriginalPrice.Sub(line.UnitPrice).Abs()
	if drift.GreaterThan(tolerance) {
		return fmt.Errorf("original price %s differs from unit price %s by more than %s",
			cfg.OriginalPrice.String(), line.UnitPrice.String(), tolerance.String())
	}
	if !cfg.FlashPrice.LessThan(line.UnitPrice) {
		return fmt.Errorf("flash price %s does not undercut unit price %s",
			cfg.FlashPrice.String(), line.UnitPrice.String())
	}
	return nil
}

func thresholdMet(cfg MultiBuyDiscount, line LineItem) bool {
	return line.Quantity >= cfg.ThresholdQuantity
}

// roundHalfUp rounds to places decimals with ties going towards +infinity.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

func diagnosticFor(p Promotion, reason Reason, err error) Diagnostic {
	return Diagnostic{
		PromotionID: p.ID,
		MerchantID:  p.MerchantID,
		Reason:      reason,
		Err:         err,
	}
}
