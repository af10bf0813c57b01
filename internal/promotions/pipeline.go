package promotions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

// DefaultFlashPriceTolerance bounds the drift between a flash sale's recorded
// original price and the caller's unit price: one minor unit of the currency.
func DefaultFlashPriceTolerance(currency enums.Currency) decimal.Decimal {
	return decimal.New(1, -currency.MinorUnits())
}

// Options carries the collaborators of an evaluation. The zero value is usable.
type Options struct {
	Sink                DiagnosticSink
	FlashPriceTolerance *decimal.Decimal
	DefaultCurrency     enums.Currency
	Now                 func() time.Time
}

// Result is the priced line item.
type Result struct {
	EffectiveUnitPrice  decimal.Decimal
	LineTotal           decimal.Decimal
	TotalDiscount       decimal.Decimal
	Currency            enums.Currency
	AppliedPromotionIDs []string
	StockLimited        bool
	StockLimit          *int
	DisplayRules        []string
	EvaluatedAt         time.Time
}

// Discounted reports whether any promotion was applied.
func (r Result) Discounted() bool {
	return len(r.AppliedPromotionIDs) > 0
}

// Evaluate prices one line item against a merchant snapshot. It never fails:
// promotions with data problems are reported to the sink and skipped, and the
// worst case is the undiscounted price.
//
// Eligibility is decided before promotions compete. A flash sale whose
// original price does not match the line, or a multi-buy whose threshold the
// quantity does not reach, is dropped, so a less specific promotion of the
// same kind can win instead.
func Evaluate(input EvaluationInput, snapshot Snapshot, opts Options) Result {
	sink := opts.Sink
	if sink == nil {
		sink = NopSink()
	}
	now := input.Now
	if now.IsZero() {
		now = clock(opts)
	}
	currency := resolveCurrency(input.Currency, opts.DefaultCurrency)
	tolerance := DefaultFlashPriceTolerance(currency)
	if opts.FlashPriceTolerance != nil {
		tolerance = *opts.FlashPriceTolerance
	}
	line := input.line()

	var candidates []Candidate
	if line.Quantity > 0 && line.UnitPrice.IsPositive() {
		candidates = collectCandidates(input, snapshot, now, tolerance, sink)
	}

	winners := Resolve(candidates, line)
	pricing, diagnostics := Price(winners, line, PricingOptions{
		MinorUnits:          currency.MinorUnits(),
		FlashPriceTolerance: tolerance,
	})
	for _, d := range diagnostics {
		sink.Report(d)
	}

	result := Result{
		EffectiveUnitPrice:  pricing.EffectiveUnitPrice,
		LineTotal:           pricing.LineTotal,
		TotalDiscount:       pricing.TotalDiscount,
		Currency:            currency,
		AppliedPromotionIDs: make([]string, 0, len(pricing.Applied)),
		StockLimited:        pricing.StockLimited,
		StockLimit:          pricing.StockLimit,
		DisplayRules:        make([]string, 0, len(pricing.Applied)),
		EvaluatedAt:         now,
	}
	for _, p := range pricing.Applied {
		result.AppliedPromotionIDs = append(result.AppliedPromotionIDs, p.ID)
		if p.HumanReadableRule != "" {
			result.DisplayRules = append(result.DisplayRules, p.HumanReadableRule)
		}
	}
	return result
}

func collectCandidates(input EvaluationInput, snapshot Snapshot, now time.Time, tolerance decimal.Decimal, sink DiagnosticSink) []Candidate {
	product := input.product()
	agent := input.agent()
	line := input.line()

	var candidates []Candidate
	for _, p := range snapshot.Promotions {
		if p.MerchantID != input.MerchantID {
			continue
		}
		window, err := ParseWindow(p.StartAt, p.EndAt)
		if err != nil {
			sink.Report(diagnosticFor(p, ReasonUnparseableWindow, err))
			continue
		}
		if !window.Start.Before(window.End) {
			sink.Report(diagnosticFor(p, ReasonMalformed, ErrEmptyWindow))
			continue
		}
		if ClassifyWindow(window, now) != enums.PromotionStatusActive {
			continue
		}
		if err := Validate(p); err != nil {
			sink.Report(diagnosticFor(p, ReasonMalformed, err))
			continue
		}
		level, ok := MatchScope(p.Scope, product)
		if !ok {
			continue
		}
		if !Admit(p, input.Channel, agent) {
			continue
		}
		eligible, diagnostic := priceEligible(p, line, tolerance)
		if diagnostic != nil {
			sink.Report(*diagnostic)
		}
		if !eligible {
			continue
		}
		candidates = append(candidates, Candidate{Promotion: p, Level: level, Start: window.Start})
	}
	return candidates
}

// priceEligible drops promotions that cannot apply to this line before they
// compete, so a valid runner-up can still win. An unmet multi-buy threshold is
// not a data problem and reports nothing.
func priceEligible(p Promotion, line LineItem, tolerance decimal.Decimal) (bool, *Diagnostic) {
	switch cfg := p.Config.(type) {
	case FlashSale:
		if err := checkFlashPrice(cfg, line, tolerance); err != nil {
			d := diagnosticFor(p, ReasonPriceMismatch, err)
			return false, &d
		}
		return true, nil
	case MultiBuyDiscount:
		return thresholdMet(cfg, line), nil
	default:
		d := diagnosticFor(p, ReasonUnknownKind, ErrUnknownKind)
		return false, &d
	}
}

func resolveCurrency(requested, fallback enums.Currency) enums.Currency {
	if requested.IsValid() {
		return requested
	}
	if fallback.IsValid() {
		return fallback
	}
	return enums.CurrencyUSD
}

func clock(opts Options) time.Time {
	if opts.Now != nil {
		return opts.Now()
	}
	return time.Now()
}
