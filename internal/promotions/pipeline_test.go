package promotions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

func snapshotOf(promos ...Promotion) Snapshot {
	return Snapshot{MerchantID: testMerchant, Promotions: promos, FetchedAt: testNow}
}

func TestEvaluateFlashSale(t *testing.T) {
	result := Evaluate(baseInput(t, "14.99", 2), snapshotOf(flashPromotion("f1", "9.99", "14.99")), Options{})

	requireDecimal(t, "9.99", result.EffectiveUnitPrice)
	requireDecimal(t, "19.98", result.LineTotal)
	requireDecimal(t, "10.00", result.TotalDiscount)
	assert.Equal(t, []string{"f1"}, result.AppliedPromotionIDs)
	assert.Equal(t, []string{"Flash sale 9.99"}, result.DisplayRules)
	assert.Equal(t, enums.CurrencyUSD, result.Currency)
	assert.True(t, result.Discounted())
}

func TestEvaluateMultiBuyThreshold(t *testing.T) {
	snapshot := snapshotOf(multiBuyPromotion("m1", 3, "15"))

	below := Evaluate(baseInput(t, "10.00", 2), snapshot, Options{})
	assert.Empty(t, below.AppliedPromotionIDs)
	requireDecimal(t, "20.00", below.LineTotal)
	assert.True(t, below.TotalDiscount.IsZero())

	at := Evaluate(baseInput(t, "10.00", 3), snapshot, Options{})
	assert.Equal(t, []string{"m1"}, at.AppliedPromotionIDs)
	requireDecimal(t, "8.50", at.EffectiveUnitPrice)
	requireDecimal(t, "25.50", at.LineTotal)
	requireDecimal(t, "4.50", at.TotalDiscount)
}

func TestEvaluateCreatorAgentExposure(t *testing.T) {
	promo := flashPromotion("f1", "9.99", "14.99")
	promo.Channels = []string{"storefront", "agent"}
	snapshot := snapshotOf(promo)

	agent := baseInput(t, "14.99", 1)
	agent.Channel = "agent"
	agent.IsCreatorAgent = true
	agent.CreatorID = "creator-1"

	hidden := Evaluate(agent, snapshot, Options{})
	assert.Empty(t, hidden.AppliedPromotionIDs)
	requireDecimal(t, "14.99", hidden.LineTotal)

	visible := Evaluate(baseInput(t, "14.99", 1), snapshot, Options{})
	assert.Equal(t, []string{"f1"}, visible.AppliedPromotionIDs)
}

func TestEvaluateUnparseableWindowContinues(t *testing.T) {
	broken := flashPromotion("broken", "5.00", "14.99")
	broken.StartAt = "yesterday"
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "14.99", 1), snapshotOf(broken, flashPromotion("ok", "9.99", "14.99")), Options{Sink: sink})

	assert.Equal(t, []string{"ok"}, result.AppliedPromotionIDs)
	require.Len(t, sink.diagnostics, 1)
	assert.Equal(t, ReasonUnparseableWindow, sink.diagnostics[0].Reason)
	assert.Equal(t, "broken", sink.diagnostics[0].PromotionID)
	assert.Error(t, sink.diagnostics[0].Err)
}

func TestEvaluateReportsInvertedWindow(t *testing.T) {
	inverted := flashPromotion("inverted", "5.00", "14.99")
	inverted.StartAt = "2026-03-20T00:00:00Z"
	inverted.EndAt = "2026-03-10T00:00:00Z"
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "14.99", 1), snapshotOf(inverted), Options{Sink: sink})

	assert.Empty(t, result.AppliedPromotionIDs)
	requireDecimal(t, "14.99", result.LineTotal)
	require.Len(t, sink.diagnostics, 1)
	assert.Equal(t, ReasonMalformed, sink.diagnostics[0].Reason)
	assert.Equal(t, "inverted", sink.diagnostics[0].PromotionID)
	assert.ErrorIs(t, sink.diagnostics[0].Err, ErrEmptyWindow)
}

func TestEvaluateExcludesMalformedRecords(t *testing.T) {
	malformed := multiBuyPromotion("bad", 1, "150")
	inert := multiBuyPromotion("inert", 2, "10")
	inert.Scope = Scope{}
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "10.00", 3), snapshotOf(malformed, inert), Options{Sink: sink})

	assert.Empty(t, result.AppliedPromotionIDs)
	assert.Equal(t, []Reason{ReasonMalformed, ReasonMalformed}, sink.reasons())
}

func TestEvaluatePriceMismatchLetsRunnerUpWin(t *testing.T) {
	stale := flashPromotion("stale", "5.00", "19.99")
	stale.Scope = Scope{ProductIDs: []string{"product-1"}}
	current := flashPromotion("current", "12.00", "14.99")
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "14.99", 1), snapshotOf(stale, current), Options{Sink: sink})

	assert.Equal(t, []string{"current"}, result.AppliedPromotionIDs)
	assert.Equal(t, []Reason{ReasonPriceMismatch}, sink.reasons())
}

func TestEvaluateUnmetThresholdLetsWiderMultiBuyWin(t *testing.T) {
	narrow := multiBuyPromotion("narrow", 5, "30")
	narrow.Scope = Scope{ProductIDs: []string{"product-1"}}
	wide := multiBuyPromotion("wide", 2, "10")
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "10.00", 3), snapshotOf(narrow, wide), Options{Sink: sink})

	assert.Equal(t, []string{"wide"}, result.AppliedPromotionIDs)
	requireDecimal(t, "27.00", result.LineTotal)
	assert.Empty(t, sink.diagnostics)
}

func TestEvaluateSkipsInactiveAndForeignPromotions(t *testing.T) {
	upcoming := flashPromotion("upcoming", "9.99", "14.99")
	upcoming.StartAt = "2026-04-01T00:00:00Z"
	upcoming.EndAt = "2026-04-30T00:00:00Z"
	ended := flashPromotion("ended", "9.99", "14.99")
	ended.StartAt = "2026-01-01T00:00:00Z"
	ended.EndAt = "2026-02-01T00:00:00Z"
	foreign := flashPromotion("foreign", "9.99", "14.99")
	foreign.MerchantID = "merchant-2"
	sink := &recordingSink{}

	result := Evaluate(baseInput(t, "14.99", 1), snapshotOf(upcoming, ended, foreign), Options{Sink: sink})

	assert.Empty(t, result.AppliedPromotionIDs)
	assert.Empty(t, sink.diagnostics)
	requireDecimal(t, "14.99", result.EffectiveUnitPrice)
}

func TestEvaluateStacksBothKinds(t *testing.T) {
	result := Evaluate(baseInput(t, "10.00", 4), snapshotOf(
		multiBuyPromotion("m1", 4, "50"),
		flashPromotion("f1", "8.00", "10.00"),
	), Options{})

	assert.Equal(t, []string{"f1", "m1"}, result.AppliedPromotionIDs)
	requireDecimal(t, "4.00", result.EffectiveUnitPrice)
	requireDecimal(t, "16.00", result.LineTotal)
	requireDecimal(t, "24.00", result.TotalDiscount)
	assert.Len(t, result.DisplayRules, 2)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	snapshot := snapshotOf(
		flashPromotion("f1", "9.99", "14.99"),
		flashPromotion("f2", "11.00", "14.99"),
		multiBuyPromotion("m1", 2, "5"),
	)
	input := baseInput(t, "14.99", 2)

	first := Evaluate(input, snapshot, Options{})
	second := Evaluate(input, snapshot, Options{})
	assert.Equal(t, first, second)
}

func TestEvaluateInvalidLineSkipsPromotions(t *testing.T) {
	snapshot := snapshotOf(flashPromotion("f1", "9.99", "14.99"))

	result := Evaluate(baseInput(t, "14.99", 0), snapshot, Options{})
	assert.Empty(t, result.AppliedPromotionIDs)
	assert.True(t, result.LineTotal.IsZero())
}

func TestEvaluateDefaults(t *testing.T) {
	input := baseInput(t, "333", 1)
	input.Now = time.Time{}
	fixed := testNow.Add(time.Minute)

	result := Evaluate(input, snapshotOf(), Options{
		DefaultCurrency: enums.CurrencyJPY,
		Now:             func() time.Time { return fixed },
	})

	assert.Equal(t, enums.CurrencyJPY, result.Currency)
	assert.Equal(t, fixed, result.EvaluatedAt)
	assert.NotNil(t, result.AppliedPromotionIDs)
	assert.NotNil(t, result.DisplayRules)
}

func TestEvaluateDefaultToleranceFollowsCurrency(t *testing.T) {
	usd := baseInput(t, "10.02", 1)
	usdSink := &recordingSink{}
	usdResult := Evaluate(usd, snapshotOf(flashPromotion("f1", "8.00", "10.00")), Options{Sink: usdSink})
	assert.Empty(t, usdResult.AppliedPromotionIDs)
	assert.Equal(t, []Reason{ReasonPriceMismatch}, usdSink.reasons())

	yen := baseInput(t, "1001", 1)
	yen.Currency = enums.CurrencyJPY
	yenResult := Evaluate(yen, snapshotOf(flashPromotion("f1", "800", "1000")), Options{})
	assert.Equal(t, []string{"f1"}, yenResult.AppliedPromotionIDs)
	requireDecimal(t, "800", yenResult.LineTotal)

	requireDecimal(t, "0.01", DefaultFlashPriceTolerance(enums.CurrencyUSD))
	requireDecimal(t, "1", DefaultFlashPriceTolerance(enums.CurrencyJPY))
}

func TestEvaluateCustomTolerance(t *testing.T) {
	tolerance := dec(t, "0.50")
	result := Evaluate(baseInput(t, "15.25", 1), snapshotOf(flashPromotion("f1", "9.99", "14.99")), Options{FlashPriceTolerance: &tolerance})
	assert.Equal(t, []string{"f1"}, result.AppliedPromotionIDs)
}
