package promotions

import (
	"time"

	promotionsdto "github.com/angelmondragon/packfinderz-promotions/api/controllers/promotions/dto"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/evaluator"
)

// newEvaluation renders totals at the currency's minor units. The effective
// unit price keeps its full precision.
func newEvaluation(eval evaluator.Evaluation) promotionsdto.Evaluation {
	places := eval.Currency.MinorUnits()
	return promotionsdto.Evaluation{
		EffectiveUnitPrice:  eval.EffectiveUnitPrice.String(),
		LineTotal:           eval.LineTotal.StringFixed(places),
		TotalDiscount:       eval.TotalDiscount.StringFixed(places),
		Currency:            eval.Currency.String(),
		AppliedPromotionIDs: eval.AppliedPromotionIDs,
		StockLimited:        eval.StockLimited,
		StockLimit:          eval.StockLimit,
		DisplayRules:        eval.DisplayRules,
		EvaluatedAt:         eval.EvaluatedAt.UTC().Format(time.RFC3339),
		SnapshotStale:       eval.SnapshotStale,
		SnapshotSource:      string(eval.SnapshotSource),
	}
}
