package evaluator

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/snapshot"
	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
	"github.com/angelmondragon/packfinderz-promotions/pkg/metrics"
)

// SnapshotSource serves merchant snapshots; *snapshot.Cache implements it.
type SnapshotSource interface {
	Get(ctx context.Context, merchantID string) snapshot.Lookup
}

// Config tunes evaluation. A nil FlashPriceTolerance means one minor unit of
// the line's currency.
type Config struct {
	FlashPriceTolerance *decimal.Decimal
	DefaultCurrency     enums.Currency
}

// Evaluation is a priced line plus how fresh the promotions behind it were.
type Evaluation struct {
	promotions.Result
	SnapshotStale  bool
	SnapshotSource snapshot.Source
}

// Service evaluates line items against cached merchant snapshots.
type Service struct {
	snapshots SnapshotSource
	cfg       Config
	metrics   *metrics.PromotionMetrics
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(snapshots SnapshotSource, cfg Config, m *metrics.PromotionMetrics, logg *logger.Logger) *Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		snapshots: snapshots,
		cfg:       cfg,
		metrics:   m,
		logg:      logg,
		now:       time.Now,
	}
}

// Evaluate never fails. A missing or unreachable snapshot prices the line
// without promotions.
func (s *Service) Evaluate(ctx context.Context, input promotions.EvaluationInput) Evaluation {
	ctx = s.logg.WithMerchantID(ctx, input.MerchantID)
	lookup := s.snapshots.Get(ctx, input.MerchantID)

	sink := promotions.Fanout(
		promotions.NewLoggerSink(ctx, s.logg),
		promotions.SinkFunc(func(d promotions.Diagnostic) {
			s.metrics.IncExclusion(string(d.Reason))
		}),
	)
	result := promotions.Evaluate(input, lookup.Snapshot, promotions.Options{
		Sink:                sink,
		FlashPriceTolerance: s.cfg.FlashPriceTolerance,
		DefaultCurrency:     s.cfg.DefaultCurrency,
		Now:                 s.now,
	})

	outcome := "full_price"
	if result.Discounted() {
		outcome = "discounted"
	}
	s.metrics.IncEvaluation(outcome)
	if lookup.Stale {
		s.logg.Debug(s.logg.WithField(ctx, "snapshot_source", string(lookup.Source)), "evaluated against stale snapshot")
	}

	return Evaluation{
		Result:         result,
		SnapshotStale:  lookup.Stale,
		SnapshotSource: lookup.Source,
	}
}
