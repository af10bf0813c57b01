package promotions

import (
	"context"

	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

// Reason classifies why a promotion was dropped from an evaluation.
type Reason string

const (
	ReasonUnparseableWindow Reason = "unparseable_window"
	ReasonMalformed         Reason = "malformed_record"
	ReasonPriceMismatch     Reason = "original_price_mismatch"
	ReasonUnknownKind       Reason = "unknown_kind"
)

// Diagnostic describes a promotion excluded for a data problem. Promotions that
// simply do not apply (wrong channel, out of scope, not yet started) are not
// diagnostics.
type Diagnostic struct {
	PromotionID string
	MerchantID  string
	Reason      Reason
	Err         error
}

// DiagnosticSink receives diagnostics produced during evaluation.
type DiagnosticSink interface {
	Report(Diagnostic)
}

// SinkFunc adapts a function to DiagnosticSink.
type SinkFunc func(Diagnostic)

func (fn SinkFunc) Report(d Diagnostic) { fn(d) }

type nopSink struct{}

func (nopSink) Report(Diagnostic) {}

// NopSink discards diagnostics.
func NopSink() DiagnosticSink { return nopSink{} }

// LoggerSink writes diagnostics as warnings carrying the fields already
// attached to ctx.
type LoggerSink struct {
	ctx  context.Context
	logg *logger.Logger
}

// NewLoggerSink binds a sink to the request context it should log under.
func NewLoggerSink(ctx context.Context, logg *logger.Logger) *LoggerSink {
	return &LoggerSink{ctx: ctx, logg: logg}
}

func (s *LoggerSink) Report(d Diagnostic) {
	if s == nil || s.logg == nil {
		return
	}
	fields := map[string]any{
		"promotion_id": d.PromotionID,
		"merchant_id":  d.MerchantID,
		"reason":       string(d.Reason),
	}
	if d.Err != nil {
		fields["error"] = d.Err.Error()
	}
	s.logg.Warn(s.logg.WithFields(s.ctx, fields), "promotion excluded from evaluation")
}

// Fanout reports every diagnostic to each sink in order.
func Fanout(sinks ...DiagnosticSink) DiagnosticSink {
	return SinkFunc(func(d Diagnostic) {
		for _, sink := range sinks {
			if sink != nil {
				sink.Report(d)
			}
		}
	})
}
