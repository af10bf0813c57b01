package promotions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

var (
	hundred = decimal.NewFromInt(100)

	ErrMissingID        = errors.New("id is required")
	ErrMissingMerchant  = errors.New("merchant id is required")
	ErrEmptyWindow      = errors.New("start_at must be before end_at")
	ErrNoChannels       = errors.New("channels must not be empty")
	ErrInertScope       = errors.New("scope must be global or declare at least one target")
	ErrMissingConfig    = errors.New("config is required")
	ErrFlashPrice       = errors.New("flash price must be positive and below the original price")
	ErrStockLimit       = errors.New("stock limit must be positive when set")
	ErrThresholdQty     = errors.New("threshold quantity must be at least 2")
	ErrDiscountPercent  = errors.New("discount percent must be within (0, 100]")
	ErrUnknownKind      = errors.New("unknown promotion kind")
	ErrUnparseableRange = errors.New("promotion window is not parseable")
)

// Validate re-checks the record invariants the store is expected to uphold.
// Every violation is reported; the result is nil for a well-formed promotion.
// Window parse failures are left to Classify, which treats them as ENDED.
func Validate(p Promotion) error {
	var err error
	if strings.TrimSpace(p.ID) == "" {
		err = multierr.Append(err, ErrMissingID)
	}
	if strings.TrimSpace(p.MerchantID) == "" {
		err = multierr.Append(err, ErrMissingMerchant)
	}
	if window, parseErr := ParseWindow(p.StartAt, p.EndAt); parseErr == nil && !window.Start.Before(window.End) {
		err = multierr.Append(err, ErrEmptyWindow)
	}
	if !hasAny(p.Channels) {
		err = multierr.Append(err, ErrNoChannels)
	}
	if p.Scope.IsInert() {
		err = multierr.Append(err, ErrInertScope)
	}
	return multierr.Append(err, validateConfig(p.Config))
}

func validateConfig(cfg Config) error {
	switch c := cfg.(type) {
	case FlashSale:
		var err error
		if !c.FlashPrice.IsPositive() || !c.FlashPrice.LessThan(c.OriginalPrice) {
			err = multierr.Append(err, ErrFlashPrice)
		}
		if c.StockLimit != nil && *c.StockLimit <= 0 {
			err = multierr.Append(err, ErrStockLimit)
		}
		return err
	case MultiBuyDiscount:
		var err error
		if c.ThresholdQuantity < 2 {
			err = multierr.Append(err, ErrThresholdQty)
		}
		if !c.DiscountPercent.IsPositive() || c.DiscountPercent.GreaterThan(hundred) {
			err = multierr.Append(err, ErrDiscountPercent)
		}
		return err
	case nil:
		return ErrMissingConfig
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, cfg)
	}
}
