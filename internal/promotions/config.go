package promotions

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

// Config is the closed set of promotion behaviours. Only FlashSale and
// MultiBuyDiscount implement it; consumers switch on the concrete type and
// treat anything else as unknown.
type Config interface {
	Kind() enums.PromotionKind
	isConfig()
}

// FlashSale replaces the unit price with FlashPrice. StockLimit is advisory.
type FlashSale struct {
	FlashPrice    decimal.Decimal `json:"flash_price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	StockLimit    *int            `json:"stock_limit,omitempty"`
}

func (FlashSale) Kind() enums.PromotionKind { return enums.PromotionKindFlashSale }
func (FlashSale) isConfig()                 {}

// MultiBuyDiscount takes DiscountPercent off every unit once the line reaches
// ThresholdQuantity.
type MultiBuyDiscount struct {
	ThresholdQuantity int             `json:"threshold_quantity"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
}

func (MultiBuyDiscount) Kind() enums.PromotionKind { return enums.PromotionKindMultiBuyDiscount }
func (MultiBuyDiscount) isConfig()                 {}

// DecodeConfig builds the config variant for kind from its JSON payload.
func DecodeConfig(kind enums.PromotionKind, raw []byte) (Config, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("promotion config for %s is empty", kind)
	}
	switch kind {
	case enums.PromotionKindFlashSale:
		var cfg FlashSale
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("decode flash sale config: %w", err)
		}
		return cfg, nil
	case enums.PromotionKindMultiBuyDiscount:
		var cfg MultiBuyDiscount
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("decode multi-buy config: %w", err)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unknown promotion kind %q", kind)
	}
}

// EncodeConfig renders a config variant as JSON.
func EncodeConfig(cfg Config) ([]byte, error) {
	switch c := cfg.(type) {
	case FlashSale:
		return json.Marshal(c)
	case MultiBuyDiscount:
		return json.Marshal(c)
	case nil:
		return nil, fmt.Errorf("promotion config is nil")
	default:
		return nil, fmt.Errorf("unknown promotion config %T", cfg)
	}
}
