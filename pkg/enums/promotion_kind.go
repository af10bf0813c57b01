package enums

import "fmt"

// PromotionKind tags the behaviour carried by a promotion's config.
type PromotionKind string

const (
	PromotionKindFlashSale        PromotionKind = "FLASH_SALE"
	PromotionKindMultiBuyDiscount PromotionKind = "MULTI_BUY_DISCOUNT"
)

var validPromotionKinds = []PromotionKind{
	PromotionKindFlashSale,
	PromotionKindMultiBuyDiscount,
}

// String implements fmt.Stringer.
func (k PromotionKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PromotionKind.
func (k PromotionKind) IsValid() bool {
	for _, candidate := range validPromotionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePromotionKind converts raw input into a PromotionKind.
func ParsePromotionKind(value string) (PromotionKind, error) {
	for _, candidate := range validPromotionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion kind %q", value)
}
