package enums

import "fmt"

// PromotionStatus is the lifecycle state derived from a promotion window.
// It is never persisted.
type PromotionStatus string

const (
	PromotionStatusUpcoming PromotionStatus = "UPCOMING"
	PromotionStatusActive   PromotionStatus = "ACTIVE"
	PromotionStatusEnded    PromotionStatus = "ENDED"
)

var validPromotionStatuses = []PromotionStatus{
	PromotionStatusUpcoming,
	PromotionStatusActive,
	PromotionStatusEnded,
}

// String implements fmt.Stringer.
func (s PromotionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known PromotionStatus.
func (s PromotionStatus) IsValid() bool {
	for _, candidate := range validPromotionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Rank orders statuses along the lifecycle: UPCOMING < ACTIVE < ENDED.
func (s PromotionStatus) Rank() int {
	for i, candidate := range validPromotionStatuses {
		if candidate == s {
			return i
		}
	}
	return -1
}

// ParsePromotionStatus converts raw input into a PromotionStatus.
func ParsePromotionStatus(value string) (PromotionStatus, error) {
	for _, candidate := range validPromotionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion status %q", value)
}
