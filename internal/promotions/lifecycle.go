package promotions

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

// Window is a parsed promotion time window. Both bounds are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// ParseWindow parses RFC 3339 bounds.
func ParseWindow(startAt, endAt string) (Window, error) {
	start, err := parseInstant(startAt)
	if err != nil {
		return Window{}, fmt.Errorf("start_at: %w", err)
	}
	end, err := parseInstant(endAt)
	if err != nil {
		return Window{}, fmt.Errorf("end_at: %w", err)
	}
	return Window{Start: start, End: end}, nil
}

// Classify maps a stored window onto a status at now. A window that cannot be
// parsed is ENDED so it can never become active.
func Classify(startAt, endAt string, now time.Time) enums.PromotionStatus {
	window, err := ParseWindow(startAt, endAt)
	if err != nil {
		return enums.PromotionStatusEnded
	}
	return ClassifyWindow(window, now)
}

// ClassifyWindow returns UPCOMING before Start, ENDED after End and ACTIVE in between.
func ClassifyWindow(w Window, now time.Time) enums.PromotionStatus {
	switch {
	case now.Before(w.Start):
		return enums.PromotionStatusUpcoming
	case now.After(w.End):
		return enums.PromotionStatusEnded
	default:
		return enums.PromotionStatusActive
	}
}

func parseInstant(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("instant is empty")
	}
	parsed, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse instant %q: %w", value, err)
	}
	return parsed, nil
}
