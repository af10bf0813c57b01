package promotions

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candidate is a promotion that passed lifecycle, scope and channel checks for
// one line item.
type Candidate struct {
	Promotion Promotion
	Level     MatchLevel
	Start     time.Time
}

// Winners holds at most one promotion per kind. Kinds stack rather than compete.
type Winners struct {
	FlashSale *Promotion
	MultiBuy  *Promotion
}

// Empty reports whether no promotion won.
func (w Winners) Empty() bool {
	return w.FlashSale == nil && w.MultiBuy == nil
}

// ordered returns the winners in application order: flash sale first.
func (w Winners) ordered() []*Promotion {
	out := make([]*Promotion, 0, 2)
	if w.FlashSale != nil {
		out = append(out, w.FlashSale)
	}
	if w.MultiBuy != nil {
		out = append(out, w.MultiBuy)
	}
	return out
}

type ranked struct {
	candidate Candidate
	magnitude decimal.Decimal
}

// Resolve picks one winner per kind. Within a kind the order is: most specific
// scope, then larger discount for this line, then earliest start, then
// smallest id.
func Resolve(candidates []Candidate, line LineItem) Winners {
	var flash, multi *ranked
	for _, c := range candidates {
		entry := &ranked{candidate: c, magnitude: discountMagnitude(c.Promotion, line)}
		switch c.Promotion.Config.(type) {
		case FlashSale:
			if flash == nil || entry.outranks(flash) {
				flash = entry
			}
		case MultiBuyDiscount:
			if multi == nil || entry.outranks(multi) {
				multi = entry
			}
		}
	}

	var winners Winners
	if flash != nil {
		p := flash.candidate.Promotion
		winners.FlashSale = &p
	}
	if multi != nil {
		p := multi.candidate.Promotion
		winners.MultiBuy = &p
	}
	return winners
}

func (r *ranked) outranks(other *ranked) bool {
	a, b := r.candidate, other.candidate
	if a.Level != b.Level {
		return a.Level > b.Level
	}
	if cmp := r.magnitude.Cmp(other.magnitude); cmp != 0 {
		return cmp > 0
	}
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.Promotion.ID < b.Promotion.ID
}
