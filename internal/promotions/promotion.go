package promotions

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

// Promotion is an immutable snapshot of a merchant-configured promotion.
// StartAt and EndAt carry the window exactly as stored (RFC 3339); they are
// parsed during evaluation so a corrupt value degrades to ENDED instead of
// failing the whole snapshot.
type Promotion struct {
	ID                string
	MerchantID        string
	Name              string
	Description       string
	StartAt           string
	EndAt             string
	Channels          []string
	Scope             Scope
	Config            Config
	ExposeToCreators  bool
	AllowedCreatorIDs []string
	HumanReadableRule string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Kind returns the config kind, or "" when no config is attached.
func (p Promotion) Kind() enums.PromotionKind {
	if p.Config == nil {
		return ""
	}
	return p.Config.Kind()
}

// Scope targets a promotion at merchants, products, categories or brands.
type Scope struct {
	Global      bool
	MerchantIDs []string
	ProductIDs  []string
	CategoryIDs []string
	BrandIDs    []string
}

// IsInert reports whether the scope declares nothing to match against.
func (s Scope) IsInert() bool {
	if s.Global {
		return false
	}
	return !hasAny(s.MerchantIDs) && !hasAny(s.ProductIDs) && !hasAny(s.CategoryIDs) && !hasAny(s.BrandIDs)
}

// Snapshot is the set of promotions fetched for one merchant at one point in time.
type Snapshot struct {
	MerchantID string
	Promotions []Promotion
	FetchedAt  time.Time
}

// ProductContext identifies the catalog item being priced.
type ProductContext struct {
	MerchantID  string
	ProductID   string
	CategoryIDs []string
	BrandID     string
}

// AgentContext describes who is asking. Creator-agent traffic is subject to
// exposure rules.
type AgentContext struct {
	IsCreatorAgent bool
	CreatorID      string
}

// LineItem is the quantity and caller-supplied unit price being priced.
type LineItem struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// EvaluationInput is one line-item evaluation request.
type EvaluationInput struct {
	MerchantID     string
	ProductID      string
	CategoryIDs    []string
	BrandID        string
	Channel        string
	Quantity       int
	UnitPrice      decimal.Decimal
	Currency       enums.Currency
	IsCreatorAgent bool
	CreatorID      string
	Now            time.Time
}

func (in EvaluationInput) product() ProductContext {
	return ProductContext{
		MerchantID:  in.MerchantID,
		ProductID:   in.ProductID,
		CategoryIDs: in.CategoryIDs,
		BrandID:     in.BrandID,
	}
}

func (in EvaluationInput) agent() AgentContext {
	return AgentContext{IsCreatorAgent: in.IsCreatorAgent, CreatorID: in.CreatorID}
}

func (in EvaluationInput) line() LineItem {
	return LineItem{UnitPrice: in.UnitPrice, Quantity: in.Quantity}
}

func hasAny(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func contains(values []string, target string) bool {
	target = strings.TrimSpace(target)
	if target == "" {
		return false
	}
	for _, v := range values {
		if strings.TrimSpace(v) == target {
			return true
		}
	}
	return false
}
