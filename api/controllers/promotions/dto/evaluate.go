package promotionsdto

// EvaluateRequest prices a single line item for a merchant. Money travels as
// decimal strings so no precision is lost in transit.
type EvaluateRequest struct {
	MerchantID     string   `json:"merchant_id" validate:"required"`
	ProductID      string   `json:"product_id" validate:"required"`
	CategoryIDs    []string `json:"category_ids"`
	BrandID        string   `json:"brand_id"`
	Channel        string   `json:"channel"`
	Quantity       int      `json:"quantity" validate:"gt=0"`
	UnitPrice      string   `json:"unit_price" validate:"required,positive_decimal"`
	Currency       string   `json:"currency" validate:"omitempty,currency"`
	IsCreatorAgent bool     `json:"is_creator_agent"`
	CreatorID      string   `json:"creator_id"`
	Now            string   `json:"now"`
}

// Evaluation is the priced line returned to callers.
type Evaluation struct {
	EffectiveUnitPrice  string   `json:"effective_unit_price"`
	LineTotal           string   `json:"line_total"`
	TotalDiscount       string   `json:"total_discount"`
	Currency            string   `json:"currency"`
	AppliedPromotionIDs []string `json:"applied_promotion_ids"`
	StockLimited        bool     `json:"stock_limited"`
	StockLimit          *int     `json:"stock_limit,omitempty"`
	DisplayRules        []string `json:"display_rules"`
	EvaluatedAt         string   `json:"evaluated_at"`
	SnapshotStale       bool     `json:"snapshot_stale"`
	SnapshotSource      string   `json:"snapshot_source"`
}
