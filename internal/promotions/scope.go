package promotions

// MatchLevel ranks how specifically a scope matched a product. Higher wins.
type MatchLevel int

const (
	MatchNone MatchLevel = iota
	MatchGlobal
	MatchMerchant
	MatchBrand
	MatchCategory
	MatchProduct
)

func (l MatchLevel) String() string {
	switch l {
	case MatchGlobal:
		return "GLOBAL"
	case MatchMerchant:
		return "MERCHANT"
	case MatchBrand:
		return "BRAND"
	case MatchCategory:
		return "CATEGORY"
	case MatchProduct:
		return "PRODUCT"
	default:
		return "NONE"
	}
}

// MatchScope reports whether scope targets the product and at which level.
// Dimensions are independent: any single matching dimension is enough, and the
// most specific matching one is reported.
func MatchScope(scope Scope, product ProductContext) (MatchLevel, bool) {
	switch {
	case contains(scope.ProductIDs, product.ProductID):
		return MatchProduct, true
	case containsAny(scope.CategoryIDs, product.CategoryIDs):
		return MatchCategory, true
	case contains(scope.BrandIDs, product.BrandID):
		return MatchBrand, true
	case contains(scope.MerchantIDs, product.MerchantID):
		return MatchMerchant, true
	case scope.Global:
		return MatchGlobal, true
	default:
		return MatchNone, false
	}
}

func containsAny(values, targets []string) bool {
	for _, target := range targets {
		if contains(values, target) {
			return true
		}
	}
	return false
}
