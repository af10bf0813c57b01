package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Promotion mirrors a row of the promotions table. Config holds the
// kind-specific payload as written by the admin service.
type Promotion struct {
	ID                string          `gorm:"column:id;primaryKey"`
	MerchantID        string          `gorm:"column:merchant_id;not null"`
	Name              string          `gorm:"column:name;not null"`
	Description       string          `gorm:"column:description"`
	Kind              string          `gorm:"column:kind;not null"`
	StartAt           time.Time       `gorm:"column:start_at;not null"`
	EndAt             time.Time       `gorm:"column:end_at;not null"`
	Channels          pq.StringArray  `gorm:"column:channels;type:text[];not null"`
	ScopeGlobal       bool            `gorm:"column:scope_global;not null;default:false"`
	ScopeMerchantIDs  pq.StringArray  `gorm:"column:scope_merchant_ids;type:text[]"`
	ScopeProductIDs   pq.StringArray  `gorm:"column:scope_product_ids;type:text[]"`
	ScopeCategoryIDs  pq.StringArray  `gorm:"column:scope_category_ids;type:text[]"`
	ScopeBrandIDs     pq.StringArray  `gorm:"column:scope_brand_ids;type:text[]"`
	Config            json.RawMessage `gorm:"column:config;type:jsonb;not null"`
	ExposeToCreators  bool            `gorm:"column:expose_to_creators;not null;default:false"`
	AllowedCreatorIDs pq.StringArray  `gorm:"column:allowed_creator_ids;type:text[]"`
	HumanReadableRule string          `gorm:"column:human_readable_rule"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Promotion) TableName() string {
	return "promotions"
}
