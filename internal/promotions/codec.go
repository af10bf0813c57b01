package promotions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

type scopeJSON struct {
	Global      bool     `json:"global"`
	MerchantIDs []string `json:"merchant_ids,omitempty"`
	ProductIDs  []string `json:"product_ids,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	BrandIDs    []string `json:"brand_ids,omitempty"`
}

type promotionJSON struct {
	ID                string              `json:"id"`
	MerchantID        string              `json:"merchant_id"`
	Name              string              `json:"name"`
	Description       string              `json:"description,omitempty"`
	StartAt           string              `json:"start_at"`
	EndAt             string              `json:"end_at"`
	Channels          []string            `json:"channels"`
	Scope             scopeJSON           `json:"scope"`
	Kind              enums.PromotionKind `json:"kind"`
	Config            json.RawMessage     `json:"config"`
	ExposeToCreators  bool                `json:"expose_to_creators"`
	AllowedCreatorIDs []string            `json:"allowed_creator_ids,omitempty"`
	HumanReadableRule string              `json:"human_readable_rule"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// MarshalJSON tags the config with its kind so the variant survives a round trip.
func (p Promotion) MarshalJSON() ([]byte, error) {
	config, err := EncodeConfig(p.Config)
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w", p.ID, err)
	}
	return json.Marshal(promotionJSON{
		ID:          p.ID,
		MerchantID:  p.MerchantID,
		Name:        p.Name,
		Description: p.Description,
		StartAt:     p.StartAt,
		EndAt:       p.EndAt,
		Channels:    p.Channels,
		Scope: scopeJSON{
			Global:      p.Scope.Global,
			MerchantIDs: p.Scope.MerchantIDs,
			ProductIDs:  p.Scope.ProductIDs,
			CategoryIDs: p.Scope.CategoryIDs,
			BrandIDs:    p.Scope.BrandIDs,
		},
		Kind:              p.Kind(),
		Config:            config,
		ExposeToCreators:  p.ExposeToCreators,
		AllowedCreatorIDs: p.AllowedCreatorIDs,
		HumanReadableRule: p.HumanReadableRule,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	})
}

// UnmarshalJSON restores the config variant named by the kind tag.
func (p *Promotion) UnmarshalJSON(data []byte) error {
	var wire promotionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	config, err := DecodeConfig(wire.Kind, wire.Config)
	if err != nil {
		return fmt.Errorf("promotion %s: %w", wire.ID, err)
	}
	*p = Promotion{
		ID:          wire.ID,
		MerchantID:  wire.MerchantID,
		Name:        wire.Name,
		Description: wire.Description,
		StartAt:     wire.StartAt,
		EndAt:       wire.EndAt,
		Channels:    wire.Channels,
		Scope: Scope{
			Global:      wire.Scope.Global,
			MerchantIDs: wire.Scope.MerchantIDs,
			ProductIDs:  wire.Scope.ProductIDs,
			CategoryIDs: wire.Scope.CategoryIDs,
			BrandIDs:    wire.Scope.BrandIDs,
		},
		Config:            config,
		ExposeToCreators:  wire.ExposeToCreators,
		AllowedCreatorIDs: wire.AllowedCreatorIDs,
		HumanReadableRule: wire.HumanReadableRule,
		CreatedAt:         wire.CreatedAt,
		UpdatedAt:         wire.UpdatedAt,
	}
	return nil
}
