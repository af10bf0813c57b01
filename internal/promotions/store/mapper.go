package store

import (
	"fmt"
	"time"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/pkg/db/models"
	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
)

func toDomain(row models.Promotion) (promotions.Promotion, error) {
	kind, err := enums.ParsePromotionKind(row.Kind)
	if err != nil {
		return promotions.Promotion{}, err
	}
	config, err := promotions.DecodeConfig(kind, row.Config)
	if err != nil {
		return promotions.Promotion{}, err
	}
	return promotions.Promotion{
		ID:          row.ID,
		MerchantID:  row.MerchantID,
		Name:        row.Name,
		Description: row.Description,
		StartAt:     formatInstant(row.StartAt),
		EndAt:       formatInstant(row.EndAt),
		Channels:    []string(row.Channels),
		Scope: promotions.Scope{
			Global:      row.ScopeGlobal,
			MerchantIDs: []string(row.ScopeMerchantIDs),
			ProductIDs:  []string(row.ScopeProductIDs),
			CategoryIDs: []string(row.ScopeCategoryIDs),
			BrandIDs:    []string(row.ScopeBrandIDs),
		},
		Config:            config,
		ExposeToCreators:  row.ExposeToCreators,
		AllowedCreatorIDs: []string(row.AllowedCreatorIDs),
		HumanReadableRule: row.HumanReadableRule,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}

// toModel is the inverse of toDomain.
func toModel(p promotions.Promotion) (models.Promotion, error) {
	window, err := promotions.ParseWindow(p.StartAt, p.EndAt)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("promotion %s: %w", p.ID, err)
	}
	config, err := promotions.EncodeConfig(p.Config)
	if err != nil {
		return models.Promotion{}, fmt.Errorf("promotion %s: %w", p.ID, err)
	}
	return models.Promotion{
		ID:                p.ID,
		MerchantID:        p.MerchantID,
		Name:              p.Name,
		Description:       p.Description,
		Kind:              p.Kind().String(),
		StartAt:           window.Start.UTC(),
		EndAt:             window.End.UTC(),
		Channels:          p.Channels,
		ScopeGlobal:       p.Scope.Global,
		ScopeMerchantIDs:  p.Scope.MerchantIDs,
		ScopeProductIDs:   p.Scope.ProductIDs,
		ScopeCategoryIDs:  p.Scope.CategoryIDs,
		ScopeBrandIDs:     p.Scope.BrandIDs,
		Config:            config,
		ExposeToCreators:  p.ExposeToCreators,
		AllowedCreatorIDs: p.AllowedCreatorIDs,
		HumanReadableRule: p.HumanReadableRule,
	}, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
