package promotions

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	promotionsdto "github.com/angelmondragon/packfinderz-promotions/api/controllers/promotions/dto"
	promos "github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-promotions/pkg/errors"
)

func toEvaluationInput(payload promotionsdto.EvaluateRequest) (promos.EvaluationInput, error) {
	unitPrice, err := decimal.NewFromString(strings.TrimSpace(payload.UnitPrice))
	if err != nil {
		return promos.EvaluationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid unit_price").
			WithDetails(map[string]string{"unit_price": "must be a positive decimal string"})
	}

	input := promos.EvaluationInput{
		MerchantID:     strings.TrimSpace(payload.MerchantID),
		ProductID:      strings.TrimSpace(payload.ProductID),
		CategoryIDs:    payload.CategoryIDs,
		BrandID:        strings.TrimSpace(payload.BrandID),
		Channel:        payload.Channel,
		Quantity:       payload.Quantity,
		UnitPrice:      unitPrice,
		IsCreatorAgent: payload.IsCreatorAgent,
		CreatorID:      strings.TrimSpace(payload.CreatorID),
	}

	if payload.Currency != "" {
		currency, err := enums.ParseCurrency(payload.Currency)
		if err != nil {
			return promos.EvaluationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency").
				WithDetails(map[string]string{"currency": "must be a supported ISO 4217 currency code"})
		}
		input.Currency = currency
	}

	if now := strings.TrimSpace(payload.Now); now != "" {
		parsed, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return promos.EvaluationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid now").
				WithDetails(map[string]string{"now": "must be an RFC 3339 timestamp"})
		}
		input.Now = parsed
	}

	return input, nil
}
