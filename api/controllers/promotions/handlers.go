package promotions

import (
	"context"
	"net/http"

	promotionsdto "github.com/angelmondragon/packfinderz-promotions/api/controllers/promotions/dto"
	"github.com/angelmondragon/packfinderz-promotions/api/responses"
	"github.com/angelmondragon/packfinderz-promotions/api/validators"
	promos "github.com/angelmondragon/packfinderz-promotions/internal/promotions"
	"github.com/angelmondragon/packfinderz-promotions/internal/promotions/evaluator"
	pkgerrors "github.com/angelmondragon/packfinderz-promotions/pkg/errors"
	"github.com/angelmondragon/packfinderz-promotions/pkg/logger"
)

// Evaluator is satisfied by *evaluator.Service.
type Evaluator interface {
	Evaluate(ctx context.Context, input promos.EvaluationInput) evaluator.Evaluation
}

// Evaluate prices one line item against the merchant's live promotions.
// Only malformed requests produce an error response.
func Evaluate(svc Evaluator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "evaluation service unavailable"))
			return
		}

		var payload promotionsdto.EvaluateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := toEvaluationInput(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newEvaluation(svc.Evaluate(r.Context(), input)))
	}
}
