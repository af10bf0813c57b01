package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/packfinderz-promotions/pkg/errors"
)

type samplePayload struct {
	MerchantID string `json:"merchant_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
	UnitPrice  string `json:"unit_price" validate:"required,positive_decimal"`
	Currency   string `json:"currency" validate:"omitempty,currency"`
}

func newRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newRequest(`{"merchant_id":"m-1","quantity":2,"unit_price":"14.99","currency":"usd"}`), &payload)

	require.NoError(t, err)
	assert.Equal(t, "m-1", payload.MerchantID)
	assert.Equal(t, "14.99", payload.UnitPrice)
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newRequest(`{"merchant_id":"m-1","quantity":1,"unit_price":"1","coupon":"x"}`), &payload)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newRequest(`{"quantity":0,"unit_price":"-3.00","currency":"XXX"}`), &payload)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["merchant_id"])
	assert.Equal(t, "must be greater than 0", details["quantity"])
	assert.Equal(t, "must be a positive decimal string", details["unit_price"])
	assert.Equal(t, "must be a supported ISO 4217 currency code", details["currency"])
}

func TestPositiveDecimalRejectsGarbage(t *testing.T) {
	var payload samplePayload
	err := DecodeJSONBody(newRequest(`{"merchant_id":"m-1","quantity":1,"unit_price":"ten"}`), &payload)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	details := typed.Details().(map[string]string)
	assert.Contains(t, details, "unit_price")
}
