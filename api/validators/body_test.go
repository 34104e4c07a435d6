package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/streetsneakers/sneakers-backend/pkg/errors"
)

type addItemBody struct {
	VariantID string `json:"variant_id" validate:"required,slug,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=99"`
}

func decode(t *testing.T, body string) (addItemBody, error) {
	t.Helper()
	var dest addItemBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return dest, DecodeJSONBody(req, &dest)
}

func TestDecodeJSONBodyAcceptsValidPayload(t *testing.T) {
	dest, err := decode(t, `{"variant_id":"af1-white-42","quantity":2}`)
	require.NoError(t, err)
	assert.Equal(t, "af1-white-42", dest.VariantID)
	assert.Equal(t, 2, dest.Quantity)
}

func TestDecodeJSONBodyReportsFieldErrors(t *testing.T) {
	_, err := decode(t, `{"variant_id":"bad id","quantity":0}`)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "may only contain letters, digits, '-' and '_'", details["variant_id"])
	assert.Equal(t, "must be at least 1", details["quantity"])
}

func TestDecodeJSONBodyRejectsMalformedInput(t *testing.T) {
	for _, body := range []string{"", "{", `{"variant_id":"a","quantity":1,"extra":true}`, `{"quantity":"two"}`} {
		_, err := decode(t, body)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err), body)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abc  ", 0))
	assert.Equal(t, "ab", SanitizeString(" abc ", 2))
	assert.Empty(t, SanitizeString("   ", 5))
}
