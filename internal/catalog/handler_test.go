package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CarlPerezV/babyjo-back/internal/domain"
)

func decodeRequest(t *testing.T, body string) createProductRequest {
	t.Helper()
	var req createProductRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestCreateProductRequestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name: "valid with sizes",
			body: `{"name":"Onesie","price":19.99,"rating":4.5,"sizes":[{"size":"M","quantity":3}]}`,
		},
		{
			name: "valid without sizes",
			body: `{"name":"Onesie","price":0}`,
		},
		{
			name:    "blank name",
			body:    `{"name":"   ","price":10}`,
			wantMsg: "name is required",
		},
		{
			name:    "negative price",
			body:    `{"name":"Onesie","price":-1}`,
			wantMsg: "price must be >= 0",
		},
		{
			name:    "rating above five",
			body:    `{"name":"Onesie","price":10,"rating":5.1}`,
			wantMsg: "rating must be between 0 and 5",
		},
		{
			name:    "negative rating",
			body:    `{"name":"Onesie","price":10,"rating":-0.5}`,
			wantMsg: "rating must be between 0 and 5",
		},
		{
			name:    "blank size name",
			body:    `{"name":"Onesie","price":10,"sizes":[{"size":" ","quantity":1}]}`,
			wantMsg: "size name is required",
		},
		{
			name:    "negative size quantity",
			body:    `{"name":"Onesie","price":10,"sizes":[{"size":"M","quantity":-1}]}`,
			wantMsg: "size quantity must be >= 0",
		},
		{
			name:    "image and image_url disagree",
			body:    `{"name":"Onesie","price":10,"image":"a.png","image_url":"b.png"}`,
			wantMsg: "image and image_url differ; use image_url",
		},
		{
			name: "image and image_url agree",
			body: `{"name":"Onesie","price":10,"image":"a.png","image_url":"a.png"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := decodeRequest(t, tc.body)
			_, msg := req.validate()
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

func TestValidateNormalizesSizes(t *testing.T) {
	req := decodeRequest(t, `{
		"name": "  Onesie  ",
		"price": 10,
		"sizes": [
			{"size": " M ", "quantity": 2},
			{"size": "S", "stock": 7},
			{"size": "M", "quantity": 5},
			{"size": "L"}
		]
	}`)

	in, msg := req.validate()
	require.Empty(t, msg)

	assert.Equal(t, "Onesie", in.Name)
	assert.True(t, in.Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, []domain.SizeStock{
		{Size: "M", Quantity: 5},
		{Size: "S", Quantity: 7},
		{Size: "L", Quantity: 0},
	}, in.Sizes)
}

func TestValidatePrefersStockAlias(t *testing.T) {
	req := decodeRequest(t, `{"name":"Onesie","price":10,"sizes":[{"size":"M","quantity":2,"stock":9}]}`)

	in, msg := req.validate()
	require.Empty(t, msg)
	require.Len(t, in.Sizes, 1)
	assert.Equal(t, 9, in.Sizes[0].Quantity)
}
