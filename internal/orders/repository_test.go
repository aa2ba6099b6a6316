package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItems(t *testing.T) {
	valid := CheckoutItem{ProductID: 1, Size: "M", Quantity: 2}

	testCases := []struct {
		name      string
		items     []CheckoutItem
		wantField string
		wantIndex int
	}{
		{
			name:  "single valid item",
			items: []CheckoutItem{valid},
		},
		{
			name:  "size needs trimming but is not empty",
			items: []CheckoutItem{{ProductID: 1, Size: " M ", Quantity: 1}},
		},
		{
			name:      "zero product id",
			items:     []CheckoutItem{{ProductID: 0, Size: "M", Quantity: 1}},
			wantField: "productId",
		},
		{
			name:      "negative product id",
			items:     []CheckoutItem{{ProductID: -4, Size: "M", Quantity: 1}},
			wantField: "productId",
		},
		{
			name:      "blank size",
			items:     []CheckoutItem{{ProductID: 1, Size: "   ", Quantity: 1}},
			wantField: "size",
		},
		{
			name:      "zero quantity",
			items:     []CheckoutItem{{ProductID: 1, Size: "M", Quantity: 0}},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			items:     []CheckoutItem{{ProductID: 1, Size: "M", Quantity: -1}},
			wantField: "quantity",
		},
		{
			name:      "reports the first offending item",
			items:     []CheckoutItem{valid, {ProductID: 1, Size: "", Quantity: 1}, {ProductID: 0}},
			wantField: "size",
			wantIndex: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateItems(tc.items)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var itemErr *ItemError
			require.ErrorAs(t, err, &itemErr)
			assert.Equal(t, tc.wantField, itemErr.Field)
			assert.Equal(t, tc.wantIndex, itemErr.Index)
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid item at index 2: bad quantity", (&ItemError{Index: 2, Field: "quantity"}).Error())
	assert.Equal(t, `product 7 size "M" not found`, (&NotFoundError{ProductID: 7, Size: "M"}).Error())
	assert.Equal(t, `insufficient stock for product 7 size "M" (available: 3)`,
		(&InsufficientStockError{ProductID: 7, Size: "M", Available: 3}).Error())
}
