package order_test

import (
	"testing"

	"bakery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestOrderItem_Defaults(t *testing.T) {
	item := order.NewItem()

	assert.Equal(t, 1, item.Quantity())
	assert.Nil(t, item.Product())
	assert.Empty(t, item.Comment())
}

func TestOrderItem_TotalPrice(t *testing.T) {
	t.Run("quantity times price", func(t *testing.T) {
		item := itemOf(testProduct(1, 450), 3)
		assert.Equal(t, 1350, item.TotalPrice())
	})

	t.Run("missing product defaults to zero", func(t *testing.T) {
		item := order.NewItem()
		item.SetQuantity(5)
		assert.Equal(t, 0, item.TotalPrice())
	})
}
