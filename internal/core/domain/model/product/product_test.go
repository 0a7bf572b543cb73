package product_test

import (
	"strings"
	"testing"

	"bakery/internal/core/domain/model/product"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Validate(t *testing.T) {
	t.Run("valid product passes", func(t *testing.T) {
		p := product.New()
		p.SetName("Croissant")
		p.SetPrice(350)

		require.NoError(t, p.Validate())
	})

	t.Run("missing name fails", func(t *testing.T) {
		p := product.New()
		p.SetPrice(350)

		err := p.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValidationFailed)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("overlong name fails", func(t *testing.T) {
		p := product.New()
		p.SetName(strings.Repeat("x", 256))
		p.SetPrice(350)

		require.Error(t, p.Validate())
	})

	t.Run("price outside range fails", func(t *testing.T) {
		p := product.New()
		p.SetName("Wedding Cake")
		p.SetPrice(product.MaxPrice + 1)

		require.Error(t, p.Validate())

		p.SetPrice(-1)
		require.Error(t, p.Validate())

		p.SetPrice(product.MaxPrice)
		require.NoError(t, p.Validate())
	})
}

func TestProduct_IsEqual(t *testing.T) {
	a := product.Restore(2, 1, "Bun", 100)
	b := product.Restore(2, 1, "Renamed Bun", 200)
	c := product.Restore(2, 2, "Bun", 100)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
	assert.False(t, a.IsEqual(nil))
}
