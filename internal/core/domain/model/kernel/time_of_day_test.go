package kernel_test

import (
	"testing"

	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeOfDay(t *testing.T) {
	t.Run("should create valid time", func(t *testing.T) {
		tod, err := kernel.NewTimeOfDay(16, 0)

		require.NoError(t, err)
		assert.Equal(t, 16, tod.Hour())
		assert.Equal(t, 0, tod.Minute())
		assert.True(t, tod.IsSet())
		assert.Equal(t, "16:00", tod.String())
	})

	t.Run("should fail with hour out of range", func(t *testing.T) {
		_, err := kernel.NewTimeOfDay(24, 0)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with negative minute", func(t *testing.T) {
		_, err := kernel.NewTimeOfDay(12, -1)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is unset", func(t *testing.T) {
		var tod kernel.TimeOfDay
		assert.False(t, tod.IsSet())
	})
}

func TestParseTimeOfDay(t *testing.T) {
	t.Run("round trips String", func(t *testing.T) {
		tod, err := kernel.ParseTimeOfDay("07:30")

		require.NoError(t, err)
		assert.Equal(t, 7, tod.Hour())
		assert.Equal(t, 30, tod.Minute())
		assert.Equal(t, "07:30", tod.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.ParseTimeOfDay("afternoon")
		require.Error(t, err)
	})

	t.Run("rejects out of range parts", func(t *testing.T) {
		_, err := kernel.ParseTimeOfDay("25:00")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
