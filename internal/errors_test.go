package internal

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsPrompt(t *testing.T) {
	t.Run("sentinel keeps its message", func(t *testing.T) {
		pe, ok := AsPrompt(ErrInvalidQuantity)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, pe.Code)
		assert.Equal(t, "please enter a valid quantity", pe.Message)
	})

	t.Run("stock limit carries the maximum", func(t *testing.T) {
		err := &StockLimitError{Max: 3}
		assert.ErrorIs(t, err, ErrStockLimit)
		pe, ok := AsPrompt(err)
		require.True(t, ok)
		assert.Equal(t, "maximum stock quantity: 3", pe.Message)
		assert.Equal(t, http.StatusBadRequest, pe.Code)
		assert.False(t, pe.Prompt)
	})

	t.Run("duplicate is a prompt", func(t *testing.T) {
		err := &duplicateError{sentinel: ErrAlreadyInCart, name: "Laptop", where: "the cart"}
		assert.ErrorIs(t, err, ErrAlreadyInCart)
		pe, ok := AsPrompt(fmt.Errorf("add: %w", err))
		require.True(t, ok)
		assert.True(t, pe.Prompt)
		assert.Equal(t, http.StatusConflict, pe.Code)
		assert.Equal(t, "add: Laptop is already in the cart", pe.Message)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := AsPrompt(errors.New("boom"))
		assert.False(t, ok)
	})
}
