package internal

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	valid := map[string]int{
		"1":     1,
		"42":    42,
		"  7":   7,
		"+3":    3,
		"3 pcs": 3,
		"2.9":   2,
		"007":   7,
	}
	for in, want := range valid {
		got, err := ParseQuantity(in)
		if assert.NoError(t, err, in) {
			assert.Equal(t, want, got, in)
		}
	}

	for _, in := range []string{"", " ", "abc", "0", "-1", "-", "+", "x5", "-99999999999999999999999"} {
		_, err := ParseQuantity(in)
		assert.ErrorIs(t, err, ErrInvalidQuantity, in)
	}

	got, err := ParseQuantity("99999999999999999999999")
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)
}

func TestModuleRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok := moduleRoot(nested)
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestStockLabel(t *testing.T) {
	assert.Equal(t, "3 in stock", StockLabel(3))
	assert.Equal(t, "out of stock", StockLabel(0))
}
