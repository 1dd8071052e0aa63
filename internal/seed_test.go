package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProducts(t *testing.T) {
	products := DefaultProducts("TRY")
	require.Len(t, products, 4)
	want := map[string]struct {
		price string
		stock int
	}{
		"1": {"799.99", 5},
		"2": {"1299.99", 3},
		"3": {"199.99", 10},
		"4": {"249.99", 8},
	}
	for _, p := range products {
		w, ok := want[p.ID]
		require.True(t, ok, p.ID)
		assert.Equal(t, w.price, p.Price.String(), p.ID)
		assert.Equal(t, "TRY", p.Price.Currency)
		assert.Equal(t, w.stock, p.Stock, p.ID)
		assert.NotEmpty(t, p.Image)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: "10"
  name: Tablet
  price: "₺ 499.50"
  stock: 2
- id: "11"
  name: Cable
  price: "call us"
  stock: 0
`), 0600))

	products, err := LoadCatalog(path, "TRY")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(49950), products[0].Price.Minor)
	assert.True(t, products[1].Price.IsZero())
	assert.Equal(t, 0, products[1].Stock)
}

func TestLoadCatalogRejects(t *testing.T) {
	cases := map[string]string{
		"duplicate id":   "- id: a\n- id: a\n",
		"missing id":     "- name: nameless\n",
		"negative stock": "- id: a\n  stock: -1\n",
		"not a list":     "id: a\n",
		"price overflow": "- id: a\n  price: \"99999999999999999999.99\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0600))
			_, err := LoadCatalog(path, "TRY")
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"), "TRY")
	assert.Error(t, err)
}
