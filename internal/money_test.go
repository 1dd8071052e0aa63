package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1299.99", 129999},
		{"799.99 TL", 79999},
		{"₺ 249.99", 24999},
		{"$19", 1900},
		{"12.", 1200},
		{".5", 50},
		{"1.005", 101},
		{"12.3.4", 1230},
		{"-3.50", -350},
		{"free", 0},
		{"", 0},
		{"-", 0},
		{"92233720368547758.07", 9223372036854775807},
		{"99999999999999999999.99", 0},
		{"-99999999999999999999.99", 0},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParsePrice(tc.in, "TRY")
			assert.Equal(t, tc.want, got.Minor)
			assert.Equal(t, "TRY", got.Currency)
		})
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "2799.97", Money{Minor: 279997}.String())
	assert.Equal(t, "0.00", Money{}.String())
	assert.Equal(t, "0.05", Money{Minor: 5}.String())
}

func TestTotal(t *testing.T) {
	laptop := Product{ID: "2", Price: ParsePrice("1299.99", "TRY")}
	headphones := Product{ID: "3", Price: ParsePrice("199.99", "TRY")}

	lines := []CartLine{
		{Product: laptop, Quantity: 2},
		{Product: headphones, Quantity: 1},
	}
	total := Total(lines, "TRY")
	assert.Equal(t, "2799.97", total.String())
	assert.Equal(t, "TRY", total.Currency)

	t.Run("order invariant", func(t *testing.T) {
		reversed := []CartLine{lines[1], lines[0]}
		assert.Equal(t, total, Total(reversed, "TRY"))
	})

	t.Run("zero quantity counts once", func(t *testing.T) {
		got := Total([]CartLine{{Product: headphones}}, "TRY")
		assert.Equal(t, int64(19999), got.Minor)
	})

	t.Run("unparsable price adds nothing", func(t *testing.T) {
		junk := Product{ID: "x", Price: ParsePrice("n/a", "TRY")}
		got := Total(append(lines, CartLine{Product: junk, Quantity: 4}), "TRY")
		assert.Equal(t, total, got)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Money{Currency: "TRY"}, Total(nil, "TRY"))
	})
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(Money{Minor: 129999, Currency: "TRY"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1299.99","minor":129999,"currency":"TRY"}`, string(data))

	var m Money
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, Money{Minor: 129999, Currency: "TRY"}, m)
}
