package corridor_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybambu/transfer-tools/corridor"
)

func TestDefaultTable_DeclarationOrder(t *testing.T) {
	table := corridor.DefaultTable()

	assert.Equal(t,
		[]string{"Mexico", "Colombia", "Brazil", "United Kingdom", "Europe"},
		table.Countries())

	list := table.List()
	require.Len(t, list, 5)
	assert.Equal(t, "MXN", list[0].Currency)
	assert.Equal(t, "1-2 business days", list[0].DeliveryEstimate)
	assert.Equal(t, "Same day", list[3].DeliveryEstimate)
}

func TestTable_LookupIsCaseSensitive(t *testing.T) {
	table := corridor.DefaultTable()

	c, ok := table.Lookup("United Kingdom")
	require.True(t, ok)
	assert.Equal(t, "GBP", c.Currency)

	_, ok = table.Lookup("mexico")
	assert.False(t, ok)
	_, ok = table.Lookup("Japan")
	assert.False(t, ok)
}

func TestTable_ListReturnsCopy(t *testing.T) {
	table := corridor.DefaultTable()

	list := table.List()
	list[0].Currency = "XXX"

	c, _ := table.Lookup("Mexico")
	assert.Equal(t, "MXN", c.Currency)
}

func TestCorridor_AllowsIsInclusive(t *testing.T) {
	c, _ := corridor.DefaultTable().Lookup("Mexico")

	cases := map[string]bool{
		"9.99":     false,
		"10":       true,
		"500":      true,
		"10000":    true,
		"10000.01": false,
		"50000":    false,
	}
	for amount, want := range cases {
		assert.Equal(t, want, c.Allows(decimal.RequireFromString(amount)), amount)
	}
}

func TestNewTable_RejectsInvalidCorridors(t *testing.T) {
	ten := decimal.NewFromInt(10)

	_, err := corridor.NewTable(corridor.Corridor{Country: "X", Currency: "XXX", MinAmount: ten, MaxAmount: ten})
	assert.True(t, errors.Is(err, corridor.ErrInvalidBounds))

	_, err = corridor.NewTable(corridor.Corridor{Country: "X", MinAmount: ten, MaxAmount: ten.Add(ten)})
	assert.True(t, errors.Is(err, corridor.ErrMissingCurrency))

	dup := corridor.Corridor{Country: "X", Currency: "XXX", MinAmount: ten, MaxAmount: ten.Add(ten)}
	_, err = corridor.NewTable(dup, dup)
	assert.True(t, errors.Is(err, corridor.ErrDuplicateCountry))
}

func TestDefaultRates(t *testing.T) {
	rates := corridor.DefaultRates()

	cop, ok := rates.Lookup("COP")
	require.True(t, ok)
	assert.True(t, cop.Equal(decimal.NewFromInt(3750)))

	_, ok = rates.Lookup("JPY")
	assert.False(t, ok)

	assert.Equal(t, []string{"MXN", "COP", "BRL", "GBP", "EUR"}, rates.Currencies())
}

func TestDefaultTables_EveryCorridorHasRate(t *testing.T) {
	rates := corridor.DefaultRates()
	for _, c := range corridor.DefaultTable().List() {
		_, ok := rates.Lookup(c.Currency)
		assert.True(t, ok, "missing fallback rate for %s", c.Currency)
	}
}
