// Package corridor holds the static transfer corridors and the fallback
// exchange rates used when no live provider quote is available.
package corridor

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBounds    = errors.New("corridor: min amount must be positive and below max amount")
	ErrDuplicateCountry = errors.New("corridor: duplicate country")
	ErrMissingCurrency  = errors.New("corridor: currency is required")
)

// Corridor describes a supported destination country.
type Corridor struct {
	Country          string
	Currency         string
	DeliveryEstimate string
	MinAmount        decimal.Decimal
	MaxAmount        decimal.Decimal
}

// Allows reports whether amount (in USD) is within the corridor limits, inclusive.
func (c Corridor) Allows(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(c.MinAmount) && amount.LessThanOrEqual(c.MaxAmount)
}

// Table is an ordered, read-only set of corridors keyed by country name.
// Lookups are exact and case-sensitive.
type Table struct {
	corridors []Corridor
	index     map[string]int
}

// NewTable builds a table preserving declaration order.
func NewTable(corridors ...Corridor) (*Table, error) {
	t := &Table{
		corridors: make([]Corridor, 0, len(corridors)),
		index:     make(map[string]int, len(corridors)),
	}
	for _, c := range corridors {
		if c.Currency == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingCurrency, c.Country)
		}
		if !c.MinAmount.IsPositive() || !c.MinAmount.LessThan(c.MaxAmount) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBounds, c.Country)
		}
		if _, exists := t.index[c.Country]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCountry, c.Country)
		}
		t.index[c.Country] = len(t.corridors)
		t.corridors = append(t.corridors, c)
	}
	return t, nil
}

// Lookup returns the corridor for country.
func (t *Table) Lookup(country string) (Corridor, bool) {
	i, ok := t.index[country]
	if !ok {
		return Corridor{}, false
	}
	return t.corridors[i], true
}

// List returns a copy of the corridors in declaration order.
func (t *Table) List() []Corridor {
	out := make([]Corridor, len(t.corridors))
	copy(out, t.corridors)
	return out
}

// Countries returns the supported country names in declaration order.
func (t *Table) Countries() []string {
	names := make([]string, len(t.corridors))
	for i, c := range t.corridors {
		names[i] = c.Country
	}
	return names
}

var (
	defaultMin = decimal.NewFromInt(10)
	defaultMax = decimal.NewFromInt(10000)
)

// DefaultTable returns the corridors served in production.
func DefaultTable() *Table {
	t, err := NewTable(
		Corridor{Country: "Mexico", Currency: "MXN", DeliveryEstimate: "1-2 business days", MinAmount: defaultMin, MaxAmount: defaultMax},
		Corridor{Country: "Colombia", Currency: "COP", DeliveryEstimate: "1-3 business days", MinAmount: defaultMin, MaxAmount: defaultMax},
		Corridor{Country: "Brazil", Currency: "BRL", DeliveryEstimate: "1-3 business days", MinAmount: defaultMin, MaxAmount: defaultMax},
		Corridor{Country: "United Kingdom", Currency: "GBP", DeliveryEstimate: "Same day", MinAmount: defaultMin, MaxAmount: defaultMax},
		Corridor{Country: "Europe", Currency: "EUR", DeliveryEstimate: "1 business day", MinAmount: defaultMin, MaxAmount: defaultMax},
	)
	if err != nil {
		panic(err)
	}
	return t
}
