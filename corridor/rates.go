package corridor

import "github.com/shopspring/decimal"

// Rate is a fallback USD exchange rate: 1 USD = PerUSD units of Currency.
type Rate struct {
	Currency string
	PerUSD   decimal.Decimal
}

// Rates is the static rate table. It is only consulted for estimates;
// real transfers use the provider's quote.
type Rates struct {
	order []string
	rates map[string]decimal.Decimal
}

// NewRates builds a rate table preserving declaration order. A repeated
// currency overrides the earlier value.
func NewRates(rates ...Rate) *Rates {
	r := &Rates{rates: make(map[string]decimal.Decimal, len(rates))}
	for _, rate := range rates {
		if _, exists := r.rates[rate.Currency]; !exists {
			r.order = append(r.order, rate.Currency)
		}
		r.rates[rate.Currency] = rate.PerUSD
	}
	return r
}

// Lookup returns the fallback rate for currency.
func (r *Rates) Lookup(currency string) (decimal.Decimal, bool) {
	rate, ok := r.rates[currency]
	return rate, ok
}

// Currencies returns the currencies with a fallback rate in declaration order.
func (r *Rates) Currencies() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRates returns the demo/fallback rates.
func DefaultRates() *Rates {
	return NewRates(
		Rate{Currency: "MXN", PerUSD: decimal.RequireFromString("17.2")},
		Rate{Currency: "COP", PerUSD: decimal.NewFromInt(3750)},
		Rate{Currency: "BRL", PerUSD: decimal.RequireFromString("5.1")},
		Rate{Currency: "GBP", PerUSD: decimal.RequireFromString("0.79")},
		Rate{Currency: "EUR", PerUSD: decimal.RequireFromString("0.92")},
	)
}
