package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/mybambu/transfer-tools/recipient"
)

// Outcome is the result of a send_money invocation. It is exactly one of
// NeedsInfo, Completed, Simulated or Rejected.
type Outcome interface {
	outcome()
}

// NeedsInfo means bank details are missing or invalid; nothing was executed.
type NeedsInfo struct {
	Currency     string
	Instructions string
	Fields       []recipient.Field
	Missing      []string
	Invalid      []string
}

// Completed is a real transfer accepted by the provider. Monetary fields are
// the provider's own figures.
type Completed struct {
	Currency              string
	RecipientAmount       decimal.Decimal
	Rate                  decimal.Decimal
	Fee                   decimal.Decimal
	DeliveryEstimate      string
	ProviderTransactionID string
}

// SimulationCause says why a transfer was simulated instead of executed.
type SimulationCause int

const (
	CauseDemoMode SimulationCause = iota
	CauseProviderError
)

// Simulated is an estimate computed from static rates. No money moved.
type Simulated struct {
	Currency         string
	RecipientAmount  decimal.Decimal
	Rate             decimal.Decimal
	Fee              decimal.Decimal
	DeliveryEstimate string
	Cause            SimulationCause
	Reason           string
}

// RejectKind classifies caller input errors.
type RejectKind string

const (
	RejectUnsupportedCountry  RejectKind = "unsupported_country"
	RejectAmountOutOfRange    RejectKind = "amount_out_of_range"
	RejectUnsupportedCurrency RejectKind = "unsupported_currency"
)

// Rejected is a caller input error.
type Rejected struct {
	Kind   RejectKind
	Detail string
}

func (NeedsInfo) outcome() {}
func (Completed) outcome() {}
func (Simulated) outcome() {}
func (Rejected) outcome()  {}
