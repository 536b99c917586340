// Package transfer decides what happens to a send_money request: reject it,
// ask for bank details, execute it with the payment provider, or simulate it
// from static rates.
package transfer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mybambu/transfer-tools/corridor"
)

// Mode selects between live execution and demo simulation.
type Mode string

const (
	ModeDemo       Mode = "DEMO"
	ModeProduction Mode = "PRODUCTION"
)

// SourceCurrency is the currency every transfer is funded in.
const SourceCurrency = "USD"

var feeRate = decimal.RequireFromString("0.03")

// Config is the runtime configuration the orchestrator decides with.
type Config struct {
	Mode Mode
	// ProviderCredentials reports whether provider credentials were supplied.
	ProviderCredentials bool
}

// Request is a send_money invocation.
type Request struct {
	AmountUSD          decimal.Decimal
	DestinationCountry string
	RecipientName      string
	BankDetails        BankDetails
}

// Orchestrator runs the send_money decision sequence. It holds no mutable
// state and is safe for concurrent use.
type Orchestrator struct {
	config       Config
	corridors    *corridor.Table
	rates        *corridor.Rates
	requirements BankRequirements
	provider     PaymentProvider
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProvider sets the payment provider used in production mode.
func WithProvider(p PaymentProvider) Option {
	return func(o *Orchestrator) {
		o.provider = p
	}
}

// NewOrchestrator creates an orchestrator over the given tables.
func NewOrchestrator(cfg Config, corridors *corridor.Table, rates *corridor.Rates, requirements BankRequirements, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		config:       cfg,
		corridors:    corridors,
		rates:        rates,
		requirements: requirements,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// UsesRealProvider reports whether transfers are executed for real.
func (o *Orchestrator) UsesRealProvider() bool {
	return o.config.Mode == ModeProduction && o.config.ProviderCredentials && o.provider != nil
}

// ExecuteTransfer runs the decision sequence for req. Every path returns an
// Outcome; provider failures are downgraded to a Simulated outcome.
func (o *Orchestrator) ExecuteTransfer(ctx context.Context, req Request) Outcome {
	c, ok := o.corridors.Lookup(req.DestinationCountry)
	if !ok {
		return Rejected{
			Kind: RejectUnsupportedCountry,
			Detail: fmt.Sprintf("We don't support transfers to %s yet. Supported countries: %s",
				req.DestinationCountry, strings.Join(o.corridors.Countries(), ", ")),
		}
	}

	if !c.Allows(req.AmountUSD) {
		return Rejected{
			Kind: RejectAmountOutOfRange,
			Detail: fmt.Sprintf("Amount must be between $%s and $%s %s for %s (%s)",
				c.MinAmount, c.MaxAmount, SourceCurrency, c.Country, c.Currency),
		}
	}

	if !o.UsesRealProvider() {
		log.Printf("[TRANSFER] demo transfer: %s USD to %s (%s)", req.AmountUSD, c.Country, c.Currency)
		return o.simulate(c, req.AmountUSD, CauseDemoMode, "demo mode")
	}

	if needs, ok := o.checkBankDetails(c.Currency, req.BankDetails); !ok {
		return needs
	}

	bank, err := Extract(c.Currency, req.BankDetails)
	if err != nil {
		return Rejected{
			Kind:   RejectUnsupportedCurrency,
			Detail: fmt.Sprintf("Real transfers in %s are not available yet", c.Currency),
		}
	}

	log.Printf("[TRANSFER] executing real transfer: %s USD to %s (%s)", req.AmountUSD, c.Country, c.Currency)
	receipt, err := o.provider.SendMoney(ctx, ProviderRequest{
		Amount:           req.AmountUSD,
		SourceCurrency:   SourceCurrency,
		TargetCurrency:   c.Currency,
		RecipientName:    req.RecipientName,
		RecipientCountry: c.Country,
		Reference:        "MyBambu transfer to " + req.RecipientName,
		Bank:             bank,
	})
	if err == nil && receipt == nil {
		err = ErrNoReceipt
	}
	if err != nil {
		log.Printf("[TRANSFER] provider error, falling back to simulation: %v", err)
		return o.simulate(c, req.AmountUSD, CauseProviderError, "provider error: "+err.Error())
	}

	log.Printf("[TRANSFER] real transfer created: %s", receipt.TransferID)
	delivery := receipt.EstimatedDelivery
	if delivery == "" {
		delivery = c.DeliveryEstimate
	}
	return Completed{
		Currency:              c.Currency,
		RecipientAmount:       receipt.TargetAmount,
		Rate:                  receipt.Rate,
		Fee:                   receipt.Fee,
		DeliveryEstimate:      delivery,
		ProviderTransactionID: receipt.TransferID,
	}
}

// checkBankDetails returns NeedsInfo and false when details do not satisfy
// the currency's requirements.
func (o *Orchestrator) checkBankDetails(currency string, details BankDetails) (NeedsInfo, bool) {
	if o.requirements == nil {
		return NeedsInfo{}, true
	}
	reqs, ok := o.requirements.Requirements(currency)
	if !ok {
		return NeedsInfo{}, true
	}
	v := o.requirements.Validate(currency, details)
	if v.Valid {
		return NeedsInfo{}, true
	}
	log.Printf("[TRANSFER] bank details incomplete for %s: missing=%v invalid=%v", currency, v.MissingFields, v.InvalidFields)
	return NeedsInfo{
		Currency:     currency,
		Instructions: reqs.Instructions,
		Fields:       reqs.Fields,
		Missing:      v.MissingFields,
		Invalid:      v.InvalidFields,
	}, false
}

// simulate estimates a transfer with the static rate and a flat 3% fee.
func (o *Orchestrator) simulate(c corridor.Corridor, amount decimal.Decimal, cause SimulationCause, reason string) Outcome {
	rate, ok := o.rates.Lookup(c.Currency)
	if !ok {
		return Rejected{
			Kind:   RejectUnsupportedCurrency,
			Detail: fmt.Sprintf("No exchange rate available for %s", c.Currency),
		}
	}

	fee := amount.Mul(feeRate)
	return Simulated{
		Currency:         c.Currency,
		RecipientAmount:  amount.Sub(fee).Mul(rate),
		Rate:             rate,
		Fee:              fee,
		DeliveryEstimate: c.DeliveryEstimate,
		Cause:            cause,
		Reason:           reason,
	}
}
