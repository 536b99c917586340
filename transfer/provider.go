package transfer

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mybambu/transfer-tools/recipient"
)

// BankRequirements tells the orchestrator which bank details a currency needs.
type BankRequirements interface {
	Requirements(currency string) (recipient.Requirements, bool)
	Validate(currency string, details map[string]string) recipient.Validation
}

// ErrNoReceipt is reported when a provider returns neither a receipt nor an error.
var ErrNoReceipt = errors.New("provider returned no receipt")

// ProviderRequest is a normalized transfer handed to the payment provider.
type ProviderRequest struct {
	Amount           decimal.Decimal
	SourceCurrency   string
	TargetCurrency   string
	RecipientName    string
	RecipientCountry string
	Reference        string
	Bank             BankFields
}

// ProviderReceipt is what the provider reports for an executed transfer.
type ProviderReceipt struct {
	TargetAmount      decimal.Decimal
	Rate              decimal.Decimal
	Fee               decimal.Decimal
	EstimatedDelivery string
	TransferID        string
}

// PaymentProvider executes real transfers. Timeouts and cancellation belong
// to the implementation.
type PaymentProvider interface {
	SendMoney(ctx context.Context, req ProviderRequest) (*ProviderReceipt, error)
}
