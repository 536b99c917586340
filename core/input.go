package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// BaseInput provides common fields for all tool inputs.
// Tools embed this struct to accept the agent's reasoning alongside arguments.
type BaseInput struct {
	// Thought contains the agent's reasoning about why it's using this tool.
	Thought string `json:"thought,omitempty"`
}

// ExchangeRateInput is the input of get_exchange_rate.
type ExchangeRateInput struct {
	BaseInput
	TargetCurrency string `json:"target_currency"`
}

// SendMoneyInput is the input of send_money.
type SendMoneyInput struct {
	BaseInput
	// Amount accepts a JSON number or a numeric string.
	Amount        decimal.Decimal `json:"amount"`
	ToCountry     string          `json:"to_country"`
	RecipientName string          `json:"recipient_name"`
	BankDetails   map[string]Text `json:"bank_details,omitempty"`
}

// BankDetailStrings flattens BankDetails into plain strings.
func (in SendMoneyInput) BankDetailStrings() map[string]string {
	out := make(map[string]string, len(in.BankDetails))
	for k, v := range in.BankDetails {
		out[k] = string(v)
	}
	return out
}

// Text is a string that also accepts bare JSON numbers and booleans, which
// agents sometimes send for account numbers. The number is kept verbatim so
// long digit strings do not lose precision.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a string, got %s", b)
	default:
		*t = Text(b)
		return nil
	}
}
