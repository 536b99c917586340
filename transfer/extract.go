package transfer

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// BankDetails is the caller-supplied recipient bank payload. Its shape depends
// on the payout currency.
type BankDetails map[string]string

// BankFields is the provider-facing shape of the recipient's bank details.
type BankFields struct {
	Account string
	Code    string
	Extra   map[string]string
}

// Extractor maps BankDetails to BankFields for one currency.
type Extractor func(details BankDetails) BankFields

var extractors = map[string]Extractor{
	"MXN": func(d BankDetails) BankFields {
		return BankFields{Account: d["clabe"]}
	},
	"GBP": func(d BankDetails) BankFields {
		return BankFields{Account: d["accountNumber"], Code: d["sortCode"]}
	},
	"BRL": func(d BankDetails) BankFields {
		return BankFields{Account: d["accountNumber"], Code: d["cpf"]}
	},
	"EUR": func(d BankDetails) BankFields {
		return BankFields{Account: d["iban"]}
	},
	"COP": func(d BankDetails) BankFields {
		accountType := d["accountType"]
		if accountType == "" {
			accountType = "SAVINGS"
		}
		return BankFields{
			Account: d["accountNumber"],
			Extra: map[string]string{
				"accountType":      accountType,
				"phoneNumber":      d["phoneNumber"],
				"idDocumentNumber": d["idDocumentNumber"],
				"address":          d["address"],
				"city":             d["city"],
				"postCode":         d["postCode"],
			},
		}
	},
}

// Extract converts details for currency. It is a pure function of its inputs.
func Extract(currency string, details BankDetails) (BankFields, error) {
	fn, ok := extractors[currency]
	if !ok {
		return BankFields{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return fn(details), nil
}
