package wise

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mybambu/transfer-tools/transfer"
)

var countryCodes = map[string]string{
	"COP": "CO",
}

// accountPayload maps extracted bank fields onto the Wise recipient account
// type for currency.
func accountPayload(profileID string, req transfer.ProviderRequest) (accountRequest, error) {
	bank := req.Bank
	out := accountRequest{
		Currency:          req.TargetCurrency,
		Profile:           profileID,
		AccountHolderName: req.RecipientName,
	}

	switch req.TargetCurrency {
	case "MXN":
		out.Type = "mexican"
		out.Details = map[string]interface{}{
			"clabe": bank.Account,
		}
	case "GBP":
		out.Type = "sort_code"
		out.Details = map[string]interface{}{
			"sortCode":      strings.ReplaceAll(bank.Code, "-", ""),
			"accountNumber": bank.Account,
		}
	case "EUR":
		out.Type = "iban"
		out.Details = map[string]interface{}{
			"iban": strings.ReplaceAll(bank.Account, " ", ""),
		}
	case "BRL":
		out.Type = "brazil"
		out.Details = map[string]interface{}{
			"accountNumber": bank.Account,
			"cpf":           bank.Code,
			"accountType":   "CHECKING",
		}
	case "COP":
		out.Type = "colombia"
		out.Details = map[string]interface{}{
			"accountNumber":    bank.Account,
			"accountType":      bank.Extra["accountType"],
			"phoneNumber":      bank.Extra["phoneNumber"],
			"idDocumentType":   "CC",
			"idDocumentNumber": bank.Extra["idDocumentNumber"],
			"address": map[string]string{
				"country":   countryCodes["COP"],
				"city":      bank.Extra["city"],
				"postCode":  bank.Extra["postCode"],
				"firstLine": bank.Extra["address"],
			},
		}
	default:
		return accountRequest{}, fmt.Errorf("no recipient account type for %s: %w", req.TargetCurrency, transfer.ErrUnsupportedCurrency)
	}
	return out, nil
}

// accountKey identifies a recipient account for caching. Two requests with
// the same key create the same Wise account.
func accountKey(req transfer.ProviderRequest) string {
	parts := []string{req.TargetCurrency, req.RecipientName, req.Bank.Account, req.Bank.Code}
	keys := make([]string, 0, len(req.Bank.Extra))
	for k := range req.Bank.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+"="+req.Bank.Extra[k])
	}
	return strings.Join(parts, "|")
}
