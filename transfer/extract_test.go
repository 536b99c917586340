package transfer_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybambu/transfer-tools/transfer"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		currency string
		details  transfer.BankDetails
		want     transfer.BankFields
	}{
		{
			currency: "GBP",
			details:  transfer.BankDetails{"accountNumber": "123", "sortCode": "04-00-04"},
			want:     transfer.BankFields{Account: "123", Code: "04-00-04"},
		},
		{
			currency: "MXN",
			details:  transfer.BankDetails{"clabe": "002010077777777771"},
			want:     transfer.BankFields{Account: "002010077777777771", Code: ""},
		},
		{
			currency: "BRL",
			details:  transfer.BankDetails{"accountNumber": "12345678-9", "cpf": "12345678909", "iban": "ignored"},
			want:     transfer.BankFields{Account: "12345678-9", Code: "12345678909"},
		},
		{
			currency: "EUR",
			details:  transfer.BankDetails{"iban": "DE89370400440532013000"},
			want:     transfer.BankFields{Account: "DE89370400440532013000"},
		},
		{
			currency: "COP",
			details: transfer.BankDetails{
				"accountNumber": "987", "accountType": "CURRENT", "phoneNumber": "+57",
				"idDocumentNumber": "1", "address": "a", "city": "c", "postCode": "p",
			},
			want: transfer.BankFields{
				Account: "987",
				Extra: map[string]string{
					"accountType": "CURRENT", "phoneNumber": "+57", "idDocumentNumber": "1",
					"address": "a", "city": "c", "postCode": "p",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			got, err := transfer.Extract(tt.currency, tt.details)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, _ := transfer.Extract(tt.currency, tt.details)
			assert.Equal(t, got, again)
		})
	}
}

func TestExtract_ColombiaDefaultsAccountType(t *testing.T) {
	got, err := transfer.Extract("COP", transfer.BankDetails{"accountNumber": "1"})
	require.NoError(t, err)
	assert.Equal(t, "SAVINGS", got.Extra["accountType"])
}

func TestExtract_UnknownCurrency(t *testing.T) {
	_, err := transfer.Extract("JPY", transfer.BankDetails{"accountNumber": "1"})
	assert.True(t, errors.Is(err, transfer.ErrUnsupportedCurrency))
}
