package recipient

import "regexp"

var (
	digits18    = regexp.MustCompile(`^\d{18}$`)
	digits11    = regexp.MustCompile(`^\d{11}$`)
	digits8     = regexp.MustCompile(`^\d{8}$`)
	digits6     = regexp.MustCompile(`^\d{6}$`)
	nationalID  = regexp.MustCompile(`^\d{6,10}$`)
	accountNum  = regexp.MustCompile(`^[0-9-]{4,20}$`)
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]{11,30}$`)
	phone       = regexp.MustCompile(`^\+?\d{7,15}$`)
	accountType = regexp.MustCompile(`^(CURRENT|SAVINGS|CHECKING)$`)
	anything    = check{}
)

// NewRegistry returns the rules for every corridor currency.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]rule{
		"MXN": {
			requirements: Requirements{
				Currency:     "MXN",
				Instructions: "For transfers to Mexico I need the recipient's CLABE, the 18-digit interbank number printed on their bank statement.",
				Fields: []Field{
					{Name: "clabe", Label: "CLABE", Description: "18-digit Mexican interbank account number", Example: "002010077777777771"},
				},
			},
			checks: map[string]check{
				"clabe": {strip: " -", pattern: digits18},
			},
		},
		"EUR": {
			requirements: Requirements{
				Currency:     "EUR",
				Instructions: "For transfers in euros I need the recipient's IBAN.",
				Fields: []Field{
					{Name: "iban", Label: "IBAN", Description: "International bank account number", Example: "DE89370400440532013000"},
				},
			},
			checks: map[string]check{
				"iban": {strip: " ", pattern: ibanPattern},
			},
		},
		"GBP": {
			requirements: Requirements{
				Currency:     "GBP",
				Instructions: "For transfers to the United Kingdom I need the recipient's sort code and account number.",
				Fields: []Field{
					{Name: "sortCode", Label: "Sort code", Description: "6-digit UK bank sort code", Example: "04-00-04"},
					{Name: "accountNumber", Label: "Account number", Description: "8-digit UK account number", Example: "12345678"},
				},
			},
			checks: map[string]check{
				"sortCode":      {strip: " -", pattern: digits6},
				"accountNumber": {strip: " ", pattern: digits8},
			},
		},
		"BRL": {
			requirements: Requirements{
				Currency:     "BRL",
				Instructions: "For transfers to Brazil I need the recipient's account number and CPF (tax ID).",
				Fields: []Field{
					{Name: "accountNumber", Label: "Account number", Description: "Brazilian bank account number", Example: "12345678-9"},
					{Name: "cpf", Label: "CPF", Description: "11-digit Brazilian individual taxpayer number", Example: "123.456.789-09"},
				},
			},
			checks: map[string]check{
				"accountNumber": {strip: " ", pattern: accountNum},
				"cpf":           {strip: " .-", pattern: digits11},
			},
		},
		"COP": {
			requirements: Requirements{
				Currency:     "COP",
				Instructions: "For transfers to Colombia I need the recipient's account number, Cédula, phone number and address.",
				Fields: []Field{
					{Name: "accountNumber", Label: "Account number", Description: "Colombian bank account number", Example: "1234567890"},
					{Name: "idDocumentNumber", Label: "Cédula", Description: "Colombian national ID number", Example: "1234567890"},
					{Name: "phoneNumber", Label: "Phone number", Description: "Recipient phone number with country code", Example: "+573001234567"},
					{Name: "address", Label: "Address", Description: "Street address", Example: "Calle 10 # 5-51"},
					{Name: "city", Label: "City", Description: "City of residence", Example: "Bogotá"},
					{Name: "postCode", Label: "Postal code", Description: "Postal code", Example: "110111"},
				},
			},
			checks: map[string]check{
				"accountNumber":    {strip: " ", pattern: accountNum},
				"idDocumentNumber": {strip: " .", pattern: nationalID},
				"phoneNumber":      {strip: " -()", pattern: phone},
				"address":          anything,
				"city":             anything,
				"postCode":         anything,
			},
			optional: map[string]check{
				"accountType": {pattern: accountType},
			},
		},
	}}
}
