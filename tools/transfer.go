package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mybambu/transfer-tools/core"
	"github.com/mybambu/transfer-tools/corridor"
	"github.com/mybambu/transfer-tools/transfer"
)

// Tool names.
const (
	GetExchangeRate       = "get_exchange_rate"
	GetSupportedCountries = "get_supported_countries"
	SendMoney             = "send_money"
)

const sendMoneyDescription = "Send money internationally via Wise. Collects recipient bank details naturally through conversation. " +
	"IMPORTANT: If bank details are missing, ask user for them, then call this tool again WITH bank_details parameter."

// bankDetailProperties documents every bank detail key the corridors use.
var bankDetailProperties = map[string]interface{}{
	"clabe":            StringProperty("Mexican CLABE (18 digits)"),
	"iban":             StringProperty("European IBAN"),
	"sortCode":         StringProperty("UK sort code (6 digits)"),
	"accountNumber":    StringProperty("Bank account number"),
	"cpf":              StringProperty("Brazilian CPF (11 digits)"),
	"bankCode":         StringProperty("Bank code"),
	"accountType":      StringProperty("CURRENT or SAVINGS"),
	"phoneNumber":      StringProperty("Phone number (for Colombia)"),
	"idDocumentNumber": StringProperty("Colombian Cédula number (national ID)"),
	"address":          StringProperty("Street address (for Colombia)"),
	"city":             StringProperty("City (for Colombia)"),
	"postCode":         StringProperty("Postal code (for Colombia)"),
}

// TransferToolDefinitions returns the definitions of the transfer tools.
// currencies populates the target_currency enum.
func TransferToolDefinitions(currencies []string) []core.ToolDefinition {
	return []core.ToolDefinition{
		{
			ToolName:        GetExchangeRate,
			ToolDescription: "Get current exchange rate for USD to target currency",
			InputSchema: ObjectSchema(map[string]interface{}{
				"target_currency": StringEnumProperty(
					fmt.Sprintf("Target currency code (%s)", strings.Join(currencies, ", ")), currencies...),
			}, "target_currency"),
		},
		{
			ToolName:        GetSupportedCountries,
			ToolDescription: "Get list of countries where we can send money",
			InputSchema:     ObjectSchema(map[string]interface{}{}),
		},
		{
			ToolName:        SendMoney,
			ToolDescription: sendMoneyDescription,
			InputSchema: ObjectSchema(map[string]interface{}{
				"amount":         NumberProperty("Amount in USD to send"),
				"to_country":     StringProperty("Destination country name"),
				"recipient_name": StringProperty("Full name of recipient"),
				"bank_details":   ObjectProperty("Recipient bank account details (varies by country)", bankDetailProperties),
			}, "amount", "to_country", "recipient_name"),
		},
	}
}

// TransferTools creates the three transfer tools over the given tables and
// orchestrator.
func TransferTools(o *transfer.Orchestrator, corridors *corridor.Table, rates *corridor.Rates) []core.Tool {
	defs := TransferToolDefinitions(rates.Currencies())
	handlers := map[string]HandlerFunc{
		GetExchangeRate:       exchangeRateHandler(rates),
		GetSupportedCountries: supportedCountriesHandler(corridors),
		SendMoney:             sendMoneyHandler(o),
	}

	out := make([]core.Tool, len(defs))
	for i, def := range defs {
		out[i] = New(def.ToolName).
			Description(def.ToolDescription).
			Schema(def.InputSchema).
			Handler(handlers[def.ToolName]).
			Build()
	}
	return out
}

func exchangeRateHandler(rates *corridor.Rates) HandlerFunc {
	return func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		var in core.ExchangeRateInput
		if err := decode(params, &in); err != nil {
			return &core.ToolResult{Success: false, Error: err.Error()}, nil
		}
		if in.TargetCurrency == "" {
			return &core.ToolResult{Success: false, Error: "target_currency is required"}, nil
		}

		rate, ok := rates.Lookup(in.TargetCurrency)
		if !ok {
			return &core.ToolResult{
				Success: true,
				Data:    FormatUnsupportedCurrency(in.TargetCurrency, rates.Currencies()),
			}, nil
		}
		return &core.ToolResult{Success: true, Data: FormatExchangeRate(in.TargetCurrency, rate)}, nil
	}
}

func supportedCountriesHandler(corridors *corridor.Table) HandlerFunc {
	return func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		return &core.ToolResult{Success: true, Data: FormatCountries(corridors.List())}, nil
	}
}

func sendMoneyHandler(o *transfer.Orchestrator) HandlerFunc {
	return func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
		var in core.SendMoneyInput
		if err := decode(params, &in); err != nil {
			return &core.ToolResult{Success: false, Error: err.Error()}, nil
		}

		switch {
		case !in.Amount.IsPositive():
			return &core.ToolResult{Success: false, Error: "amount must be a positive number"}, nil
		case strings.TrimSpace(in.ToCountry) == "":
			return &core.ToolResult{Success: false, Error: "to_country is required"}, nil
		case strings.TrimSpace(in.RecipientName) == "":
			return &core.ToolResult{Success: false, Error: "recipient_name is required"}, nil
		}

		req := transfer.Request{
			AmountUSD:          in.Amount,
			DestinationCountry: in.ToCountry,
			RecipientName:      in.RecipientName,
			BankDetails:        in.BankDetailStrings(),
		}
		if in.Thought != "" {
			log.Printf("[TOOL] send_money thought: %s", in.Thought)
		}

		out := o.ExecuteTransfer(ctx, req)
		return &core.ToolResult{Success: true, Data: FormatOutcome(req, out)}, nil
	}
}

// decode unmarshals the tool input. An empty input decodes as {}.
func decode(params *core.ToolParams, v interface{}) error {
	if params == nil || len(params.Input) == 0 {
		return nil
	}
	if err := json.Unmarshal(params.Input, v); err != nil {
		return fmt.Errorf("invalid input: %v", err)
	}
	return nil
}
