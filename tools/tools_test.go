package tools_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybambu/transfer-tools/core"
	"github.com/mybambu/transfer-tools/corridor"
	"github.com/mybambu/transfer-tools/recipient"
	"github.com/mybambu/transfer-tools/tools"
	"github.com/mybambu/transfer-tools/transfer"
)

type stubProvider struct {
	receipt *transfer.ProviderReceipt
	err     error
}

func (s stubProvider) SendMoney(ctx context.Context, req transfer.ProviderRequest) (*transfer.ProviderReceipt, error) {
	return s.receipt, s.err
}

func toolSet(t *testing.T, cfg transfer.Config, provider transfer.PaymentProvider) map[string]core.Tool {
	t.Helper()
	table, rates := corridor.DefaultTable(), corridor.DefaultRates()
	var opts []transfer.Option
	if provider != nil {
		opts = append(opts, transfer.WithProvider(provider))
	}
	o := transfer.NewOrchestrator(cfg, table, rates, recipient.NewRegistry(), opts...)

	out := make(map[string]core.Tool)
	for _, tool := range tools.TransferTools(o, table, rates) {
		out[tool.Name()] = tool
	}
	return out
}

func call(t *testing.T, tool core.Tool, input string) *core.ToolResult {
	t.Helper()
	res, err := tool.Execute(context.Background(), &core.ToolParams{Input: json.RawMessage(input)})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func demoTools(t *testing.T) map[string]core.Tool {
	return toolSet(t, transfer.Config{Mode: transfer.ModeDemo}, nil)
}

func TestTransferToolDefinitions(t *testing.T) {
	defs := tools.TransferToolDefinitions([]string{"MXN", "EUR"})
	require.Len(t, defs, 3)

	names := []string{defs[0].ToolName, defs[1].ToolName, defs[2].ToolName}
	assert.Equal(t, []string{"get_exchange_rate", "get_supported_countries", "send_money"}, names)

	rateProps := defs[0].InputSchema["properties"].(map[string]interface{})
	target := rateProps["target_currency"].(map[string]interface{})
	assert.Equal(t, []string{"MXN", "EUR"}, target["enum"])
	assert.Equal(t, []string{"target_currency"}, defs[0].InputSchema["required"])

	assert.Equal(t, []string{"amount", "to_country", "recipient_name"}, defs[2].InputSchema["required"])
	sendProps := defs[2].InputSchema["properties"].(map[string]interface{})
	bank := sendProps["bank_details"].(map[string]interface{})
	assert.Equal(t, "object", bank["type"])
	assert.Contains(t, bank["properties"], "clabe")
	assert.Contains(t, defs[2].ToolDescription, "call this tool again WITH bank_details")
}

func TestGetExchangeRate(t *testing.T) {
	ts := demoTools(t)

	res := call(t, ts["get_exchange_rate"], `{"target_currency":"COP"}`)
	assert.True(t, res.Success)
	assert.Equal(t, "Current exchange rate: 1 USD = 3750 COP", res.Data)

	res = call(t, ts["get_exchange_rate"], `{"target_currency":"JPY"}`)
	assert.True(t, res.Success, "unsupported currency is not an error result")
	assert.Contains(t, res.Text(), "Unsupported currency: JPY")

	res = call(t, ts["get_exchange_rate"], `{}`)
	assert.False(t, res.Success)
	assert.Equal(t, "target_currency is required", res.Error)
}

func TestGetSupportedCountries(t *testing.T) {
	res := call(t, demoTools(t)["get_supported_countries"], ``)
	require.True(t, res.Success)

	text := res.Text()
	assert.True(t, strings.HasPrefix(text, "We support transfers to:\n\n"))
	assert.Contains(t, text, "• Mexico (MXN) - 1-2 business days")
	assert.Contains(t, text, "• United Kingdom (GBP) - Same day")
	assert.Less(t, strings.Index(text, "Mexico"), strings.Index(text, "Europe"))
}

func TestSendMoney_Demo(t *testing.T) {
	res := call(t, demoTools(t)["send_money"], `{"amount":500,"to_country":"Mexico","recipient_name":"Ana"}`)
	require.True(t, res.Success)

	text := res.Text()
	assert.Contains(t, text, "Transfer Demo")
	assert.Contains(t, text, "You sent: $500 USD")
	assert.Contains(t, text, "Ana receives: ~8342.00 MXN")
	assert.Contains(t, text, "Fee: ~$15.00")
	assert.Contains(t, text, "Estimated delivery: 1-2 business days")
	assert.Contains(t, text, "No real money was sent")
}

func TestSendMoney_Rejections(t *testing.T) {
	ts := demoTools(t)

	res := call(t, ts["send_money"], `{"amount":50000,"to_country":"Mexico","recipient_name":"Ana"}`)
	require.True(t, res.Success)
	assert.Contains(t, res.Text(), "Amount must be between $10 and $10000 USD")

	res = call(t, ts["send_money"], `{"amount":100,"to_country":"Japan","recipient_name":"Yuki"}`)
	require.True(t, res.Success)
	assert.Contains(t, res.Text(), "Japan")
	assert.Contains(t, res.Text(), "Mexico, Colombia, Brazil, United Kingdom, Europe")
}

func TestSendMoney_MalformedArguments(t *testing.T) {
	ts := demoTools(t)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid json", `{"amount":`, "invalid input"},
		{"missing amount", `{"to_country":"Mexico","recipient_name":"Ana"}`, "amount must be a positive number"},
		{"negative amount", `{"amount":-5,"to_country":"Mexico","recipient_name":"Ana"}`, "amount must be a positive number"},
		{"missing country", `{"amount":100,"recipient_name":"Ana"}`, "to_country is required"},
		{"missing recipient", `{"amount":100,"to_country":"Mexico"}`, "recipient_name is required"},
		{"object bank detail", `{"amount":100,"to_country":"Mexico","recipient_name":"Ana","bank_details":{"clabe":{}}}`, "invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, ts["send_money"], tt.input)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, tt.want)
		})
	}
}

func TestSendMoney_NeedsInfo(t *testing.T) {
	ts := toolSet(t, transfer.Config{Mode: transfer.ModeProduction, ProviderCredentials: true},
		stubProvider{err: errors.New("should not be called")})

	res := call(t, ts["send_money"], `{"amount":250,"to_country":"United Kingdom","recipient_name":"Oliver","bank_details":{"sortCode":"12"}}`)
	require.True(t, res.Success)

	text := res.Text()
	assert.Contains(t, text, "To complete this $250 transfer to Oliver in United Kingdom")
	assert.Contains(t, text, "• **Sort code**: 6-digit UK bank sort code\n  Example: 04-00-04")
	assert.Contains(t, text, "• **Account number**")
	assert.Contains(t, text, "These values don't look right: **Sort code**")
}

func TestSendMoney_NumericBankDetails(t *testing.T) {
	var seen transfer.ProviderRequest
	provider := recordingProvider{seen: &seen}
	ts := toolSet(t, transfer.Config{Mode: transfer.ModeProduction, ProviderCredentials: true}, provider)

	res := call(t, ts["send_money"], `{"amount":"100","to_country":"Mexico","recipient_name":"Ana","bank_details":{"clabe":646180157000000004}}`)
	require.True(t, res.Success)
	assert.Contains(t, res.Text(), "Transfer Completed")
	assert.Equal(t, "646180157000000004", seen.Bank.Account)
}

type recordingProvider struct {
	seen *transfer.ProviderRequest
}

func (p recordingProvider) SendMoney(ctx context.Context, req transfer.ProviderRequest) (*transfer.ProviderReceipt, error) {
	*p.seen = req
	return &transfer.ProviderReceipt{
		TargetAmount: decimal.RequireFromString("1738"),
		Rate:         decimal.RequireFromString("17.38"),
		Fee:          decimal.RequireFromString("0"),
		TransferID:   "1",
	}, nil
}

func TestSendMoney_ProviderErrorSimulates(t *testing.T) {
	ts := toolSet(t, transfer.Config{Mode: transfer.ModeProduction, ProviderCredentials: true},
		stubProvider{err: errors.New("wise api: status 401: invalid token")})

	res := call(t, ts["send_money"], `{"amount":100,"to_country":"Europe","recipient_name":"Jean","bank_details":{"iban":"DE89370400440532013000"}}`)
	require.True(t, res.Success)

	text := res.Text()
	assert.Contains(t, text, "Transfer Simulated (Wise API Error)")
	assert.Contains(t, text, "Jean receives: ~89.24 EUR")
	assert.Contains(t, text, "Provider error: wise api: status 401: invalid token")
}

func TestFormatCompleted(t *testing.T) {
	req := transfer.Request{AmountUSD: decimal.NewFromInt(100), RecipientName: "Oliver"}
	text := tools.FormatOutcome(req, transfer.Completed{
		Currency:              "GBP",
		RecipientAmount:       decimal.RequireFromString("78.1"),
		Rate:                  decimal.RequireFromString("0.7912"),
		Fee:                   decimal.RequireFromString("1.3"),
		DeliveryEstimate:      "Same day",
		ProviderTransactionID: "48211970",
	})

	assert.Contains(t, text, "Oliver receives: 78.10 GBP")
	assert.Contains(t, text, "Exchange rate: 0.7912 GBP per USD")
	assert.Contains(t, text, "Wise fee: $1.30 USD")
	assert.Contains(t, text, "Transfer ID: 48211970")
}

func TestWithThought(t *testing.T) {
	schema := tools.ObjectSchema(map[string]interface{}{
		"amount": tools.NumberProperty("Amount"),
	}, "amount")

	withThought := tools.WithThought(schema)

	props := withThought["properties"].(map[string]interface{})
	assert.Contains(t, props, "thought")
	assert.Contains(t, props, "amount")
	assert.Equal(t, []string{"amount"}, withThought["required"])

	original := schema["properties"].(map[string]interface{})
	assert.NotContains(t, original, "thought", "original schema must not change")
}

func TestBuilder(t *testing.T) {
	tool := tools.New("echo").
		Description("Echo input").
		Handler(func(ctx context.Context, params *core.ToolParams) (*core.ToolResult, error) {
			return &core.ToolResult{Success: true, Data: string(params.Input)}, nil
		}).
		Build()

	assert.Equal(t, "echo", tool.Name())
	assert.Equal(t, "object", tool.Schema()["type"])

	res := call(t, tool, `{"x":1}`)
	assert.Equal(t, `{"x":1}`, res.Data)

	def := tools.Definition(tool)
	assert.Equal(t, "Echo input", def.ToolDescription)

	_, err := tools.New("empty").Build().Execute(context.Background(), &core.ToolParams{})
	assert.Error(t, err)
}
