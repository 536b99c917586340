package tools

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mybambu/transfer-tools/corridor"
	"github.com/mybambu/transfer-tools/recipient"
	"github.com/mybambu/transfer-tools/transfer"
)

// FormatExchangeRate renders a get_exchange_rate answer.
func FormatExchangeRate(currency string, rate decimal.Decimal) string {
	return fmt.Sprintf("Current exchange rate: 1 USD = %s %s", rate, currency)
}

// FormatUnsupportedCurrency renders a rate lookup miss.
func FormatUnsupportedCurrency(currency string, supported []string) string {
	return fmt.Sprintf("❌ Unsupported currency: %s\n\nSupported currencies: %s", currency, strings.Join(supported, ", "))
}

// FormatCountries renders the corridor list, one line per corridor.
func FormatCountries(corridors []corridor.Corridor) string {
	lines := make([]string, len(corridors))
	for i, c := range corridors {
		lines[i] = fmt.Sprintf("• %s (%s) - %s", c.Country, c.Currency, c.DeliveryEstimate)
	}
	return "We support transfers to:\n\n" + strings.Join(lines, "\n")
}

// FormatOutcome renders a send_money outcome for the agent.
func FormatOutcome(req transfer.Request, out transfer.Outcome) string {
	switch o := out.(type) {
	case transfer.Rejected:
		return "❌ " + o.Detail
	case transfer.NeedsInfo:
		return formatNeedsInfo(req, o)
	case transfer.Completed:
		return formatCompleted(req, o)
	case transfer.Simulated:
		return formatSimulated(req, o)
	default:
		return fmt.Sprintf("Unexpected transfer outcome %T", out)
	}
}

func formatNeedsInfo(req transfer.Request, o transfer.NeedsInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 To complete this $%s transfer to %s in %s, I need their bank details:\n\n",
		req.AmountUSD, req.RecipientName, req.DestinationCountry)
	b.WriteString(o.Instructions)
	b.WriteString("\n\n")

	if len(o.Invalid) > 0 {
		fmt.Fprintf(&b, "⚠️ These values don't look right: %s\n\n", strings.Join(labels(o.Fields, o.Invalid), ", "))
	}

	b.WriteString("**Required fields:**\n")
	for i, f := range o.Fields {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "• **%s**: %s\n  Example: %s", f.Label, f.Description, f.Example)
	}
	b.WriteString("\n\n**Once you provide these, I'll process the transfer immediately.**")
	return b.String()
}

// labels maps field names to their display labels, falling back to the name.
func labels(fields []recipient.Field, names []string) []string {
	byName := make(map[string]string, len(fields))
	for _, f := range fields {
		byName[f.Name] = f.Label
	}
	out := make([]string, len(names))
	for i, n := range names {
		if l, ok := byName[n]; ok {
			out[i] = "**" + l + "**"
		} else {
			out[i] = "**" + n + "**"
		}
	}
	return out
}

func formatCompleted(req transfer.Request, o transfer.Completed) string {
	return "✅ **Transfer Completed!**\n\n" +
		fmt.Sprintf("💰 You sent: $%s USD\n", req.AmountUSD) +
		fmt.Sprintf("📩 %s receives: %s %s\n", req.RecipientName, o.RecipientAmount.StringFixed(2), o.Currency) +
		fmt.Sprintf("💱 Exchange rate: %s %s per USD\n", o.Rate, o.Currency) +
		fmt.Sprintf("💵 Wise fee: $%s USD\n", o.Fee.StringFixed(2)) +
		fmt.Sprintf("⏱️  Estimated delivery: %s\n", o.DeliveryEstimate) +
		fmt.Sprintf("🆔 Transfer ID: %s\n\n", o.ProviderTransactionID) +
		"✨ Real transfer processed via Wise API"
}

func formatSimulated(req transfer.Request, o transfer.Simulated) string {
	title := "✅ **Transfer Demo**"
	footer := "🎭 This is a demo. No real money was sent.\nSet MODE=PRODUCTION to enable real transfers."
	if o.Cause == transfer.CauseProviderError {
		title = "⚠️ **Transfer Simulated (Wise API Error)**"
		footer = fmt.Sprintf("ℹ️ Provider error: %s\nThis was a simulated transfer. No real money was sent.",
			strings.TrimPrefix(o.Reason, "provider error: "))
	}

	return title + "\n\n" +
		fmt.Sprintf("💰 You sent: $%s USD\n", req.AmountUSD) +
		fmt.Sprintf("📩 %s receives: ~%s %s\n", req.RecipientName, o.RecipientAmount.StringFixed(2), o.Currency) +
		fmt.Sprintf("💱 Exchange rate: ~%s (estimated)\n", o.Rate) +
		fmt.Sprintf("💵 Fee: ~$%s\n", o.Fee.StringFixed(2)) +
		fmt.Sprintf("⏱️  Estimated delivery: %s\n\n", o.DeliveryEstimate) +
		footer
}
