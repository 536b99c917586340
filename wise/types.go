package wise

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type quoteRequest struct {
	SourceCurrency string      `json:"sourceCurrency"`
	TargetCurrency string      `json:"targetCurrency"`
	SourceAmount   json.Number `json:"sourceAmount"`
	PayOut         string      `json:"payOut"`
}

type quoteResponse struct {
	ID                         string          `json:"id"`
	Rate                       decimal.Decimal `json:"rate"`
	TargetAmount               decimal.Decimal `json:"targetAmount"`
	FormattedEstimatedDelivery string          `json:"formattedEstimatedDelivery"`
	PaymentOptions             []paymentOption `json:"paymentOptions"`
}

type paymentOption struct {
	PayIn                      string          `json:"payIn"`
	PayOut                     string          `json:"payOut"`
	TargetAmount               decimal.Decimal `json:"targetAmount"`
	FormattedEstimatedDelivery string          `json:"formattedEstimatedDelivery"`
	Disabled                   bool            `json:"disabled"`
	Fee                        struct {
		Total decimal.Decimal `json:"total"`
	} `json:"fee"`
}

// balanceOption returns the enabled BALANCE pay-in option, if the quote has one.
func (q quoteResponse) balanceOption() (paymentOption, bool) {
	for _, o := range q.PaymentOptions {
		if o.PayIn == "BALANCE" && !o.Disabled {
			return o, true
		}
	}
	return paymentOption{}, false
}

type accountRequest struct {
	Currency          string                 `json:"currency"`
	Type              string                 `json:"type"`
	Profile           string                 `json:"profile"`
	AccountHolderName string                 `json:"accountHolderName"`
	Details           map[string]interface{} `json:"details"`
}

type accountResponse struct {
	ID int64 `json:"id"`
}

type transferRequest struct {
	TargetAccount         int64           `json:"targetAccount"`
	QuoteUUID             string          `json:"quoteUuid"`
	CustomerTransactionID string          `json:"customerTransactionId"`
	Details               transferDetails `json:"details"`
}

type transferDetails struct {
	Reference string `json:"reference"`
}

type transferResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type fundRequest struct {
	Type string `json:"type"`
}

type fundResponse struct {
	Type      string `json:"type"`
	Status    string `json:"status"`
	ErrorCode string `json:"errorCode"`
}

// APIError is a non-2xx response from the Wise API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wise api: status %d: %s", e.StatusCode, e.Message)
}

// errorBody covers the error shapes Wise returns across API versions.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case len(b.Errors) > 0 && b.Errors[0].Message != "":
		return b.Errors[0].Message
	case len(b.Errors) > 0:
		return b.Errors[0].Code
	default:
		return b.Error
	}
}
