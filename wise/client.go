// Package wise is a PaymentProvider backed by the Wise Platform API.
package wise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"

	"github.com/mybambu/transfer-tools/transfer"
)

// DefaultBaseURL is the Wise sandbox.
const DefaultBaseURL = "https://api.sandbox.transferwise.tech"

// ErrMissingCredentials is returned by New when the API key or profile is empty.
var ErrMissingCredentials = errors.New("wise: api key and profile id are required")

// ErrBalanceUnavailable is returned when a quote cannot be funded from the
// profile balance.
var ErrBalanceUnavailable = errors.New("wise: quote has no balance payment option")

// Config configures a Client.
type Config struct {
	APIKey    string
	ProfileID string
	BaseURL   string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// RecipientCacheSize bounds the number of cached recipient accounts.
	// Defaults to 1000.
	RecipientCacheSize int64
}

// Client talks to Wise. It is safe for concurrent use.
type Client struct {
	apiKey     string
	profileID  string
	baseURL    string
	httpClient *http.Client
	accounts   *ristretto.Cache
}

var _ transfer.PaymentProvider = (*Client)(nil)

// New creates a Wise client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.ProfileID == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.RecipientCacheSize <= 0 {
		cfg.RecipientCacheSize = 1000
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        cfg.RecipientCacheSize * 10,
		MaxCost:            cfg.RecipientCacheSize,
		BufferItems:        64,
		// Costs are entry counts, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create account cache: %w", err)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		profileID:  cfg.ProfileID,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: cfg.HTTPClient,
		accounts:   cache,
	}, nil
}

// Close releases the account cache.
func (c *Client) Close() {
	c.accounts.Close()
}

// SendMoney quotes, creates the recipient account, creates the transfer and
// funds it from the profile balance. Any failed step aborts the attempt.
func (c *Client) SendMoney(ctx context.Context, req transfer.ProviderRequest) (*transfer.ProviderReceipt, error) {
	quote, err := c.createQuote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	balance, ok := quote.balanceOption()
	if !ok {
		return nil, fmt.Errorf("quote %s: %w", quote.ID, ErrBalanceUnavailable)
	}

	accountID, err := c.recipientAccount(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create recipient: %w", err)
	}

	t, err := c.createTransfer(ctx, quote.ID, accountID, req.Reference)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}

	if err := c.fundTransfer(ctx, t.ID); err != nil {
		return nil, fmt.Errorf("fund transfer %d: %w", t.ID, err)
	}

	log.Printf("[WISE] transfer %d funded (%s %s -> %s)", t.ID, req.Amount, req.SourceCurrency, req.TargetCurrency)
	return receiptFromQuote(quote, balance, t.ID), nil
}

func receiptFromQuote(q *quoteResponse, opt paymentOption, transferID int64) *transfer.ProviderReceipt {
	r := &transfer.ProviderReceipt{
		TargetAmount:      q.TargetAmount,
		Rate:              q.Rate,
		Fee:               opt.Fee.Total,
		EstimatedDelivery: q.FormattedEstimatedDelivery,
		TransferID:        fmt.Sprintf("%d", transferID),
	}
	if !opt.TargetAmount.IsZero() {
		r.TargetAmount = opt.TargetAmount
	}
	if opt.FormattedEstimatedDelivery != "" {
		r.EstimatedDelivery = opt.FormattedEstimatedDelivery
	}
	return r
}

func (c *Client) createQuote(ctx context.Context, req transfer.ProviderRequest) (*quoteResponse, error) {
	var q quoteResponse
	err := c.do(ctx, http.MethodPost, "/v3/profiles/"+c.profileID+"/quotes", quoteRequest{
		SourceCurrency: req.SourceCurrency,
		TargetCurrency: req.TargetCurrency,
		SourceAmount:   json.Number(req.Amount.String()),
		PayOut:         "BANK_TRANSFER",
	}, &q)
	if err != nil {
		return nil, err
	}
	log.Printf("[WISE] quote %s: rate %s", q.ID, q.Rate)
	return &q, nil
}

// recipientAccount returns a cached account id or creates a new account.
func (c *Client) recipientAccount(ctx context.Context, req transfer.ProviderRequest) (int64, error) {
	key := accountKey(req)
	if v, ok := c.accounts.Get(key); ok {
		return v.(int64), nil
	}

	payload, err := accountPayload(c.profileID, req)
	if err != nil {
		return 0, err
	}

	var acc accountResponse
	if err := c.do(ctx, http.MethodPost, "/v1/accounts", payload, &acc); err != nil {
		return 0, err
	}
	log.Printf("[WISE] recipient account %d created (%s)", acc.ID, payload.Type)

	c.accounts.Set(key, acc.ID, 1)
	c.accounts.Wait()
	return acc.ID, nil
}

func (c *Client) createTransfer(ctx context.Context, quoteID string, accountID int64, reference string) (*transferResponse, error) {
	var t transferResponse
	err := c.do(ctx, http.MethodPost, "/v1/transfers", transferRequest{
		TargetAccount:         accountID,
		QuoteUUID:             quoteID,
		CustomerTransactionID: uuid.NewString(),
		Details:               transferDetails{Reference: reference},
	}, &t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) fundTransfer(ctx context.Context, transferID int64) error {
	var f fundResponse
	path := fmt.Sprintf("/v3/profiles/%s/transfers/%d/payments", c.profileID, transferID)
	if err := c.do(ctx, http.MethodPost, path, fundRequest{Type: "BALANCE"}, &f); err != nil {
		return err
	}
	if f.Status != "COMPLETED" {
		return fmt.Errorf("funding status %s: %s", f.Status, f.ErrorCode)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &eb) == nil && eb.text() != "" {
			msg = eb.text()
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
