package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

const (
	defaultTimeout   = 30 * time.Second
	transactionsPath = "/get-transactions"
	addPath          = "/add-transaction"
	updatePath       = "/update-transaction"
	deletePath       = "/delete-transaction"
)

// Client handles communication with the remote ledger API. It performs one
// HTTP request per operation and never retries; failures propagate to the
// caller.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure interface conformance
var _ ledger.Ledger = (*Client)(nil)

// NewClient creates a ledger API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}
}

// NewClientWithHTTPClient creates a client with a caller-supplied http.Client.
// Used by tests and callers that need custom transport limits.
func NewClientWithHTTPClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: hc, baseURL: baseURL}
}

// wireTransaction mirrors the ledger's response records. The service names the
// identifier "TransactionID" in responses but expects "transactionId" in
// request bodies, so requests use a separate payload type.
type wireTransaction struct {
	UserID        string `json:"userId"`
	TransactionID string `json:"TransactionID"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	Description   string `json:"description"`
}

type transactionPayload struct {
	UserID        string `json:"userId"`
	TransactionID string `json:"transactionId"`
	Amount        string `json:"amount"`
	Category      string `json:"category"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	Description   string `json:"description"`
}

type listResponse struct {
	Transactions []wireTransaction `json:"transactions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toCore(w wireTransaction) core.Transaction {
	return core.Transaction{
		UserID:        w.UserID,
		TransactionID: w.TransactionID,
		Amount:        w.Amount,
		Category:      w.Category,
		Type:          core.TransactionType(w.Type),
		Date:          w.Date,
		Description:   w.Description,
	}
}

func toPayload(tx core.Transaction) transactionPayload {
	return transactionPayload{
		UserID:        tx.UserID,
		TransactionID: tx.TransactionID,
		Amount:        tx.Amount,
		Category:      tx.Category,
		Type:          tx.Type.String(),
		Date:          tx.Date,
		Description:   tx.Description,
	}
}

// List fetches every transaction for userID. A successful response without a
// "transactions" field is an empty set, not an error.
func (c *Client) List(ctx context.Context, userID string) ([]core.Transaction, error) {
	u := c.baseURL + transactionsPath + "?userId=" + url.QueryEscape(userID)

	body, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var lr listResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, fmt.Errorf("decode transactions response: %w", err)
	}

	out := make([]core.Transaction, 0, len(lr.Transactions))
	for _, w := range lr.Transactions {
		out = append(out, toCore(w))
	}
	slog.DebugContext(ctx, "Fetched transactions", log.FieldUserID, userID, log.FieldCount, len(out))
	return out, nil
}

// Create registers a new transaction and returns the created record.
func (c *Client) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	body, err := c.do(ctx, http.MethodPost, c.baseURL+addPath, toPayload(tx))
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeRecord(body, tx)
}

// Update rewrites the editable fields of an existing transaction.
func (c *Client) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	body, err := c.do(ctx, http.MethodPut, c.baseURL+updatePath, toPayload(tx))
	if err != nil {
		return core.Transaction{}, err
	}
	return decodeRecord(body, tx)
}

// Delete removes the transaction identified by userID and transactionID.
func (c *Client) Delete(ctx context.Context, userID, transactionID string) error {
	payload := struct {
		UserID        string `json:"userId"`
		TransactionID string `json:"transactionId"`
	}{UserID: userID, TransactionID: transactionID}

	_, err := c.do(ctx, http.MethodPost, c.baseURL+deletePath, payload)
	return err
}

// decodeRecord parses a mutation response as a transaction record, falling
// back to the submitted record when the body is not one (some deployments
// return a bare acknowledgement).
func decodeRecord(body []byte, submitted core.Transaction) (core.Transaction, error) {
	var w wireTransaction
	if err := json.Unmarshal(body, &w); err != nil || w.TransactionID == "" {
		return submitted, nil
	}
	return toCore(w), nil
}

// do issues a single request and returns the response body. A non-2xx status
// becomes an *ledger.APIError carrying the server-supplied message when the
// body holds one; everything else is a transport failure.
func (c *Client) do(ctx context.Context, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &ledger.APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if err := json.Unmarshal(body, &er); err == nil {
			apiErr.Message = er.Error
		}
		return nil, apiErr
	}

	return body, nil
}
