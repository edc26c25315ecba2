// Package extract calls the external vision service that turns a supplier
// quote PDF into a structured draft. The draft is stored verbatim; nothing
// here writes to the quote tables.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ordatech/procost/internal/config"
)

// DraftLineItem is one extracted quote line. Field names follow the vision
// service response contract.
type DraftLineItem struct {
	SupplierModel string  `json:"supplier_model"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

// QuoteDraft is the structured result of one PDF extraction. It is advisory
// output for review, never written directly into the quote tables.
type QuoteDraft struct {
	SupplierName string          `json:"supplier_name"`
	QuoteDate    string          `json:"quote_date"`
	Currency     string          `json:"currency"`
	LineItems    []DraftLineItem `json:"line_items"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.ExtractConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ExtractQuote posts the PDF bytes and decodes the structured draft.
func (c *Client) ExtractQuote(ctx context.Context, fileName string, pdf []byte) (*QuoteDraft, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("extract service url is not configured")
	}

	url := c.baseURL + "/v1/extract/quote"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(pdf))
	if err != nil {
		return nil, fmt.Errorf("failed to build extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("X-File-Name", fileName)
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extract request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("extract service returned %d: %s", resp.StatusCode, string(body))
	}

	var draft QuoteDraft
	if err := json.NewDecoder(resp.Body).Decode(&draft); err != nil {
		return nil, fmt.Errorf("failed to decode extract response: %w", err)
	}

	return &draft, nil
}
