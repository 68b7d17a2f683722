// Package feed reads invoices from the upstream invoicing system.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 512

// Client implements adapter.InvoiceFeed over HTTP.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a feed client for the given endpoint.
func NewClient(url, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// record is one invoice as returned by the upstream API.
type record struct {
	ID            json.RawMessage     `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	TotalAmount   decimal.NullDecimal `json:"total_amount"`
	ClientName    string              `json:"client_name"`
	ClientAddress string              `json:"client_address"`
	InvoiceDate   string              `json:"invoice_date"`
}

// FetchInvoices retrieves the full upstream invoice list. The API key is sent
// as the raw Authorization header value.
func (c *Client) FetchInvoices(ctx context.Context) ([]entity.ExternalInvoice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("invoice feed error: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	invoices := make([]entity.ExternalInvoice, 0, len(records))
	for _, r := range records {
		inv := entity.ExternalInvoice{
			ExternalID:    externalID(r.ID),
			InvoiceNumber: r.InvoiceNumber,
			ClientName:    r.ClientName,
			ClientAddress: r.ClientAddress,
		}
		if r.TotalAmount.Valid {
			amount := r.TotalAmount.Decimal
			inv.TotalAmount = &amount
		}
		if r.InvoiceDate != "" {
			date, err := parseDate(r.InvoiceDate)
			if err != nil {
				slog.Warn("ignoring unparseable upstream invoice date",
					"external_id", inv.ExternalID,
					"invoice_date", r.InvoiceDate,
				)
			} else {
				inv.InvoiceDate = &date
			}
		}
		invoices = append(invoices, inv)
	}

	slog.Debug("fetched upstream invoices", "count", len(invoices))
	return invoices, nil
}

// externalID renders a numeric or string id as text. Null or missing ids become "".
func externalID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

var _ adapter.InvoiceFeed = (*Client)(nil)
