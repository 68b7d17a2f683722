package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/feed"
)

func TestClient_FetchInvoices(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 17, "invoice_number": "SS-017", "total_amount": "1250.50", "client_name": "Globex", "client_address": "12 Harbour Rd", "invoice_date": "2026-04-30"},
			{"id": "a-9", "invoice_number": "SS-018", "total_amount": 99.9, "client_name": "Initech", "client_address": "", "invoice_date": "2026-05-01T10:00:00Z"},
			{"id": null, "invoice_number": "SS-019", "total_amount": null, "invoice_date": "30/05/2026"}
		]`))
	}))
	defer srv.Close()

	client := feed.NewClient(srv.URL, "secret-key", 5*time.Second)
	invoices, err := client.FetchInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, "secret-key", gotAuth)

	first := invoices[0]
	assert.Equal(t, "17", first.ExternalID)
	assert.Equal(t, "SS-017", first.InvoiceNumber)
	require.NotNil(t, first.TotalAmount)
	assert.Equal(t, "1250.50", first.TotalAmount.StringFixed(2))
	assert.Equal(t, "12 Harbour Rd", first.ClientAddress)
	require.NotNil(t, first.InvoiceDate)
	assert.Equal(t, time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), *first.InvoiceDate)

	second := invoices[1]
	assert.Equal(t, "a-9", second.ExternalID)
	assert.Equal(t, "99.90", second.TotalAmount.StringFixed(2))
	require.NotNil(t, second.InvoiceDate)
	assert.Equal(t, 10, second.InvoiceDate.Hour())

	third := invoices[2]
	assert.Empty(t, third.ExternalID)
	assert.Nil(t, third.TotalAmount)
	assert.Nil(t, third.InvoiceDate)
}

func TestClient_FetchInvoices_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "non 200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "invalid api key", http.StatusUnauthorized)
			},
			wantMsg: "invoice feed error: 401 - invalid api key",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not": "a list"}`))
			},
			wantMsg: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := feed.NewClient(srv.URL, "", time.Second).FetchInvoices(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_FetchInvoices_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := feed.NewClient(url, "", time.Second).FetchInvoices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch invoices")
}
