package plaid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"finsight/internal/models"
)

type fakeTokens struct {
	tokens []string
}

func (f *fakeTokens) AccessTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return f.tokens, nil
}

type fakeWriter struct {
	batches [][]models.Transaction
}

func (f *fakeWriter) CreateBatch(ctx context.Context, userID uuid.UUID, transactions []models.Transaction) error {
	f.batches = append(f.batches, transactions)
	return nil
}

func testClient(baseURL string, writer *fakeWriter) *Client {
	return &Client{
		clientID: "client",
		secret:   "secret",
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 5 * time.Second},
		tokens:   &fakeTokens{tokens: []string{"access-token-1"}},
		writer:   writer,
		logger:   zap.NewNop(),
	}
}

func wireRow(id, date string) wireTransaction {
	return wireTransaction{
		TransactionID:  id,
		AccountID:      "acc_1",
		Amount:         12.34,
		Currency:       "USD",
		Category:       []string{"Food and Drink", "Restaurants"},
		Date:           date,
		Name:           "Lunch",
		MerchantName:   "Cafe",
		PaymentChannel: models.ChannelInStore,
	}
}

func TestSyncAllFollowsCursorPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req syncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Error decoding sync request: %v", err)
		}

		resp := syncResponse{}
		switch req.Cursor {
		case "":
			resp.Added = []wireTransaction{wireRow("tx_1", "2025-06-01")}
			resp.NextCursor = "cursor-2"
			resp.HasMore = true
		case "cursor-2":
			resp.Added = []wireTransaction{wireRow("tx_2", "2025-06-02")}
			resp.NextCursor = "cursor-3"
			resp.HasMore = false
		default:
			t.Errorf("Unexpected cursor %q", req.Cursor)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	writer := &fakeWriter{}
	c := testClient(srv.URL, writer)

	if err := c.SyncAll(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Error syncing: %v", err)
	}
	if len(writer.batches) != 2 {
		t.Fatalf("Expected 2 persisted batches, got %d", len(writer.batches))
	}
	if writer.batches[0][0].ID != "tx_1" || writer.batches[1][0].ID != "tx_2" {
		t.Errorf("Expected both pages persisted in order")
	}
}

func TestSyncAllRejectsStalledCursor(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(syncResponse{
			NextCursor: "",
			HasMore:    true,
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL, &fakeWriter{})

	err := c.SyncAll(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("Expected an error for a cursor that never advances")
	}
	if !strings.Contains(err.Error(), "cursor") {
		t.Errorf("Expected a cursor error, got: %v", err)
	}
	if requests != 1 {
		t.Errorf("Expected the loop to stop after one stalled page, got %d requests", requests)
	}
}

func TestSyncAllSkipsMalformedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(syncResponse{
			Added: []wireTransaction{
				wireRow("tx_bad", "06/01/2025"),
				wireRow("tx_ok", "2025-06-01"),
			},
			HasMore: false,
		})
	}))
	defer srv.Close()

	writer := &fakeWriter{}
	c := testClient(srv.URL, writer)

	if err := c.SyncAll(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Error syncing: %v", err)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 1 {
		t.Fatalf("Expected a single batch with the one well-formed row, got %v", writer.batches)
	}
	if writer.batches[0][0].ID != "tx_ok" {
		t.Errorf("Expected the malformed row skipped, got %s", writer.batches[0][0].ID)
	}
}
