// Package plaid is the boundary client for the external bank-data
// aggregation provider. Synchronization errors are reported to the caller
// but are never fatal: the resolver treats a failed sync as "still zero
// rows".
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finsight/internal/models"
	"finsight/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource yields the access tokens of a user's linked items.
type TokenSource interface {
	AccessTokens(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// TransactionWriter persists fetched rows.
type TransactionWriter interface {
	CreateBatch(ctx context.Context, userID uuid.UUID, transactions []models.Transaction) error
}

type Client struct {
	clientID string
	secret   string
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	writer   TransactionWriter
	logger   *zap.Logger
}

func NewClient(cfg *config.PlaidConfig, tokens TokenSource, writer TransactionWriter, logger *zap.Logger) *Client {
	return &Client{
		clientID: cfg.ClientID,
		secret:   cfg.Secret,
		baseURL:  cfg.BaseURL(),
		http:     &http.Client{Timeout: 30 * time.Second},
		tokens:   tokens,
		writer:   writer,
		logger:   logger,
	}
}

type syncRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	AccessToken string `json:"access_token"`
	Cursor      string `json:"cursor,omitempty"`
}

type wireTransaction struct {
	TransactionID  string   `json:"transaction_id"`
	AccountID      string   `json:"account_id"`
	Amount         float64  `json:"amount"`
	Currency       string   `json:"iso_currency_code"`
	Category       []string `json:"category"`
	CategoryID     string   `json:"category_id"`
	Date           string   `json:"date"`
	Name           string   `json:"name"`
	MerchantName   string   `json:"merchant_name"`
	PaymentChannel string   `json:"payment_channel"`
	Pending        bool     `json:"pending"`
	PFC            *struct {
		Primary  string `json:"primary"`
		Detailed string `json:"detailed"`
	} `json:"personal_finance_category"`
}

type syncResponse struct {
	Added      []wireTransaction `json:"added"`
	NextCursor string            `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
}

// SyncAll pulls every item of the user once and stores the added rows.
// Idempotent: inserts conflict-skip on transaction ID.
func (c *Client) SyncAll(ctx context.Context, userID uuid.UUID) error {
	tokens, err := c.tokens.AccessTokens(ctx, userID)
	if err != nil {
		return fmt.Errorf("load access tokens: %w", err)
	}

	for _, token := range tokens {
		if err := c.syncItem(ctx, userID, token); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) syncItem(ctx context.Context, userID uuid.UUID, accessToken string) error {
	cursor := ""
	for {
		resp, err := c.syncPage(ctx, accessToken, cursor)
		if err != nil {
			return err
		}

		transactions := make([]models.Transaction, 0, len(resp.Added))
		for _, w := range resp.Added {
			tx, err := w.toModel()
			if err != nil {
				c.logger.Warn("Skipping malformed provider transaction",
					zap.String("transaction_id", w.TransactionID),
					zap.Error(err),
				)
				continue
			}
			transactions = append(transactions, tx)
		}
		if err := c.writer.CreateBatch(ctx, userID, transactions); err != nil {
			return err
		}

		if !resp.HasMore {
			return nil
		}
		// A provider claiming more pages must advance the cursor; a stalled
		// cursor would loop forever.
		if resp.NextCursor == cursor {
			return fmt.Errorf("provider cursor did not advance at %q", cursor)
		}
		cursor = resp.NextCursor
	}
}

func (c *Client) syncPage(ctx context.Context, accessToken, cursor string) (*syncResponse, error) {
	body, err := json.Marshal(syncRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
		Cursor:      cursor,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions/sync", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("provider returned status %d: %s", resp.StatusCode, msg)
	}

	var out syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}
	return &out, nil
}

func (w wireTransaction) toModel() (models.Transaction, error) {
	date, err := time.ParseInLocation("2006-01-02", w.Date, time.UTC)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad date %q: %w", w.Date, err)
	}

	tx := models.Transaction{
		ID:             w.TransactionID,
		AccountID:      w.AccountID,
		Amount:         w.Amount,
		Currency:       w.Currency,
		Category:       w.Category,
		CategoryID:     w.CategoryID,
		Name:           w.Name,
		MerchantName:   w.MerchantName,
		PaymentChannel: w.PaymentChannel,
		Date:           date,
		Pending:        w.Pending,
	}
	if w.PFC != nil {
		tx.PersonalFinanceCategory = &models.PersonalFinanceCategory{
			Primary:  w.PFC.Primary,
			Detailed: w.PFC.Detailed,
		}
	}
	return tx, nil
}
