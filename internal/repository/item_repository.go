package repository

import (
	"context"
	"fmt"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ItemRepository covers the user's bank connections: access tokens for the
// provider client and the account existence probe.
type ItemRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewItemRepository(db *pgxpool.Pool, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ItemRepository) AccessTokens(ctx context.Context, userID uuid.UUID) ([]string, error) {
	sql, args, err := squirrel.Select("access_token").
		From("items").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query item tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// UpsertItem stores a bank connection and its accounts, skipping rows that
// already exist.
func (r *ItemRepository) UpsertItem(ctx context.Context, userID uuid.UUID, accessToken string, item models.Item) error {
	itemSQL, itemArgs, err := squirrel.Insert("items").
		Columns("id", "user_id", "access_token", "institution_id", "institution_name").
		Values(item.ID, userID, accessToken, item.InstitutionID, item.InstitutionName).
		Suffix("ON CONFLICT (id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, itemSQL, itemArgs...); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	for _, a := range item.Accounts {
		accountSQL, accountArgs, err := squirrel.Insert("accounts").
			Columns("id", "item_id", "name", "official_name", "mask", "type",
				"available", "current", "credit_limit", "iso_currency_code").
			Values(a.ID, item.ID, a.Name, a.OfficialName, a.Mask, string(a.Type),
				a.Balances.Available, a.Balances.Current, a.Balances.Limit, a.Balances.Currency).
			Suffix("ON CONFLICT (id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := r.db.Exec(ctx, accountSQL, accountArgs...); err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
	}

	r.logger.Debug("Upserted item",
		zap.String("item_id", item.ID),
		zap.Int("accounts", len(item.Accounts)),
	)
	return nil
}

func (r *ItemRepository) CountAccountsForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("accounts a").
		Join("items i ON i.id = a.item_id").
		Where(squirrel.Eq{"i.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user accounts: %w", err)
	}
	return count, nil
}
