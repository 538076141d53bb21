package repository

import (
	"context"
	"fmt"

	"finsight/internal/models"
	"finsight/internal/txfilter"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var transactionColumns = []string{
	"id", "account_id", "amount", "iso_currency_code", "category", "category_id",
	"name", "merchant_name", "payment_channel", "date", "pending",
	"pfc_primary", "pfc_detailed",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// CountAll is the cheap existence probe the mode resolver uses: it is not
// scoped to a user on purpose.
func (r *TransactionRepository) CountAll(ctx context.Context) (int, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("transactions").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

func (r *TransactionRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count user transactions: %w", err)
	}
	return count, nil
}

// Find executes a compiled filter against the store and returns the total
// match count alongside the requested page, ordered date DESC, id ASC.
func (r *TransactionRepository) Find(ctx context.Context, userID uuid.UUID, f txfilter.Filter) (int, []models.Transaction, error) {
	countBuilder := f.Apply(
		squirrel.Select("COUNT(*)").
			From("transactions").
			Where(squirrel.Eq{"user_id": userID}),
	).PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return 0, nil, err
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count filtered transactions: %w", err)
	}

	selectBuilder := f.OrderAndPage(f.Apply(
		squirrel.Select(transactionColumns...).
			From("transactions").
			Where(squirrel.Eq{"user_id": userID}),
	)).PlaceholderFormat(squirrel.Dollar)

	selectSQL, selectArgs, err := selectBuilder.ToSql()
	if err != nil {
		return 0, nil, err
	}

	rows, err := r.db.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return 0, nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var pfcPrimary, pfcDetailed *string
		if err := rows.Scan(
			&tx.ID, &tx.AccountID, &tx.Amount, &tx.Currency, &tx.Category, &tx.CategoryID,
			&tx.Name, &tx.MerchantName, &tx.PaymentChannel, &tx.Date, &tx.Pending,
			&pfcPrimary, &pfcDetailed,
		); err != nil {
			return 0, nil, err
		}
		if pfcPrimary != nil {
			tx.PersonalFinanceCategory = &models.PersonalFinanceCategory{Primary: *pfcPrimary}
			if pfcDetailed != nil {
				tx.PersonalFinanceCategory.Detailed = *pfcDetailed
			}
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	return total, transactions, nil
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, userID uuid.UUID, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.Insert("transactions").
		Columns(append([]string{"user_id"}, transactionColumns...)...).
		PlaceholderFormat(squirrel.Dollar).
		Suffix("ON CONFLICT (id) DO NOTHING")

	for _, tx := range transactions {
		var pfcPrimary, pfcDetailed *string
		if tx.PersonalFinanceCategory != nil {
			pfcPrimary = &tx.PersonalFinanceCategory.Primary
			pfcDetailed = &tx.PersonalFinanceCategory.Detailed
		}
		builder = builder.Values(
			userID, tx.ID, tx.AccountID, tx.Amount, tx.Currency, tx.Category, tx.CategoryID,
			tx.Name, tx.MerchantName, tx.PaymentChannel, tx.Date, tx.Pending,
			pfcPrimary, pfcDetailed,
		)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}

	r.logger.Debug("Inserted transaction batch",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(transactions)),
	)
	return nil
}
