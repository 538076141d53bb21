package repository

import (
	"context"
	"errors"

	"finsight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var userColumns = []string{
	"id", "username", "email", "password", "full_history", "demo_preference",
	"created_at", "updated_at",
}

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns(userColumns...).
		Values(
			user.ID, user.Username, user.Email, user.Password, user.FullHistory,
			string(user.DemoPreference), user.CreatedAt, user.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, cond squirrel.Eq) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(cond).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	var pref string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullHistory,
		&pref, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.DemoPreference = models.DemoPreference(pref)

	return &user, nil
}

// AnyWithData returns some user owning at least one transaction, or nil when
// none exists. Used when real rows are present but no session resolves.
func (r *UserRepository) AnyWithData(ctx context.Context) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where("EXISTS (SELECT 1 FROM transactions t WHERE t.user_id = users.id)").
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	var pref string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullHistory,
		&pref, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.DemoPreference = models.DemoPreference(pref)

	return &user, nil
}

// DemoPreference reads only the persisted tri-state preference.
func (r *UserRepository) DemoPreference(ctx context.Context, id uuid.UUID) (models.DemoPreference, error) {
	query := squirrel.Select("demo_preference").
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return models.DemoPreferenceUnset, err
	}

	var pref string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&pref); err != nil {
		return models.DemoPreferenceUnset, err
	}
	return models.DemoPreference(pref), nil
}

func (r *UserRepository) SetDemoPreference(ctx context.Context, id uuid.UUID, pref models.DemoPreference) error {
	query := squirrel.Update("users").
		Set("demo_preference", string(pref)).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
