package service

import (
	"context"
	"errors"

	"finsight/internal/models"
	"finsight/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithUserID stamps the authenticated user onto a request context. The auth
// middleware is the only writer.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// ContextSession implements SessionProvider against the request context:
// no stamped user means no session, which is not an error.
type ContextSession struct {
	users *repository.UserRepository
}

func NewContextSession(users *repository.UserRepository) *ContextSession {
	return &ContextSession{users: users}
}

func (s *ContextSession) CurrentUser(ctx context.Context) (*models.User, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
