package service

import (
	"context"

	"finsight/internal/models"
	"finsight/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService covers the per-user settings the engine consults, currently
// the persisted demo/live preference.
type UserService struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *UserService) DemoPreference(ctx context.Context, userID uuid.UUID) (models.DemoPreference, error) {
	return s.userRepo.DemoPreference(ctx, userID)
}

func (s *UserService) SetDemoPreference(ctx context.Context, userID uuid.UUID, demoMode bool) error {
	pref := models.DemoPreferenceLive
	if demoMode {
		pref = models.DemoPreferenceDemo
	}
	if err := s.userRepo.SetDemoPreference(ctx, userID, pref); err != nil {
		return err
	}
	s.logger.Info("Demo preference updated",
		zap.String("user_id", userID.String()),
		zap.String("preference", string(pref)),
	)
	return nil
}
