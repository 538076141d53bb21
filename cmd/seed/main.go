// Seeds the database with the synthetic dataset under a dedicated demo
// user. Useful for sandbox environments and for exercising the store-native
// filter backend against the same logical rows the in-memory backend sees.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"finsight/internal/demo"
	"finsight/internal/models"
	"finsight/internal/repository"
	"finsight/pkg/auth"
	"finsight/pkg/config"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const demoEmail = "demo@finsight.local"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db, appLogger)
	itemRepo := repository.NewItemRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	ds := demo.Snapshot()

	for _, item := range ds.Items {
		if err := itemRepo.UpsertItem(ctx, user.ID, "access-demo-"+item.ID, item); err != nil {
			appLogger.Fatal("Failed to seed item", zap.String("item_id", item.ID), zap.Error(err))
		}
	}

	if err := txRepo.CreateBatch(ctx, user.ID, ds.Transactions); err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	accountCount, err := itemRepo.CountAccountsForUser(ctx, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to verify seeded accounts", zap.Error(err))
	}

	appLogger.Info("Seeding completed",
		zap.String("user_id", user.ID.String()),
		zap.Int("items", len(ds.Items)),
		zap.Int("accounts", accountCount),
		zap.Int("transactions", len(ds.Transactions)),
	)
}

func ensureDemoUser(ctx context.Context, users *repository.UserRepository) (*models.User, error) {
	existing, err := users.GetByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	password, err := auth.HashPassword("demo-password")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New(),
		Username:       "Demo User",
		Email:          demoEmail,
		Password:       password,
		FullHistory:    true,
		DemoPreference: models.DemoPreferenceLive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
