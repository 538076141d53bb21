package service

import (
	"context"
	"time"

	"finsight/internal/demo"
	"finsight/internal/dto"
	"finsight/internal/models"
	"finsight/internal/txfilter"

	"go.uber.org/zap"
)

const emptyLiveMessage = "No transactions found. Your linked accounts may need transaction history generated."

// TransactionService is the single entry point combining mode resolution,
// filter execution and pagination. The same filter behaves identically
// whether it runs against the synthetic dataset or the live store.
type TransactionService struct {
	resolver *ModeResolver
	store    TransactionStore
	logger   *zap.Logger
}

func NewTransactionService(resolver *ModeResolver, store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		resolver: resolver,
		store:    store,
		logger:   logger,
	}
}

func (s *TransactionService) ResolveAndFetch(ctx context.Context, f txfilter.Filter) (*dto.TransactionPage, error) {
	mode, user := s.resolver.Resolve(ctx)

	switch mode {
	case ModeDemo:
		ds := demo.Snapshot()
		// The synthetic user is entitled to full history, so no clamp.
		total, page := txfilter.Run(ds.Transactions, f.Normalize(true, time.Now()))
		s.logger.Debug("Served demo transactions",
			zap.Int("total", total),
			zap.Int("page_len", len(page)),
		)
		return &dto.TransactionPage{Size: total, Data: page, Mode: mode.String()}, nil

	case ModeLiveEmpty:
		return &dto.TransactionPage{
			Size:    0,
			Data:    []models.Transaction{},
			Mode:    mode.String(),
			Message: emptyLiveMessage,
		}, nil

	default:
		normalized := f.Normalize(user.FullHistory, time.Now())
		total, rows, err := s.store.Find(ctx, user.ID, normalized)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []models.Transaction{}
		}
		return &dto.TransactionPage{Size: total, Data: rows, Mode: mode.String()}, nil
	}
}

// Snapshot exposes the synthetic dataset for the dashboard and account
// widgets, independent of filtering.
func (s *TransactionService) Snapshot() *demo.Dataset {
	return demo.Snapshot()
}
