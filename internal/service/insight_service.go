package service

import (
	"context"
	"fmt"
	"strings"

	"finsight/internal/demo"
	"finsight/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const insightInstruction = `You are a personal finance assistant. Given account balances, ` +
	`spending KPIs and category totals, write a short plain-text summary (3-4 sentences) of the ` +
	`user's financial picture. Mention the largest spending category and the daily average. ` +
	`Do not use markdown, bullet points or headings.`

// InsightService produces the dashboard summary line. When the LLM is not
// configured or fails, it falls back to the dataset's fixed summary so the
// dashboard output stays deterministic.
type InsightService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewInsightService(cfg *config.GigaChatConfig, logger *zap.Logger) (*InsightService, error) {
	if cfg.APIKey == "" {
		logger.Info("GigaChat key not configured, insight summaries use the fixed fallback")
		return &InsightService{logger: logger}, nil
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = insightInstruction
	model.Temperature = 0.3

	return &InsightService{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// DashboardSummary describes a snapshot. Errors never propagate: the caller
// always gets a usable string.
func (s *InsightService) DashboardSummary(ctx context.Context, ds *demo.Dataset) string {
	if s.client == nil {
		return ds.Summary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total balance: %.2f USD, net worth: %.2f USD.\n", ds.TotalBalance, ds.NetWorth)
	fmt.Fprintf(&b, "30-day spending: %.2f USD, daily average: %.2f USD.\n", ds.TotalSpending, ds.DailyAverage)
	for _, c := range ds.TopCategories {
		fmt.Fprintf(&b, "Category %s: %.2f USD.\n", c.Name, c.Value)
	}

	resp, err := s.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: b.String()},
	})
	if err != nil || len(resp.Choices) == 0 {
		if err != nil {
			s.logger.Warn("Insight generation failed, using fallback summary", zap.Error(err))
		}
		return ds.Summary
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func (s *InsightService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
