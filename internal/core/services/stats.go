package services

import (
	"context"

	"github.com/custodia-labs/biasctl/internal/core/domain"
	"github.com/custodia-labs/biasctl/internal/core/ports/driven"
	"github.com/custodia-labs/biasctl/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatisticsFailed is the message shown when statistics cannot be loaded.
const StatisticsFailed = "Failed to load statistics"

// StatsService exposes system dashboards.
type StatsService struct {
	api driven.BiasAPI
}

// NewStatsService creates a new stats service.
func NewStatsService(api driven.BiasAPI) *StatsService {
	return &StatsService{api: api}
}

// Statistics returns system-wide counts.
func (s *StatsService) Statistics(ctx context.Context) (*domain.SystemStatistics, error) {
	stats, err := s.api.Statistics(ctx)
	if err != nil {
		return nil, failure("statistics", StatisticsFailed, err)
	}
	return stats, nil
}

// Status returns the backend RAG configuration.
func (s *StatsService) Status(ctx context.Context) (*domain.RAGStatus, error) {
	status, err := s.api.RAGStatus(ctx)
	if err != nil {
		return nil, failure("status", StatisticsFailed, err)
	}
	return status, nil
}

// SearchStats describes the vector store.
func (s *StatsService) SearchStats(ctx context.Context) (domain.SearchStats, error) {
	stats, err := s.api.SearchStats(ctx)
	if err != nil {
		return nil, failure("search stats", StatisticsFailed, err)
	}
	return stats, nil
}
