package service

import (
	"context"

	"github.com/google/uuid"

	"fatturo/internal/domain"
	"fatturo/internal/port"
)

// DashboardSummary bundles the per-year dashboard aggregates.
type DashboardSummary struct {
	Summary   *domain.YearSummary      `json:"summary"`
	Monthly   []domain.MonthlyRevenue  `json:"monthly"`
	ByStatus  []domain.StatusBreakdown `json:"by_status"`
	TopClient []domain.TopClient       `json:"top_clients"`
}

// StatsService defines the dashboard statistics contract.
type StatsService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID, year int) (*DashboardSummary, error)
}

type statsService struct {
	repo port.StatsRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(repo port.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetDashboard(ctx context.Context, userID uuid.UUID, year int) (*DashboardSummary, error) {
	summary, err := s.repo.GetYearSummary(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.GetMonthlyRevenue(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.GetStatusBreakdown(ctx, userID, year)
	if err != nil {
		return nil, err
	}
	topClients, err := s.repo.GetTopClients(ctx, userID, year, 5)
	if err != nil {
		return nil, err
	}
	return &DashboardSummary{
		Summary:   summary,
		Monthly:   monthly,
		ByStatus:  byStatus,
		TopClient: topClients,
	}, nil
}
