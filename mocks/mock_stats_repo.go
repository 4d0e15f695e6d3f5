package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fatturo/internal/domain"
)

// MockStatsRepo is a mock implementation of port.StatsRepository.
type MockStatsRepo struct {
	mock.Mock
}

func (m *MockStatsRepo) GetYearSummary(ctx context.Context, userID uuid.UUID, year int) (*domain.YearSummary, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YearSummary), args.Error(1)
}

func (m *MockStatsRepo) GetMonthlyRevenue(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyRevenue, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyRevenue), args.Error(1)
}

func (m *MockStatsRepo) GetStatusBreakdown(ctx context.Context, userID uuid.UUID, year int) ([]domain.StatusBreakdown, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusBreakdown), args.Error(1)
}

func (m *MockStatsRepo) GetTopClients(ctx context.Context, userID uuid.UUID, year, limit int) ([]domain.TopClient, error) {
	args := m.Called(ctx, userID, year, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopClient), args.Error(1)
}
