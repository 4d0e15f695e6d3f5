package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fatturo/internal/domain"
	"fatturo/internal/service"
	"fatturo/mocks"
)

func TestStatsService_GetDashboard(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)
	userID := uuid.New()

	summary := &domain.YearSummary{TotalRevenue: 1200000, TotalInvoices: 12, PaidInvoices: 8}
	monthly := []domain.MonthlyRevenue{{Month: 1, Revenue: 100000}, {Month: 2, Revenue: 200000}}
	byStatus := []domain.StatusBreakdown{{Status: domain.StatusPaid, Count: 8}}
	topClients := []domain.TopClient{{Name: "Acme S.r.l.", Revenue: 900000}}

	repo.On("GetYearSummary", mock.Anything, userID, 2026).Return(summary, nil)
	repo.On("GetMonthlyRevenue", mock.Anything, userID, 2026).Return(monthly, nil)
	repo.On("GetStatusBreakdown", mock.Anything, userID, 2026).Return(byStatus, nil)
	repo.On("GetTopClients", mock.Anything, userID, 2026, 5).Return(topClients, nil)

	dashboard, err := svc.GetDashboard(context.Background(), userID, 2026)
	require.NoError(t, err)
	assert.Equal(t, summary, dashboard.Summary)
	assert.Equal(t, monthly, dashboard.Monthly)
	assert.Equal(t, byStatus, dashboard.ByStatus)
	assert.Equal(t, topClients, dashboard.TopClient)
	repo.AssertExpectations(t)
}

func TestStatsService_GetDashboard_PropagatesError(t *testing.T) {
	repo := new(mocks.MockStatsRepo)
	svc := service.NewStatsService(repo)
	userID := uuid.New()

	boom := errors.New("statsRepo.GetYearSummary: connection refused")
	repo.On("GetYearSummary", mock.Anything, userID, 2026).Return(nil, boom)

	_, err := svc.GetDashboard(context.Background(), userID, 2026)
	assert.ErrorIs(t, err, boom)
	repo.AssertNotCalled(t, "GetMonthlyRevenue")
}
