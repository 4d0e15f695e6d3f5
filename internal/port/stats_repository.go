package port

import (
	"context"

	"github.com/google/uuid"

	"fatturo/internal/domain"
)

// StatsRepository provides dashboard aggregate queries over invoices.
type StatsRepository interface {
	GetYearSummary(ctx context.Context, userID uuid.UUID, year int) (*domain.YearSummary, error)
	GetMonthlyRevenue(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyRevenue, error)
	GetStatusBreakdown(ctx context.Context, userID uuid.UUID, year int) ([]domain.StatusBreakdown, error)
	GetTopClients(ctx context.Context, userID uuid.UUID, year, limit int) ([]domain.TopClient, error)
}
