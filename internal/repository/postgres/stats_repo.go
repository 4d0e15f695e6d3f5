package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fatturo/internal/domain"
	"fatturo/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

const yearSummaryQuery = `SELECT
	COALESCE(SUM(CASE WHEN status = 'PAID' THEN net_payable END), 0) AS total_revenue,
	COALESCE(SUM(CASE WHEN status = 'SENT' THEN net_payable END), 0) AS outstanding_amount,
	COALESCE(SUM(CASE WHEN status = 'OVERDUE' THEN net_payable END), 0) AS overdue_amount,
	COUNT(*) AS total_invoices,
	COUNT(CASE WHEN status = 'PAID' THEN 1 END) AS paid_invoices
FROM invoices WHERE user_id = $1 AND year = $2`

func (r *statsRepo) GetYearSummary(ctx context.Context, userID uuid.UUID, year int) (*domain.YearSummary, error) {
	var summary domain.YearSummary
	if err := r.db.GetContext(ctx, &summary, yearSummaryQuery, userID, year); err != nil {
		return nil, fmt.Errorf("statsRepo.GetYearSummary invoices: %w", err)
	}

	var clientCount int
	if err := r.db.GetContext(ctx, &clientCount,
		"SELECT COUNT(*) FROM clients WHERE user_id = $1 AND is_deleted = false", userID); err != nil {
		return nil, fmt.Errorf("statsRepo.GetYearSummary clients: %w", err)
	}
	summary.TotalClients = clientCount

	return &summary, nil
}

const monthlyRevenueQuery = `SELECT
	EXTRACT(MONTH FROM issue_date)::int AS month,
	$2::int AS year,
	COALESCE(SUM(net_payable), 0) AS revenue,
	COUNT(*) AS count
FROM invoices
WHERE user_id = $1 AND year = $2 AND status = 'PAID'
GROUP BY month
ORDER BY month`

func (r *statsRepo) GetMonthlyRevenue(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyRevenue, error) {
	var rows []domain.MonthlyRevenue
	if err := r.db.SelectContext(ctx, &rows, monthlyRevenueQuery, userID, year); err != nil {
		return nil, fmt.Errorf("statsRepo.GetMonthlyRevenue: %w", err)
	}

	// Fill every month so the dashboard always gets twelve entries.
	byMonth := make(map[int]domain.MonthlyRevenue, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}
	out := make([]domain.MonthlyRevenue, 0, 12)
	for m := 1; m <= 12; m++ {
		if row, ok := byMonth[m]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, domain.MonthlyRevenue{Month: m, Year: year})
	}
	return out, nil
}

const statusBreakdownQuery = `SELECT
	status,
	COUNT(*) AS count,
	COALESCE(SUM(net_payable), 0) AS amount
FROM invoices
WHERE user_id = $1 AND year = $2
GROUP BY status
ORDER BY status`

func (r *statsRepo) GetStatusBreakdown(ctx context.Context, userID uuid.UUID, year int) ([]domain.StatusBreakdown, error) {
	var rows []domain.StatusBreakdown
	if err := r.db.SelectContext(ctx, &rows, statusBreakdownQuery, userID, year); err != nil {
		return nil, fmt.Errorf("statsRepo.GetStatusBreakdown: %w", err)
	}
	return rows, nil
}

const topClientsQuery = `SELECT
	i.client_id,
	c.name,
	COALESCE(SUM(i.net_payable), 0) AS revenue,
	COUNT(*) AS count
FROM invoices i
INNER JOIN clients c ON c.id = i.client_id
WHERE i.user_id = $1 AND i.year = $2 AND i.status = 'PAID'
GROUP BY i.client_id, c.name
ORDER BY revenue DESC
LIMIT $3`

func (r *statsRepo) GetTopClients(ctx context.Context, userID uuid.UUID, year, limit int) ([]domain.TopClient, error) {
	var rows []domain.TopClient
	if err := r.db.SelectContext(ctx, &rows, topClientsQuery, userID, year, limit); err != nil {
		return nil, fmt.Errorf("statsRepo.GetTopClients: %w", err)
	}
	return rows, nil
}
