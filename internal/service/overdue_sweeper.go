package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fatturo/internal/logger"
)

// OverdueSweeper periodically moves SENT invoices whose due date has
// elapsed into OVERDUE, across all owners.
type OverdueSweeper struct {
	invoices InvoiceService
	interval time.Duration
	log      zerolog.Logger
}

// NewOverdueSweeper creates a new OverdueSweeper.
func NewOverdueSweeper(invoices InvoiceService, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{
		invoices: invoices,
		interval: interval,
		log:      logger.WithComponent("overdue_sweeper"),
	}
}

// Start runs an immediate sweep and then one per interval until ctx is
// canceled.
func (w *OverdueSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info().Dur("interval", w.interval).Msg("overdue sweeper started")
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("overdue sweeper shutting down")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueSweeper) sweep(ctx context.Context) {
	n, err := w.invoices.MarkOverdue(ctx, uuid.Nil)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}
	if n > 0 {
		w.log.Info().Int64("invoices", n).Msg("marked invoices overdue")
	}
}
