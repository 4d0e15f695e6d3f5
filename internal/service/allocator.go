package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fatturo/internal/config"
	"fatturo/internal/domain"
	"fatturo/internal/fiscal"
	"fatturo/internal/logger"
	"fatturo/internal/port"
)

// SequenceAllocator hands out gap-free, strictly increasing invoice numbers
// per owner per calendar year. Safe for arbitrary concurrent use; the
// guarantee comes from the counter store's atomic increment, not from
// in-process locking.
type SequenceAllocator interface {
	Allocate(ctx context.Context, ownerID uuid.UUID, year int) (*domain.SequenceAssignment, error)
}

type sequenceAllocator struct {
	repo    port.SequenceRepository
	prefix  string
	retries int
	backoff time.Duration
	log     zerolog.Logger
}

// NewSequenceAllocator creates a SequenceAllocator with bounded retry on
// transient store conflicts. An empty prefix uses the default "FT".
func NewSequenceAllocator(repo port.SequenceRepository, prefix string, cfg config.SequenceConfig) SequenceAllocator {
	retries := cfg.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &sequenceAllocator{
		repo:    repo,
		prefix:  prefix,
		retries: retries,
		backoff: cfg.RetryBackoff,
		log:     logger.WithComponent("allocator"),
	}
}

func (a *sequenceAllocator) Allocate(ctx context.Context, ownerID uuid.UUID, year int) (*domain.SequenceAssignment, error) {
	var lastErr error
	for attempt := 1; attempt <= a.retries; attempt++ {
		seq, err := a.repo.Next(ctx, ownerID, year)
		if err == nil {
			return &domain.SequenceAssignment{
				Year:           year,
				SequenceNumber: seq,
				Number:         fiscal.FormatInvoiceNumberWithPrefix(a.prefix, seq, year),
			}, nil
		}
		if !errors.Is(err, domain.ErrSequenceConflict) {
			return nil, err
		}
		lastErr = err
		a.log.Warn().
			Str("owner_id", ownerID.String()).
			Int("year", year).
			Int("attempt", attempt).
			Msg("sequence allocation conflict, retrying")
		if err := sleepBackoff(ctx, a.backoff, attempt); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("sequence allocation exhausted %d attempts: %w", a.retries, lastErr)
}

// sleepBackoff waits attempt*base, honoring context cancellation.
func sleepBackoff(ctx context.Context, base time.Duration, attempt int) error {
	if base <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(attempt) * base):
		return nil
	}
}
