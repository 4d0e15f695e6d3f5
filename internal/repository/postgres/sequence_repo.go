package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fatturo/internal/domain"
	"fatturo/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceRepository.
func NewSequenceRepo(db *sqlx.DB) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// nextSequenceQuery performs the whole read-compute-write as one statement.
// The upsert takes a row lock on (user_id, year), so concurrent allocators
// serialize on the counter row and every caller observes a distinct number.
const nextSequenceQuery = `
	INSERT INTO invoice_sequences (user_id, year, last_number, updated_at)
	VALUES ($1, $2, 1, now())
	ON CONFLICT (user_id, year)
	DO UPDATE SET
		last_number = invoice_sequences.last_number + 1,
		updated_at = now()
	RETURNING last_number
`

func (r *sequenceRepo) Next(ctx context.Context, ownerID uuid.UUID, year int) (int, error) {
	return nextSequence(ctx, r.db, ownerID, year)
}

// nextSequence runs the counter upsert on any executor so invoice creation
// can allocate inside its own transaction.
func nextSequence(ctx context.Context, q sqlx.QueryerContext, ownerID uuid.UUID, year int) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, q, &n, nextSequenceQuery, ownerID, year)
	if err != nil {
		if isSerializationError(err) {
			return 0, fmt.Errorf("sequenceRepo.Next: %w", domain.ErrSequenceConflict)
		}
		return 0, fmt.Errorf("sequenceRepo.Next: %w", err)
	}
	return n, nil
}

func (r *sequenceRepo) Current(ctx context.Context, ownerID uuid.UUID, year int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		"SELECT last_number FROM invoice_sequences WHERE user_id = $1 AND year = $2",
		ownerID, year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("sequenceRepo.Current: %w", err)
	}
	return n, nil
}
