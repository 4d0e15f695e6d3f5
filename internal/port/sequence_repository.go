package port

import (
	"context"

	"github.com/google/uuid"
)

// SequenceRepository is the transactional counter store behind invoice
// numbering. Next returns the next sequence number for (ownerID, year),
// starting at 1, atomically with respect to concurrent callers across
// processes. Numbers are never reissued; a transient conflict is reported
// as domain.ErrSequenceConflict.
type SequenceRepository interface {
	Next(ctx context.Context, ownerID uuid.UUID, year int) (int, error)
	// Current returns the last allocated number, or 0 when no invoice has
	// been issued for the year yet.
	Current(ctx context.Context, ownerID uuid.UUID, year int) (int, error)
}
