package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fatturo/internal/domain"
)

var allStatuses = []domain.InvoiceStatus{
	domain.StatusDraft,
	domain.StatusSent,
	domain.StatusPaid,
	domain.StatusOverdue,
	domain.StatusCancelled,
}

func TestTransition_Table(t *testing.T) {
	allowed := map[domain.InvoiceStatus][]domain.InvoiceStatus{
		domain.StatusDraft:     {domain.StatusSent, domain.StatusCancelled},
		domain.StatusSent:      {domain.StatusPaid, domain.StatusOverdue, domain.StatusCancelled},
		domain.StatusOverdue:   {domain.StatusPaid, domain.StatusCancelled},
		domain.StatusPaid:      {},
		domain.StatusCancelled: {domain.StatusDraft},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			shouldPass := false
			for _, a := range allowed[from] {
				if a == to {
					shouldPass = true
				}
			}

			next, err := domain.Transition(from, to)
			if shouldPass {
				assert.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, next)
			} else {
				assert.Error(t, err, "%s -> %s should be rejected", from, to)
				assert.Equal(t, from, next)
			}
			assert.Equal(t, shouldPass, domain.CanTransition(from, to))
		}
	}
}

func TestTransition_PaidIsTerminal(t *testing.T) {
	for _, to := range allStatuses {
		_, err := domain.Transition(domain.StatusPaid, to)
		assert.Error(t, err, "PAID -> %s must always fail", to)
	}
}

func TestTransition_CancelledIsRecoverable(t *testing.T) {
	next, err := domain.Transition(domain.StatusCancelled, domain.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, next)
}

func TestTransition_ErrorNamesBothEndpoints(t *testing.T) {
	_, err := domain.Transition(domain.StatusPaid, domain.StatusSent)
	require.Error(t, err)

	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	var invalidErr *domain.InvalidTransitionError
	require.True(t, errors.As(err, &invalidErr))
	assert.Equal(t, domain.StatusPaid, invalidErr.From)
	assert.Equal(t, domain.StatusSent, invalidErr.To)
	assert.Contains(t, err.Error(), "PAID")
	assert.Contains(t, err.Error(), "SENT")
}

func TestTransition_UnknownStatus(t *testing.T) {
	_, err := domain.Transition(domain.InvoiceStatus("ARCHIVED"), domain.StatusSent)
	assert.Error(t, err)
	_, err = domain.Transition(domain.StatusDraft, domain.InvoiceStatus("ARCHIVED"))
	assert.Error(t, err)
}

func TestCanEditCanDelete(t *testing.T) {
	for _, s := range allStatuses {
		isDraft := s == domain.StatusDraft
		assert.Equal(t, isDraft, s.CanEdit(), "CanEdit(%s)", s)
		assert.Equal(t, isDraft, s.CanDelete(), "CanDelete(%s)", s)
	}
}

func TestInvoiceStatus_Valid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, domain.InvoiceStatus("ARCHIVED").Valid())
	assert.False(t, domain.InvoiceStatus("").Valid())
	assert.False(t, domain.InvoiceStatus("draft").Valid())
}
