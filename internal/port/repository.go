// Package port defines the persistence contracts the engine depends on.
// Implementations live under internal/repository.
package port

import (
	"context"

	"github.com/google/uuid"

	"fatturo/internal/domain"
)

// InvoiceFilter narrows invoice listing.
type InvoiceFilter struct {
	Status   domain.InvoiceStatus
	ClientID uuid.UUID
	Year     int
}

// InvoiceRepository defines the contract for invoice persistence.
// All query methods include userID to enforce owner isolation at the data
// layer.
type InvoiceRepository interface {
	// Create allocates the next sequence number for (userID, year) and
	// inserts the invoice with its items in a single transaction. On
	// success inv.SequenceNumber, inv.Number and item IDs are populated.
	// A transient allocation conflict is reported as
	// domain.ErrSequenceConflict and is safe to retry.
	Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceItem, error)
	List(ctx context.Context, userID uuid.UUID, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	// Update rewrites the invoice fields and replaces its line items.
	Update(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error
	UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status domain.InvoiceStatus) error
	// Delete removes the invoice and its items. The consumed sequence
	// number is not reclaimed.
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
	// MarkOverdue flips every SENT invoice whose due date is before now to
	// OVERDUE and returns the number of rows changed.
	MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error)
}

// ClientRepository defines the contract for client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, userID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	// Delete soft-deletes the client; invoices keep referencing it.
	Delete(ctx context.Context, userID, clientID uuid.UUID) error
}
