package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fatturo/internal/domain"
	"fatturo/internal/fiscal"
	"fatturo/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const insertInvoiceQuery = `INSERT INTO invoices (
	id, user_id, client_id, number, year, sequence_number, status,
	issue_date, due_date,
	iva_rate, apply_ritenuta, ritenuta_rate, apply_cassa, cassa_rate, apply_bollo,
	subtotal, cassa_amount, taxable_base, iva_amount, bollo_amount,
	gross_total, ritenuta_amount, net_payable,
	notes, payment_terms, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7,
	$8, $9,
	$10, $11, $12, $13, $14, $15,
	$16, $17, $18, $19, $20,
	$21, $22, $23,
	$24, $25, $26, $27
)`

const insertItemQuery = `INSERT INTO invoice_items (
	id, invoice_id, description, quantity, unit_price_cents, amount, sort_order
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	// Allocate the number in the same transaction as the insert so an
	// aborted insert does not persist the increment, and a committed
	// increment always has its invoice row.
	seq, err := nextSequence(ctx, tx, inv.UserID, inv.Year)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	inv.SequenceNumber = seq
	inv.Number = fiscal.FormatInvoiceNumber(seq, inv.Year)

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}

	_, err = tx.ExecContext(ctx, insertInvoiceQuery,
		inv.ID, inv.UserID, inv.ClientID, inv.Number, inv.Year, inv.SequenceNumber, inv.Status,
		inv.IssueDate, inv.DueDate,
		inv.IvaRate, inv.ApplyRitenuta, inv.RitenutaRate, inv.ApplyCassa, inv.CassaRate, inv.ApplyBollo,
		inv.Subtotal, inv.CassaAmount, inv.TaxableBase, inv.IvaAmount, inv.BolloAmount,
		inv.GrossTotal, inv.RitenutaAmount, inv.NetPayable,
		inv.Notes, inv.PaymentTerms, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		// The (user_id, year, sequence_number) backstop index only fires
		// if two allocations raced past the counter lock; treat it as a
		// retryable conflict, never as a duplicate number handed out.
		if isUniqueViolation(err, "invoices_user_year_seq_key") {
			return fmt.Errorf("invoiceRepo.Create: %w", domain.ErrSequenceConflict)
		}
		return fmt.Errorf("invoiceRepo.Create invoice: %w", err)
	}

	if err := insertItems(ctx, tx, inv.ID, items); err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isSerializationError(err) {
			return fmt.Errorf("invoiceRepo.Create commit: %w", domain.ErrSequenceConflict)
		}
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, invoiceID uuid.UUID, items []domain.InvoiceItem) error {
	for i := range items {
		item := &items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.InvoiceID = invoiceID
		item.SortOrder = i
		_, err := tx.ExecContext(ctx, insertItemQuery,
			item.ID, item.InvoiceID, item.Description, item.Quantity,
			item.UnitPriceCents, item.Amount, item.SortOrder)
		if err != nil {
			return fmt.Errorf("insert item %d: %w", i, err)
		}
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND user_id = $2", invoiceID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetItems(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceItem, error) {
	var items []domain.InvoiceItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order ASC", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetItems: %w", err)
	}
	return items, nil
}

func (r *invoiceRepo) List(ctx context.Context, userID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where := "WHERE user_id = $1"
	args := []interface{}{userID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ClientID != uuid.Nil {
		args = append(args, filter.ClientID)
		where += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(" AND year = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM invoices %s ORDER BY issue_date DESC, sequence_number DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

const updateInvoiceQuery = `UPDATE invoices SET
	client_id = $3, issue_date = $4, due_date = $5,
	iva_rate = $6, apply_ritenuta = $7, ritenuta_rate = $8,
	apply_cassa = $9, cassa_rate = $10, apply_bollo = $11,
	subtotal = $12, cassa_amount = $13, taxable_base = $14, iva_amount = $15,
	bollo_amount = $16, gross_total = $17, ritenuta_amount = $18, net_payable = $19,
	notes = $20, payment_terms = $21, updated_at = $22
WHERE id = $1 AND user_id = $2`

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update begin: %w", err)
	}
	defer tx.Rollback()

	inv.UpdatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx, updateInvoiceQuery,
		inv.ID, inv.UserID, inv.ClientID, inv.IssueDate, inv.DueDate,
		inv.IvaRate, inv.ApplyRitenuta, inv.RitenutaRate,
		inv.ApplyCassa, inv.CassaRate, inv.ApplyBollo,
		inv.Subtotal, inv.CassaAmount, inv.TaxableBase, inv.IvaAmount,
		inv.BolloAmount, inv.GrossTotal, inv.RitenutaAmount, inv.NetPayable,
		inv.Notes, inv.PaymentTerms, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update invoice: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM invoice_items WHERE invoice_id = $1", inv.ID); err != nil {
		return fmt.Errorf("invoiceRepo.Update delete items: %w", err)
	}
	if err := insertItems(ctx, tx, inv.ID, items); err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Update commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, status domain.InvoiceStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET status = $3, updated_at = now() WHERE id = $1 AND user_id = $2",
		invoiceID, userID, status)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	// invoice_items cascade via FK. invoice_sequences is untouched: the
	// consumed number stays consumed.
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND user_id = $2", invoiceID, userID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := "UPDATE invoices SET status = $1, updated_at = now() WHERE status = $2 AND due_date < now()"
	args := []interface{}{domain.StatusOverdue, domain.StatusSent}
	if userID != uuid.Nil {
		query += " AND user_id = $3"
		args = append(args, userID)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue rows: %w", err)
	}
	return n, nil
}
