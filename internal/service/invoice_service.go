package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fatturo/internal/config"
	"fatturo/internal/domain"
	"fatturo/internal/fiscal"
	"fatturo/internal/logger"
	"fatturo/internal/port"
)

// InvoiceItemInput is the DTO for a single invoice line.
type InvoiceItemInput struct {
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unit_price_cents"`
}

// CreateInvoiceInput is the DTO for creating or updating an invoice.
type CreateInvoiceInput struct {
	ClientID      uuid.UUID          `json:"client_id"`
	IssueDate     time.Time          `json:"issue_date"`
	DueDate       time.Time          `json:"due_date"`
	Items         []InvoiceItemInput `json:"items"`
	IvaRate       float64            `json:"iva_rate"`
	ApplyRitenuta bool               `json:"apply_ritenuta"`
	RitenutaRate  float64            `json:"ritenuta_rate"`
	ApplyCassa    bool               `json:"apply_cassa"`
	CassaRate     float64            `json:"cassa_rate"`
	ApplyBollo    bool               `json:"apply_bollo"`
	Notes         string             `json:"notes"`
	PaymentTerms  string             `json:"payment_terms"`
}

// InvoiceService defines the invoice management contract.
type InvoiceService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, []domain.InvoiceItem, error)
	List(ctx context.Context, userID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	Update(ctx context.Context, userID, invoiceID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
	UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, requested domain.InvoiceStatus) (*domain.Invoice, domain.InvoiceStatus, error)
	Duplicate(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error)
	MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error)
}

type invoiceService struct {
	invoices port.InvoiceRepository
	clients  port.ClientRepository
	seqCfg   config.SequenceConfig
	log      zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(invoices port.InvoiceRepository, clients port.ClientRepository, seqCfg config.SequenceConfig) InvoiceService {
	if seqCfg.MaxRetries < 1 {
		seqCfg.MaxRetries = 1
	}
	return &invoiceService{
		invoices: invoices,
		clients:  clients,
		seqCfg:   seqCfg,
		log:      logger.WithComponent("invoice_service"),
	}
}

// validateInput rejects anything the calculator is not required to defend
// against: empty item lists, non-positive quantities, negative prices, and
// out-of-range rates.
func validateInput(input CreateInvoiceInput) error {
	if len(input.Items) == 0 {
		return domain.ErrNoLineItems
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitPriceCents < 0 {
			return domain.ErrInvalidLineItem
		}
	}
	for _, rate := range []float64{input.IvaRate, input.RitenutaRate, input.CassaRate} {
		if rate < 0 || rate > 100 {
			return domain.ErrInvalidTaxRate
		}
	}
	return nil
}

func buildItems(inputs []InvoiceItemInput) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(inputs))
	for i, in := range inputs {
		items[i] = domain.InvoiceItem{
			Description:    in.Description,
			Quantity:       in.Quantity,
			UnitPriceCents: in.UnitPriceCents,
			Amount: fiscal.ItemAmount(fiscal.LineItem{
				Quantity:       in.Quantity,
				UnitPriceCents: in.UnitPriceCents,
			}),
			SortOrder: i,
		}
	}
	return items
}

func calculate(input CreateInvoiceInput) fiscal.Calculation {
	lines := make([]fiscal.LineItem, len(input.Items))
	for i, item := range input.Items {
		lines[i] = fiscal.LineItem{Quantity: item.Quantity, UnitPriceCents: item.UnitPriceCents}
	}
	return fiscal.Calculate(lines, fiscal.TaxOptions{
		IvaRate:       input.IvaRate,
		ApplyRitenuta: input.ApplyRitenuta,
		RitenutaRate:  input.RitenutaRate,
		ApplyCassa:    input.ApplyCassa,
		CassaRate:     input.CassaRate,
		ApplyBollo:    input.ApplyBollo,
	})
}

func applyCalculation(inv *domain.Invoice, calc fiscal.Calculation) {
	inv.Subtotal = calc.Subtotal
	inv.CassaAmount = calc.CassaAmount
	inv.TaxableBase = calc.TaxableBase
	inv.IvaAmount = calc.IvaAmount
	inv.BolloAmount = calc.BolloAmount
	inv.GrossTotal = calc.GrossTotal
	inv.RitenutaAmount = calc.RitenutaAmount
	inv.NetPayable = calc.NetPayable
}

func (s *invoiceService) Create(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.clients.GetByID(ctx, userID, input.ClientID); err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		UserID:        userID,
		ClientID:      input.ClientID,
		Year:          input.IssueDate.Year(),
		Status:        domain.StatusDraft,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		IvaRate:       input.IvaRate,
		ApplyRitenuta: input.ApplyRitenuta,
		RitenutaRate:  input.RitenutaRate,
		ApplyCassa:    input.ApplyCassa,
		CassaRate:     input.CassaRate,
		ApplyBollo:    input.ApplyBollo,
		Notes:         input.Notes,
		PaymentTerms:  input.PaymentTerms,
	}
	applyCalculation(inv, calculate(input))

	return inv, s.createWithRetry(ctx, inv, buildItems(input.Items))
}

// createWithRetry reissues the whole allocate-and-insert transaction on
// transient sequence conflicts; a conflicting writer must never surface as
// a duplicate-number error.
func (s *invoiceService) createWithRetry(ctx context.Context, inv *domain.Invoice, items []domain.InvoiceItem) error {
	var lastErr error
	for attempt := 1; attempt <= s.seqCfg.MaxRetries; attempt++ {
		err := s.invoices.Create(ctx, inv, items)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSequenceConflict) {
			return err
		}
		lastErr = err
		s.log.Warn().
			Str("user_id", inv.UserID.String()).
			Int("year", inv.Year).
			Int("attempt", attempt).
			Msg("invoice create hit sequence conflict, retrying")
		if err := sleepBackoff(ctx, s.seqCfg.RetryBackoff, attempt); err != nil {
			return err
		}
	}
	return lastErr
}

func (s *invoiceService) GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, []domain.InvoiceItem, error) {
	inv, err := s.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.invoices.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoices.List(ctx, userID, filter, offset, limit)
}

func (s *invoiceService) Update(ctx context.Context, userID, invoiceID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	inv, err := s.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanEdit() {
		return nil, domain.ErrInvoiceNotDraft
	}
	if _, err := s.clients.GetByID(ctx, userID, input.ClientID); err != nil {
		return nil, err
	}

	// The number, year and sequence stay fixed; only content and the
	// recomputed totals change while the invoice is a draft.
	inv.ClientID = input.ClientID
	inv.IssueDate = input.IssueDate
	inv.DueDate = input.DueDate
	inv.IvaRate = input.IvaRate
	inv.ApplyRitenuta = input.ApplyRitenuta
	inv.RitenutaRate = input.RitenutaRate
	inv.ApplyCassa = input.ApplyCassa
	inv.CassaRate = input.CassaRate
	inv.ApplyBollo = input.ApplyBollo
	inv.Notes = input.Notes
	inv.PaymentTerms = input.PaymentTerms
	applyCalculation(inv, calculate(input))

	if err := s.invoices.Update(ctx, inv, buildItems(input.Items)); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	inv, err := s.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return err
	}
	if !inv.Status.CanDelete() {
		return domain.ErrInvoiceNotDraft
	}
	// The sequence number stays consumed; deletion leaves a permanent gap.
	return s.invoices.Delete(ctx, userID, invoiceID)
}

func (s *invoiceService) UpdateStatus(ctx context.Context, userID, invoiceID uuid.UUID, requested domain.InvoiceStatus) (*domain.Invoice, domain.InvoiceStatus, error) {
	if !requested.Valid() {
		return nil, "", domain.ErrInvalidStatus
	}
	inv, err := s.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	previous := inv.Status
	next, err := domain.Transition(inv.Status, requested)
	if err != nil {
		return nil, "", err
	}

	if err := s.invoices.UpdateStatus(ctx, userID, invoiceID, next); err != nil {
		return nil, "", err
	}
	inv.Status = next
	return inv, previous, nil
}

func (s *invoiceService) Duplicate(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	original, err := s.invoices.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoices.GetItems(ctx, original.ID)
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	dup := &domain.Invoice{
		UserID:        userID,
		ClientID:      original.ClientID,
		Year:          today.Year(),
		Status:        domain.StatusDraft,
		IssueDate:     today,
		DueDate:       today.AddDate(0, 0, 30),
		IvaRate:       original.IvaRate,
		ApplyRitenuta: original.ApplyRitenuta,
		RitenutaRate:  original.RitenutaRate,
		ApplyCassa:    original.ApplyCassa,
		CassaRate:     original.CassaRate,
		ApplyBollo:    original.ApplyBollo,
		Subtotal:      original.Subtotal,
		CassaAmount:   original.CassaAmount,
		TaxableBase:   original.TaxableBase,
		IvaAmount:     original.IvaAmount,
		BolloAmount:   original.BolloAmount,
		GrossTotal:    original.GrossTotal,
		RitenutaAmount: original.RitenutaAmount,
		NetPayable:    original.NetPayable,
		Notes:         original.Notes,
		PaymentTerms:  original.PaymentTerms,
	}

	dupItems := make([]domain.InvoiceItem, len(items))
	for i, item := range items {
		dupItems[i] = domain.InvoiceItem{
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			Amount:         item.Amount,
			SortOrder:      i,
		}
	}

	return dup, s.createWithRetry(ctx, dup, dupItems)
}

func (s *invoiceService) MarkOverdue(ctx context.Context, userID uuid.UUID) (int64, error) {
	// SENT -> OVERDUE must be in the lifecycle table; the bulk sweep is
	// not a bypass of it.
	if !domain.CanTransition(domain.StatusSent, domain.StatusOverdue) {
		return 0, domain.ErrInvalidTransition
	}
	return s.invoices.MarkOverdue(ctx, userID)
}
