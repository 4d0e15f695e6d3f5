package domain

import "errors"

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvoiceNotDraft     = errors.New("only draft invoices can be edited or deleted")
	ErrInvalidVATNumber    = errors.New("invalid partita IVA")
	ErrInvalidTaxCode      = errors.New("invalid codice fiscale")
	ErrVATNumberRequired   = errors.New("partita IVA is required for business and freelancer clients")
	ErrInvalidLineItem     = errors.New("line items must have positive quantity and non-negative unit price")
	ErrNoLineItems         = errors.New("invoice requires at least one line item")
	ErrInvalidTaxRate      = errors.New("tax rates must be between 0 and 100")
	ErrInvalidStatus       = errors.New("unknown invoice status")
	// ErrSequenceConflict marks a transient allocation conflict; callers may
	// retry the whole read-compute-write unit.
	ErrSequenceConflict = errors.New("invoice sequence allocation conflict")
)
