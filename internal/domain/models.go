package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client represents an invoice recipient: a company, freelancer, or private
// individual with Italian fiscal identifiers.
type Client struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserID             uuid.UUID  `db:"user_id" json:"user_id"`
	Type               ClientType `db:"type" json:"type"`
	Name               string     `db:"name" json:"name"`
	Email              string     `db:"email" json:"email"`
	Phone              string     `db:"phone" json:"phone"`
	PartitaIVA         string     `db:"partita_iva" json:"partita_iva"`
	CodiceFiscale      string     `db:"codice_fiscale" json:"codice_fiscale"`
	CodiceDestinatario string     `db:"codice_destinatario" json:"codice_destinatario"`
	PEC                string     `db:"pec" json:"pec"`
	Street             string     `db:"street" json:"street"`
	City               string     `db:"city" json:"city"`
	Province           string     `db:"province" json:"province"`
	PostalCode         string     `db:"postal_code" json:"postal_code"`
	Country            string     `db:"country" json:"country"`
	Notes              string     `db:"notes" json:"notes"`
	IsDeleted          bool       `db:"is_deleted" json:"-"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Invoice represents an issued invoice. The tax options and all derived
// monetary fields are frozen at creation time and only recomputed while the
// invoice is still a draft. Amounts are in euro cents.
type Invoice struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	UserID         uuid.UUID     `db:"user_id" json:"user_id"`
	ClientID       uuid.UUID     `db:"client_id" json:"client_id"`
	Number         string        `db:"number" json:"number"`
	Year           int           `db:"year" json:"year"`
	SequenceNumber int           `db:"sequence_number" json:"sequence_number"`
	Status         InvoiceStatus `db:"status" json:"status"`
	IssueDate      time.Time     `db:"issue_date" json:"issue_date"`
	DueDate        time.Time     `db:"due_date" json:"due_date"`

	IvaRate       float64 `db:"iva_rate" json:"iva_rate"`
	ApplyRitenuta bool    `db:"apply_ritenuta" json:"apply_ritenuta"`
	RitenutaRate  float64 `db:"ritenuta_rate" json:"ritenuta_rate"`
	ApplyCassa    bool    `db:"apply_cassa" json:"apply_cassa"`
	CassaRate     float64 `db:"cassa_rate" json:"cassa_rate"`
	ApplyBollo    bool    `db:"apply_bollo" json:"apply_bollo"`

	Subtotal       int64 `db:"subtotal" json:"subtotal"`
	CassaAmount    int64 `db:"cassa_amount" json:"cassa_amount"`
	TaxableBase    int64 `db:"taxable_base" json:"taxable_base"`
	IvaAmount      int64 `db:"iva_amount" json:"iva_amount"`
	BolloAmount    int64 `db:"bollo_amount" json:"bollo_amount"`
	GrossTotal     int64 `db:"gross_total" json:"gross_total"`
	RitenutaAmount int64 `db:"ritenuta_amount" json:"ritenuta_amount"`
	NetPayable     int64 `db:"net_payable" json:"net_payable"`

	Notes        string    `db:"notes" json:"notes"`
	PaymentTerms string    `db:"payment_terms" json:"payment_terms"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// InvoiceItem is a stored invoice line. Amount is the rounded
// quantity * unit price, in cents.
type InvoiceItem struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InvoiceID      uuid.UUID `db:"invoice_id" json:"invoice_id"`
	Description    string    `db:"description" json:"description"`
	Quantity       float64   `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
	Amount         int64     `db:"amount" json:"amount"`
	SortOrder      int       `db:"sort_order" json:"sort_order"`
}

// SequenceCounter is the per-owner per-year numbering row. LastNumber only
// ever increases; invoice deletion never decrements it.
type SequenceCounter struct {
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Year       int       `db:"year" json:"year"`
	LastNumber int       `db:"last_number" json:"last_number"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SequenceAssignment is the result of allocating the next invoice number.
type SequenceAssignment struct {
	Year           int    `json:"year"`
	SequenceNumber int    `json:"sequence_number"`
	Number         string `json:"number"`
}

// YearSummary aggregates a calendar year of invoicing for the dashboard.
// Revenue counts PAID invoices; outstanding counts SENT; overdue OVERDUE.
type YearSummary struct {
	TotalRevenue      int64 `db:"total_revenue" json:"total_revenue"`
	OutstandingAmount int64 `db:"outstanding_amount" json:"outstanding_amount"`
	OverdueAmount     int64 `db:"overdue_amount" json:"overdue_amount"`
	TotalInvoices     int   `db:"total_invoices" json:"total_invoices"`
	PaidInvoices      int   `db:"paid_invoices" json:"paid_invoices"`
	TotalClients      int   `db:"total_clients" json:"total_clients"`
}

// MonthlyRevenue is paid revenue for one month of a year.
type MonthlyRevenue struct {
	Month   int   `db:"month" json:"month"`
	Year    int   `db:"year" json:"year"`
	Revenue int64 `db:"revenue" json:"revenue"`
	Count   int   `db:"count" json:"count"`
}

// StatusBreakdown is the invoice count and net payable total per status.
type StatusBreakdown struct {
	Status InvoiceStatus `db:"status" json:"status"`
	Count  int           `db:"count" json:"count"`
	Amount int64         `db:"amount" json:"amount"`
}

// TopClient is a client ranked by paid revenue within a year.
type TopClient struct {
	ClientID uuid.UUID `db:"client_id" json:"client_id"`
	Name     string    `db:"name" json:"name"`
	Revenue  int64     `db:"revenue" json:"revenue"`
	Count    int       `db:"count" json:"count"`
}
