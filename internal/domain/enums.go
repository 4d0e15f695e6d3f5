package domain

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusSent      InvoiceStatus = "SENT"
	StatusPaid      InvoiceStatus = "PAID"
	StatusOverdue   InvoiceStatus = "OVERDUE"
	StatusCancelled InvoiceStatus = "CANCELLED"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// ClientType distinguishes the fiscal nature of a client.
type ClientType string

const (
	ClientBusiness   ClientType = "BUSINESS"
	ClientFreelancer ClientType = "FREELANCER"
	ClientIndividual ClientType = "INDIVIDUAL"
)

// Valid reports whether t is a known client type.
func (t ClientType) Valid() bool {
	switch t {
	case ClientBusiness, ClientFreelancer, ClientIndividual:
		return true
	}
	return false
}

// RequiresVATNumber reports whether clients of this type must carry a
// partita IVA.
func (t ClientType) RequiresVATNumber() bool {
	return t == ClientBusiness || t == ClientFreelancer
}
