package service

import (
	"context"

	"github.com/google/uuid"

	"fatturo/internal/domain"
	"fatturo/internal/fiscal"
	"fatturo/internal/port"
)

// CreateClientInput is the DTO for creating or updating a client.
type CreateClientInput struct {
	Type               domain.ClientType `json:"type"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	PartitaIVA         string            `json:"partita_iva"`
	CodiceFiscale      string            `json:"codice_fiscale"`
	CodiceDestinatario string            `json:"codice_destinatario"`
	PEC                string            `json:"pec"`
	Street             string            `json:"street"`
	City               string            `json:"city"`
	Province           string            `json:"province"`
	PostalCode         string            `json:"postal_code"`
	Country            string            `json:"country"`
	Notes              string            `json:"notes"`
}

// ClientService defines the client management contract.
type ClientService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, userID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, userID, clientID uuid.UUID, input CreateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, userID, clientID uuid.UUID) error
}

type clientService struct {
	repo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(repo port.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

// validateFiscalIdentifiers enforces the boundary rules: business and
// freelancer clients must carry a partita IVA, and any provided identifier
// must pass its checksum or format validation.
func validateFiscalIdentifiers(input CreateClientInput) error {
	if input.Type.RequiresVATNumber() && input.PartitaIVA == "" {
		return domain.ErrVATNumberRequired
	}
	if input.PartitaIVA != "" && !fiscal.ValidateVATNumber(input.PartitaIVA) {
		return domain.ErrInvalidVATNumber
	}
	if input.CodiceFiscale != "" && !fiscal.ValidateTaxCode(input.CodiceFiscale) {
		return domain.ErrInvalidTaxCode
	}
	return nil
}

func applyClientInput(client *domain.Client, input CreateClientInput) {
	client.Type = input.Type
	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.PartitaIVA = input.PartitaIVA
	client.CodiceFiscale = input.CodiceFiscale
	client.CodiceDestinatario = input.CodiceDestinatario
	client.PEC = input.PEC
	client.Street = input.Street
	client.City = input.City
	client.Province = input.Province
	client.PostalCode = input.PostalCode
	client.Country = input.Country
	if client.Country == "" {
		client.Country = "IT"
	}
	client.Notes = input.Notes
}

func (s *clientService) Create(ctx context.Context, userID uuid.UUID, input CreateClientInput) (*domain.Client, error) {
	if err := validateFiscalIdentifiers(input); err != nil {
		return nil, err
	}
	client := &domain.Client{UserID: userID}
	applyClientInput(client, input)
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, userID, clientID uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, userID, clientID)
}

func (s *clientService) List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]domain.Client, int, error) {
	return s.repo.List(ctx, userID, search, offset, limit)
}

func (s *clientService) Update(ctx context.Context, userID, clientID uuid.UUID, input CreateClientInput) (*domain.Client, error) {
	if err := validateFiscalIdentifiers(input); err != nil {
		return nil, err
	}
	client, err := s.repo.GetByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	applyClientInput(client, input)
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, clientID)
}
