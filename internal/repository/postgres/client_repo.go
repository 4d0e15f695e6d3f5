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
	"fatturo/internal/port"
)

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

const insertClientQuery = `INSERT INTO clients (
	id, user_id, type, name, email, phone,
	partita_iva, codice_fiscale, codice_destinatario, pec,
	street, city, province, postal_code, country, notes,
	is_deleted, created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6,
	$7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16,
	$17, $18, $19
)`

func (r *clientRepo) Create(ctx context.Context, client *domain.Client) error {
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, insertClientQuery,
		client.ID, client.UserID, client.Type, client.Name, client.Email, client.Phone,
		client.PartitaIVA, client.CodiceFiscale, client.CodiceDestinatario, client.PEC,
		client.Street, client.City, client.Province, client.PostalCode, client.Country, client.Notes,
		client.IsDeleted, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, userID, clientID uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client,
		"SELECT * FROM clients WHERE id = $1 AND user_id = $2 AND is_deleted = false",
		clientID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &client, nil
}

func (r *clientRepo) List(ctx context.Context, userID uuid.UUID, search string, offset, limit int) ([]domain.Client, int, error) {
	where := "WHERE user_id = $1 AND is_deleted = false"
	args := []interface{}{userID}

	if search != "" {
		args = append(args, "%"+search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR partita_iva LIKE $%d)", n, n, n)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM clients "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT * FROM clients %s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var clients []domain.Client
	if err := r.db.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("clientRepo.List: %w", err)
	}
	return clients, total, nil
}

const updateClientQuery = `UPDATE clients SET
	type = $3, name = $4, email = $5, phone = $6,
	partita_iva = $7, codice_fiscale = $8, codice_destinatario = $9, pec = $10,
	street = $11, city = $12, province = $13, postal_code = $14, country = $15,
	notes = $16, updated_at = $17
WHERE id = $1 AND user_id = $2 AND is_deleted = false`

func (r *clientRepo) Update(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, updateClientQuery,
		client.ID, client.UserID, client.Type, client.Name, client.Email, client.Phone,
		client.PartitaIVA, client.CodiceFiscale, client.CodiceDestinatario, client.PEC,
		client.Street, client.City, client.Province, client.PostalCode, client.Country,
		client.Notes, client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE clients SET is_deleted = true, updated_at = now() WHERE id = $1 AND user_id = $2 AND is_deleted = false",
		clientID, userID)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
