package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes y contactos sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste el cliente; los contactos van por ReplaceContacts.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO clients (id, name, cnpj, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.CNPJ, c.LogoURL, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return classify("insert client", err)
	}
	return nil
}

// GetByID obtiene el cliente con sus contactos.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.findOne(ctx, "get client", `id = $1`, id)
}

// GetByCNPJ obtiene el cliente por CNPJ.
func (r *ClientRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Client, error) {
	return r.findOne(ctx, "get client by cnpj", `cnpj = $1`, cnpj)
}

func (r *ClientRepo) findOne(ctx context.Context, op, cond string, arg any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(ctx, `SELECT id, name, cnpj, logo_url, created_at, updated_at FROM clients WHERE `+cond, arg).
		Scan(&c.ID, &c.Name, &c.CNPJ, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	contacts, err := r.contactsOf(ctx, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.Contacts = contacts[c.ID]
	return &c, nil
}

// Update actualiza los datos del cliente (no los contactos).
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	_, err := r.q.Exec(ctx, `
		UPDATE clients SET name = $2, cnpj = $3, logo_url = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Name, c.CNPJ, c.LogoURL, c.UpdatedAt,
	)
	if err != nil {
		return classify("update client", err)
	}
	return nil
}

// ReplaceContacts borra los contactos actuales e inserta los dados. Debe correr en una tx.
func (r *ClientRepo) ReplaceContacts(ctx context.Context, clientID string, contacts []entity.ClientContact) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM client_contacts WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("delete contacts: %w", err)
	}
	for _, ct := range contacts {
		_, err := r.q.Exec(ctx, `
			INSERT INTO client_contacts (id, client_id, name, role, email, phone)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			ct.ID, clientID, ct.Name, ct.Role, ct.Email, ct.Phone,
		)
		if err != nil {
			return classify("insert contact", err)
		}
	}
	return nil
}

// List lista clientes por nombre, con búsqueda en nombre o CNPJ. Incluye contactos.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, int, error) {
	var w where
	if f.Search != "" {
		w.add("("+folded("name")+" ILIKE ? OR cnpj ILIKE ?)", searchPattern(f.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset())
	rows, err := r.q.Query(ctx, `SELECT id, name, cnpj, logo_url, created_at, updated_at FROM clients`+
		w.String()+` ORDER BY name ASC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Client, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CNPJ, &c.LogoURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	rows.Close()

	contacts, err := r.contactsOf(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range list {
		c.Contacts = contacts[c.ID]
	}
	return list, total, nil
}

// Delete elimina el cliente; los contactos caen por ON DELETE CASCADE.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (r *ClientRepo) contactsOf(ctx context.Context, clientIDs []string) (map[string][]entity.ClientContact, error) {
	out := make(map[string][]entity.ClientContact, len(clientIDs))
	if len(clientIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, client_id, name, role, email, phone
		FROM client_contacts WHERE client_id = ANY($1::uuid[]) ORDER BY name`, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ct entity.ClientContact
		if err := rows.Scan(&ct.ID, &ct.ClientID, &ct.Name, &ct.Role, &ct.Email, &ct.Phone); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out[ct.ClientID] = append(out[ct.ClientID], ct)
	}
	return out, rows.Err()
}
