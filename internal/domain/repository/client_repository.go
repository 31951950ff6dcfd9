package repository

import (
	"context"

	"github.com/jhoicas/encartes-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes y sus contactos.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// ReplaceContacts borra los contactos actuales e inserta los dados.
	ReplaceContacts(ctx context.Context, clientID string, contacts []entity.ClientContact) error
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, int, error)
	Delete(ctx context.Context, id string) error
}
