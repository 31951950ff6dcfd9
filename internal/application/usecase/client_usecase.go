package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var (
	ErrClientNotFound    = domain.NewError(domain.ErrNotFound, "CLIENT_NOT_FOUND", "Cliente não encontrado")
	ErrCNPJAlreadyExists = domain.NewError(domain.ErrDuplicate, "CNPJ_ALREADY_EXISTS", "CNPJ já cadastrado")
)

// ClientTxRunner ejecuta fn con un repositorio de clientes atado a una transacción.
type ClientTxRunner interface {
	RunClient(ctx context.Context, fn func(repo repository.ClientRepository) error) error
}

// ClientUseCase casos de uso para clientes y sus contactos.
type ClientUseCase struct {
	repo    repository.ClientRepository
	tx      ClientTxRunner
	storage ports.FileStorage
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, tx ClientTxRunner, storage ports.FileStorage) *ClientUseCase {
	return &ClientUseCase{repo: repo, tx: tx, storage: storage}
}

// Create crea el cliente y sus contactos en una sola transacción.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	existing, err := uc.repo.GetByCNPJ(ctx, in.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCNPJAlreadyExists
	}

	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		LogoURL:   in.LogoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	client.Contacts = toContacts(client.ID, in.Contacts, nil)

	err = uc.tx.RunClient(ctx, func(repo repository.ClientRepository) error {
		if err := repo.Create(ctx, client); err != nil {
			return err
		}
		return repo.ReplaceContacts(ctx, client.ID, client.Contacts)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrCNPJAlreadyExists
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes; search busca en nombre o CNPJ.
func (uc *ClientUseCase) List(ctx context.Context, q dto.ClientListQuery) (*dto.Paged[dto.ClientResponse], error) {
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.ClientFilter{Page: page, Search: q.Search})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.Paged[dto.ClientResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

// GetByID devuelve el cliente con sus contactos.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.mustClient(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update aplica cambios parciales. Si llegan contactos, reemplazan a los actuales.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.mustClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CNPJ != nil && *in.CNPJ != client.CNPJ {
		other, err := uc.repo.GetByCNPJ(ctx, *in.CNPJ)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != client.ID {
			return nil, ErrCNPJAlreadyExists
		}
		client.CNPJ = *in.CNPJ
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.LogoURL != nil {
		client.LogoURL = *in.LogoURL
	}
	if in.Contacts != nil {
		current := make(map[string]bool, len(client.Contacts))
		for _, ct := range client.Contacts {
			current[ct.ID] = true
		}
		client.Contacts = toContacts(client.ID, *in.Contacts, current)
	}
	client.UpdatedAt = time.Now()

	err = uc.tx.RunClient(ctx, func(repo repository.ClientRepository) error {
		if err := repo.Update(ctx, client); err != nil {
			return err
		}
		if in.Contacts == nil {
			return nil
		}
		return repo.ReplaceContacts(ctx, client.ID, client.Contacts)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrCNPJAlreadyExists
		}
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete borra el cliente; los contactos se borran en cascada.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if _, err := uc.mustClient(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Cliente removido com sucesso"}, nil
}

// UploadLogo guarda el logo en la carpeta logos y lo asigna al cliente.
func (uc *ClientUseCase) UploadLogo(ctx context.Context, id string, file ports.FileUpload) (*dto.LogoResponse, error) {
	client, err := uc.mustClient(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "logos", file)
	if err != nil {
		return nil, err
	}
	client.LogoURL = stored.URL
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return &dto.LogoResponse{LogoURL: stored.URL}, nil
}

func (uc *ClientUseCase) mustClient(ctx context.Context, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// toContacts conserva el id enviado solo si ya era un contacto de este cliente
// y no se repite en la lista; cualquier otro recibe un id nuevo.
func toContacts(clientID string, in []dto.ContactInput, current map[string]bool) []entity.ClientContact {
	out := make([]entity.ClientContact, 0, len(in))
	used := make(map[string]bool, len(in))
	for _, c := range in {
		id := uuid.New().String()
		if c.ID != nil && current[*c.ID] && !used[*c.ID] {
			id = *c.ID
		}
		used[id] = true
		out = append(out, entity.ClientContact{
			ID:       id,
			ClientID: clientID,
			Name:     c.Name,
			Role:     c.Role,
			Email:    c.Email,
			Phone:    c.Phone,
		})
	}
	return out
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	contacts := make([]dto.ContactResponse, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		contacts = append(contacts, dto.ContactResponse{
			ID:    ct.ID,
			Name:  ct.Name,
			Role:  ct.Role,
			Email: ct.Email,
			Phone: ct.Phone,
		})
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		LogoURL:   c.LogoURL,
		Contacts:  contacts,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
