package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/entity"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
)

var (
	ErrProductNotFound  = domain.NewError(domain.ErrNotFound, "PRODUCT_NOT_FOUND", "Produto não encontrado")
	ErrSKUAlreadyExists = domain.NewError(domain.ErrDuplicate, "SKU_ALREADY_EXISTS", "SKU já cadastrado")
)

// ProductUseCase casos de uso CRUD para productos. El borrado es lógico (active=false).
type ProductUseCase struct {
	repo    repository.ProductRepository
	storage ports.FileStorage
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, storage ports.FileStorage) *ProductUseCase {
	return &ProductUseCase{repo: repo, storage: storage}
}

// Create crea un producto. El SKU solo se valida si viene informado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := normalizeSKU(in.SKU)
	if sku != nil {
		existing, err := uc.repo.GetBySKU(ctx, *sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrSKUAlreadyExists
		}
	}
	price := decimal.Zero
	if in.Price != nil {
		price = in.Price.Round(2)
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Price:         price,
		OriginalPrice: in.OriginalPrice,
		Unit:          in.Unit,
		ImageURL:      in.ImageURL,
		Category:      in.Category,
		SKU:           sku,
		Observation:   in.Observation,
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrSKUAlreadyExists
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de búsqueda, categoría, rango de precio y estado.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.Paged[dto.ProductResponse], error) {
	minPrice, err := parseDecimalParam("minPrice", q.MinPrice)
	if err != nil {
		return nil, err
	}
	maxPrice, err := parseDecimalParam("maxPrice", q.MaxPrice)
	if err != nil {
		return nil, err
	}
	active, err := parseBoolParam("active", q.Active)
	if err != nil {
		return nil, err
	}
	page, err := toPage(q.PageQuery)
	if err != nil {
		return nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Page:     page,
		Search:   q.Search,
		Category: q.Category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Active:   active,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.Paged[dto.ProductResponse]{Items: items, Pagination: dto.NewPagination(page.Page, page.Limit, total)}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.mustProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica cambios parciales; un SKU nuevo se valida contra los demás productos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.mustProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if sku := normalizeSKU(in.SKU); sku != nil && (product.SKU == nil || *product.SKU != *sku) {
		other, err := uc.repo.GetBySKU(ctx, *sku)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, ErrSKUAlreadyExists
		}
		product.SKU = sku
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = in.Price.Round(2)
	}
	if in.OriginalPrice != nil {
		product.OriginalPrice = in.OriginalPrice
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Observation != nil {
		product.Observation = *in.Observation
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, ErrSKUAlreadyExists
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete desactiva el producto (borrado lógico).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (*dto.MessageResponse, error) {
	if _, err := uc.mustProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Deactivate(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Produto removido com sucesso"}, nil
}

// UploadImage guarda la imagen en la carpeta products y la asigna al producto.
func (uc *ProductUseCase) UploadImage(ctx context.Context, id string, file ports.FileUpload) (*dto.ImageResponse, error) {
	product, err := uc.mustProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := uc.storage.Save(ctx, "products", file)
	if err != nil {
		return nil, err
	}
	product.ImageURL = stored.URL
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return &dto.ImageResponse{ImageURL: stored.URL}, nil
}

func (uc *ProductUseCase) mustProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// normalizeSKU trata "" como ausencia de SKU (la columna es única pero nullable).
func normalizeSKU(sku *string) *string {
	if sku == nil || *sku == "" {
		return nil
	}
	s := *sku
	return &s
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Unit:          p.Unit,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		SKU:           p.SKU,
		Observation:   p.Observation,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
