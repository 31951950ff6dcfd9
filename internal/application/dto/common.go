package dto

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// PageQuery paginación recibida por query string (?page=&limit=). nil = no enviado.
type PageQuery struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

// Invalid devuelve el primer parámetro enviado con valor menor que 1, o "".
func (p PageQuery) Invalid() string {
	if p.Page != nil && *p.Page < 1 {
		return "page"
	}
	if p.Limit != nil && *p.Limit < 1 {
		return "limit"
	}
	return ""
}

// Values aplica los valores por defecto: página 1, límite 20 (máximo 100).
func (p PageQuery) Values() (page, limit int) {
	page, limit = defaultPage, defaultLimit
	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p.Limit != nil && *p.Limit > 0 {
		limit = min(*p.Limit, maxLimit)
	}
	return page, limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula totalPages = ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Paged resultado paginado que devuelven los casos de uso de listado.
type Paged[T any] struct {
	Items      []T
	Pagination Pagination
}

// SuccessResponse envoltorio de toda respuesta exitosa.
type SuccessResponse struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorBody detalle del error.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// MessageResponse respuesta con solo un mensaje (borrados, acciones).
type MessageResponse struct {
	Message string `json:"message"`
}
