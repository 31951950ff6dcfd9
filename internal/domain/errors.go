package domain

import "errors"

// Tipos de error de dominio (sin dependencias externas). La capa HTTP los traduce a status.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrTooLarge     = errors.New("contenido demasiado grande")
	ErrInternal     = errors.New("error interno")
)

// Error es un error de negocio con código estable para la API y mensaje para el usuario.
// Unwrap devuelve Kind para poder usar errors.Is(err, domain.ErrNotFound).
type Error struct {
	Kind    error
	Code    string
	Message string
	Details any
	cause   error
}

// NewError construye un error de negocio.
func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// WithDetails devuelve una copia con detalles adjuntos (p. ej. campos inválidos).
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause devuelve una copia que conserva el error técnico original.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// Cause devuelve el error técnico original, si existe.
func (e *Error) Cause() error { return e.cause }

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Is compara por código y tipo, así las copias de WithCause/WithDetails
// siguen siendo reconocibles con errors.Is(err, domain.ErrInvalidJSON).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Kind == e.Kind
}

// Unwrap expone el tipo y la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

// Errores de negocio reutilizados por varios casos de uso.
var (
	ErrInvalidCredentials  = NewError(ErrUnauthorized, "INVALID_CREDENTIALS", "Email ou senha inválidos")
	ErrInvalidRefreshToken = NewError(ErrUnauthorized, "INVALID_REFRESH_TOKEN", "Token de refresh inválido")
	ErrEmailAlreadyExists  = NewError(ErrDuplicate, "EMAIL_ALREADY_EXISTS", "Email já cadastrado")
	ErrUserNotFound        = NewError(ErrNotFound, "USER_NOT_FOUND", "Usuário não encontrado")
	ErrInvalidToken        = NewError(ErrInvalidInput, "INVALID_TOKEN", "Token inválido")
	ErrTokenExpired        = NewError(ErrInvalidInput, "TOKEN_EXPIRED", "Token expirado")
	ErrFileRequired        = NewError(ErrInvalidInput, "FILE_REQUIRED", "Arquivo é obrigatório")
	ErrPayloadTooLarge     = NewError(ErrTooLarge, "PAYLOAD_TOO_LARGE", "O payload é muito grande. Tente reduzir o tamanho das imagens.")
	ErrInvalidJSON         = NewError(ErrInvalidInput, "INVALID_JSON", "Erro ao processar JSON. Verifique o formato dos dados.")
)
