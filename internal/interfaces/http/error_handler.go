package http

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/pkg/logger"
)

const msgInternal = "Erro interno do servidor"

var statusCodes = map[int]string{
	fiber.StatusBadRequest:            "BAD_REQUEST",
	fiber.StatusUnauthorized:          "UNAUTHORIZED",
	fiber.StatusForbidden:             "FORBIDDEN",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusConflict:              "CONFLICT",
	fiber.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	fiber.StatusUnprocessableEntity:   "VALIDATION_ERROR",
	fiber.StatusTooManyRequests:       "TOO_MANY_REQUESTS",
	fiber.StatusInternalServerError:   "INTERNAL_SERVER_ERROR",
}

// Mensajes para errores que solo traen el tipo de dominio (sin domain.Error).
var kindMessages = []struct {
	kind error
	msg  string
}{
	{domain.ErrNotFound, "Recurso não encontrado"},
	{domain.ErrDuplicate, "Registro já existe"},
	{domain.ErrConflict, "Conflito com o estado atual"},
	{domain.ErrInvalidInput, "Dados inválidos"},
	{domain.ErrUnauthorized, "Não autorizado"},
	{domain.ErrForbidden, "Acesso negado"},
	{domain.ErrTooLarge, domain.ErrPayloadTooLarge.Message},
}

var (
	errMultipart = domain.NewError(domain.ErrInvalidInput, "MULTIPART_VALIDATION_ERROR",
		"Erro ao processar requisição multipart. Certifique-se de usar multipart/form-data.")
	errUnexpected = domain.NewError(domain.ErrInternal, "INTERNAL_SERVER_ERROR", msgInternal)
)

// codeForStatus devuelve el código por defecto de un status HTTP.
func codeForStatus(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return "INTERNAL_SERVER_ERROR"
}

func statusForKind(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler traduce cualquier error de un handler al envoltorio {success:false, error}.
// Fuera de producción la causa técnica viaja en error.details.
func ErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := classifyError(err)
		if body.Details == nil && !production {
			body.Details = causeOf(err)
		}
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("code", body.Code).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: body})
	}
}

func classifyError(err error) (int, dto.ErrorBody) {
	var de *domain.Error
	if errors.As(err, &de) {
		return statusForKind(de.Kind), dto.ErrorBody{Code: de.Code, Message: de.Message, Details: de.Details}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return toBody(domain.ErrPayloadTooLarge)
		}
		return fe.Code, dto.ErrorBody{Code: codeForStatus(fe.Code), Message: fe.Message}
	}

	for _, km := range kindMessages {
		if errors.Is(err, km.kind) {
			status := statusForKind(km.kind)
			return status, dto.ErrorBody{Code: codeForStatus(status), Message: km.msg}
		}
	}

	// Errores técnicos tipados.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22001", "54000":
			return toBody(domain.ErrPayloadTooLarge)
		case "22P02", "22P05":
			return toBody(domain.ErrInvalidJSON)
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return toBody(domain.ErrInvalidJSON)
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) || errors.Is(err, fasthttp.ErrBodyTooLarge) {
		return toBody(domain.ErrPayloadTooLarge)
	}
	if errors.Is(err, fasthttp.ErrNoMultipartForm) {
		return toBody(errMultipart)
	}

	// Último recurso: patrones en el mensaje.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "------WebK"), strings.Contains(msg, "is not valid JSON"),
		strings.Contains(msg, "Unexpected token"):
		return toBody(errMultipart)
	case strings.Contains(msg, "value too long"), strings.Contains(msg, "exceeds maximum"):
		return toBody(domain.ErrPayloadTooLarge)
	case strings.Contains(msg, "invalid input syntax"), strings.Contains(msg, "JSON"):
		return toBody(domain.ErrInvalidJSON)
	}
	return toBody(errUnexpected)
}

func toBody(e *domain.Error) (int, dto.ErrorBody) {
	return statusForKind(e.Kind), dto.ErrorBody{Code: e.Code, Message: e.Message, Details: e.Details}
}

// causeOf devuelve el texto técnico del error, sin repetir el mensaje de usuario.
func causeOf(err error) any {
	var de *domain.Error
	if errors.As(err, &de) {
		if cause := de.Cause(); cause != nil {
			return cause.Error()
		}
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return nil
	}
	return err.Error()
}
