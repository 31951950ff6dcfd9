package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/encartes-api/internal/application/ports"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/pkg/validator"
)

// LocalBodyKind clave en Locals con el tipo de cuerpo detectado por BodyDispatcher.
const LocalBodyKind = "body_kind"

// BodyKind tipo de cuerpo según Content-Type.
type BodyKind string

const (
	BodyNone      BodyKind = "none"
	BodyJSON      BodyKind = "json"
	BodyForm      BodyKind = "form"
	BodyMultipart BodyKind = "multipart"
)

var errValidation = domain.NewError(domain.ErrInvalidInput, "VALIDATION_ERROR", "Dados inválidos")

var validate = validator.New()

// DetectBodyKind clasifica el Content-Type (sin distinguir mayúsculas ni parámetros).
func DetectBodyKind(contentType string) BodyKind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "multipart/form-data"):
		return BodyMultipart
	case strings.Contains(ct, "application/json"), strings.Contains(ct, "+json"):
		return BodyJSON
	case strings.Contains(ct, "application/x-www-form-urlencoded"):
		return BodyForm
	default:
		return BodyNone
	}
}

// BodyDispatcher anota el tipo de cuerpo en Locals. Los multipart pasan sin tocar;
// un JSON sintácticamente inválido se corta aquí con INVALID_JSON.
func BodyDispatcher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := DetectBodyKind(c.Get(fiber.HeaderContentType))
		c.Locals(LocalBodyKind, kind)
		if kind == BodyJSON {
			if body := bytes.TrimSpace(c.Body()); len(body) > 0 && !json.Valid(body) {
				return domain.ErrInvalidJSON
			}
		}
		return c.Next()
	}
}

func bodyKind(c *fiber.Ctx) BodyKind {
	if k, ok := c.Locals(LocalBodyKind).(BodyKind); ok {
		return k
	}
	return DetectBodyKind(c.Get(fiber.HeaderContentType))
}

// BindBody decodifica el cuerpo en dst y lo valida. Un multipart nunca alimenta un DTO JSON.
func BindBody(c *fiber.Ctx, dst any) error {
	switch bodyKind(c) {
	case BodyMultipart:
		return errMultipart
	case BodyForm:
		if err := c.BodyParser(dst); err != nil {
			return errValidation.WithCause(err)
		}
	case BodyJSON:
		if err := decodeStrict(c.Body(), dst); err != nil {
			return err
		}
	}
	return validateStruct(dst)
}

// BindQuery decodifica la query string en dst (tags `query`).
func BindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return errValidation.WithCause(err)
	}
	return nil
}

func validateStruct(dst any) error {
	fields, err := validate.Struct(dst)
	if err != nil {
		return fmt.Errorf("validar %T: %w", dst, err)
	}
	if len(fields) > 0 {
		return errValidation.WithDetails(fields)
	}
	return nil
}

// decodeStrict rechaza campos no declarados en el DTO. Cuerpo vacío = {}.
func decodeStrict(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	if field, ok := unknownField(err); ok {
		return errValidation.WithDetails([]validator.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("property %s should not exist", field),
		}})
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errValidation.WithDetails([]validator.FieldError{{
			Field:   field,
			Message: fmt.Sprintf("deve ser do tipo %s", typeErr.Type),
		}})
	}
	return domain.ErrInvalidJSON.WithCause(err)
}

// unknownField extrae X de `json: unknown field "X"`.
func unknownField(err error) (string, bool) {
	rest, ok := strings.CutPrefix(err.Error(), `json: unknown field `)
	if !ok {
		return "", false
	}
	return strings.Trim(rest, `"`), true
}

// openFiles abre todos los archivos de los campos indicados. release cierra los descriptores.
func openFiles(c *fiber.Ctx, fields ...string) ([]ports.FileUpload, func(), error) {
	release := func() {}
	if bodyKind(c) != BodyMultipart {
		return nil, release, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, release, errMultipart.WithCause(err)
	}

	var (
		files   []ports.FileUpload
		closers []io.Closer
	)
	release = func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}
	for _, field := range fields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				release()
				return nil, func() {}, errMultipart.WithCause(err)
			}
			closers = append(closers, f)
			files = append(files, ports.FileUpload{Filename: fh.Filename, Size: fh.Size, Content: f})
		}
	}
	return files, release, nil
}

// openFile abre el primer archivo del campo; nil si la petición no lo trae.
func openFile(c *fiber.Ctx, field string) (*ports.FileUpload, func(), error) {
	files, release, err := openFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, release, err
	}
	return &files[0], release, nil
}

// requireFile como openFile pero FILE_REQUIRED si falta.
func requireFile(c *fiber.Ctx, field string) (ports.FileUpload, func(), error) {
	file, release, err := openFile(c, field)
	if err != nil {
		return ports.FileUpload{}, release, err
	}
	if file == nil {
		return ports.FileUpload{}, release, domain.ErrFileRequired
	}
	return *file, release, nil
}
