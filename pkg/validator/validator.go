// Package validator envuelve go-playground/validator con nombres JSON,
// soporte para shopspring/decimal y mensajes en portugués para la API.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError detalle de un campo inválido, tal como se devuelve en error.details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator valida DTOs con tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con los registros propios de la API.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como float64 (gte, lte, etc.)
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return &Validator{v: v}
}

// Struct valida s y devuelve la lista de campos inválidos (nil si es válido).
func (x *Validator) Struct(s any) ([]FieldError, error) {
	err := x.v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out, nil
}

// fieldPath quita el nombre del struct raíz: "CreateClientRequest.contacts[0].email" -> "contacts[0].email".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "deve ser um email válido"
	case "uuid", "uuid4":
		return "deve ser um UUID válido"
	case "url", "http_url":
		return "deve ser uma URL válida"
	case "oneof":
		return fmt.Sprintf("deve ser um dos valores: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "max":
		if isLengthKind(fe.Kind()) {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser menor ou igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("deve ser menor ou igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "hexcolor":
		return "deve ser uma cor hexadecimal"
	default:
		return fmt.Sprintf("inválido (%s)", fe.Tag())
	}
}

func isLengthKind(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Map || k == reflect.Array
}
