// Package usecase contiene los casos de uso CRUD de la API de encartes.
package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/encartes-api/internal/application/dto"
	"github.com/jhoicas/encartes-api/internal/domain"
	"github.com/jhoicas/encartes-api/internal/domain/repository"
	"github.com/jhoicas/encartes-api/pkg/validator"
)

// toPage valida y completa la paginación recibida por query string.
func toPage(q dto.PageQuery) (repository.Page, error) {
	if field := q.Invalid(); field != "" {
		return repository.Page{}, invalidQuery(field, "deve ser maior ou igual a 1")
	}
	page, limit := q.Values()
	return repository.Page{Page: page, Limit: limit}, nil
}

func invalidQuery(field, message string) error {
	return domain.NewError(domain.ErrInvalidInput, "VALIDATION_ERROR", "Dados inválidos").
		WithDetails([]validator.FieldError{{Field: field, Message: message}})
}

func parseBoolParam(field, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, invalidQuery(field, "deve ser true ou false")
	}
	return &b, nil
}

func parseDecimalParam(field, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, invalidQuery(field, "deve ser um número")
	}
	return &d, nil
}

// parseDateParam acepta fecha (2006-01-02) o RFC3339.
func parseDateParam(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, invalidQuery(field, "deve ser uma data válida")
}
