package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/encartes-api/internal/domain"
)

// maxConfigurationBytes límite del JSON serializado de encartes y templates.
const maxConfigurationBytes = 10 * 1024 * 1024

var (
	errConfigPayloadTooLarge = domain.NewError(domain.ErrInvalidInput, "PAYLOAD_TOO_LARGE",
		"O payload é muito grande. Tente reduzir o tamanho das imagens base64 ou usar URLs de imagens.")
	errConfigInvalidJSON = domain.NewError(domain.ErrInvalidInput, "INVALID_JSON",
		"Erro ao processar JSON na configuração. Verifique o formato dos dados.")
)

// prepareConfiguration compacta la configuración, exige un objeto JSON y aplica el límite
// de tamaño. Ausente o null se guarda como {}.
func prepareConfiguration(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("{}"), nil
	}
	if trimmed[0] != '{' {
		return nil, invalidQuery("configuration", "deve ser um objeto")
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, errConfigInvalidJSON.WithCause(err)
	}
	if size := buf.Len(); size > maxConfigurationBytes {
		mb := float64(size) / 1024 / 1024
		return nil, domain.NewError(domain.ErrInvalidInput, "CONFIGURATION_TOO_LARGE", fmt.Sprintf(
			"A configuração é muito grande (%.2fMB). Tente reduzir o tamanho das imagens base64 ou usar URLs de imagens.", mb))
	}
	return json.RawMessage(buf.Bytes()), nil
}

// classifyStorageError traduce fallos de persistencia de configuraciones grandes o mal
// formadas; cualquier otro error se devuelve como fallback con la causa adjunta.
func classifyStorageError(err error, fallback *domain.Error) error {
	var de *domain.Error
	if errors.As(err, &de) && !errors.Is(err, domain.ErrInternal) &&
		!errors.Is(err, domain.ErrTooLarge) && !errors.Is(err, domain.ErrInvalidJSON) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, domain.ErrTooLarge),
		strings.Contains(msg, "value too long"), strings.Contains(msg, "exceeds maximum"):
		return errConfigPayloadTooLarge.WithCause(err)
	case errors.Is(err, domain.ErrInvalidJSON),
		strings.Contains(msg, "invalid input syntax"), strings.Contains(msg, "json"):
		return errConfigInvalidJSON.WithCause(err)
	}
	return fallback.WithCause(err)
}
