package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn")

	l.Info().Msg("ignorado")
	l.Warn().Str("k", "v").Msg("visible")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "v", entry["k"])
}

func TestNamed_AgregaComponente(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").Named("mail").Info().Msg("ok")
	assert.Contains(t, buf.String(), `"component":"mail"`)
}

func TestNew_ConArchivo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "api.log")
	l := New(Config{Env: "production", Level: "info", File: file, MaxSizeMB: 1})
	l.Info().Msg("a archivo")
	assert.FileExists(t, file)
}
