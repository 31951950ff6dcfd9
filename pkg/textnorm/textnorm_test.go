package textnorm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "Acucar Uniao", Fold("Açúcar União"))
	assert.Equal(t, "sem acento", Fold("sem acento"))
}

func TestTranslation(t *testing.T) {
	from, to := Translation()
	assert.Equal(t, utf8.RuneCountInString(from), utf8.RuneCountInString(to))
	assert.Equal(t, len(to), utf8.RuneCountInString(to), "to es ASCII")
	assert.True(t, strings.HasPrefix(to, "AAAAAAaaaaaa"))
	assert.True(t, strings.HasSuffix(to, "CcNn"))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "promocao.png", SafeFilename("../../etc/promoção.png"))
	assert.Equal(t, "logo.jpg", SafeFilename(`C:\Users\ana\logo.jpg`))
	assert.Equal(t, "arquivo", SafeFilename("/"))
	assert.Equal(t, "x.ttf", SafeFilename("\"x\x00.ttf"))
}
