// Package textnorm normaliza texto libre (nombres de archivo, términos de búsqueda).
package textnorm

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold elimina acentos y diacríticos: "Açúcar União" -> "Acucar Uniao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// accented letras acentuadas del portugués y español que Translation pliega.
const accented = "ÁÀÂÃÄÅáàâãäåÉÈÊËéèêëÍÌÎÏíìîïÓÒÔÕÖóòôõöÚÙÛÜúùûüÇçÑñ"

// Translation devuelve los argumentos de translate() de PostgreSQL que aplican
// Fold a una columna: from y to tienen la misma cantidad de runas.
func Translation() (from, to string) {
	var b strings.Builder
	for _, r := range accented {
		b.WriteString(Fold(string(r)))
	}
	return accented, b.String()
}

// SafeFilename deja solo el nombre base, sin acentos ni caracteres de control,
// apto para guardar como metadato o usar en Content-Disposition.
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return "arquivo"
	}
	name = Fold(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r > unicode.MaxASCII, unicode.IsControl(r), r == '"':
			continue
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "arquivo"
	}
	return out
}
