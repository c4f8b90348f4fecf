package csvimport

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeContent convierte el archivo subido a texto UTF-8.
// Los archivos exportados desde Excel en Windows suelen venir en Windows-1252;
// si el contenido no es UTF-8 válido se decodifica con ese charset.
func DecodeContent(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decodificar Windows-1252: %w", err)
	}
	return string(out), nil
}
