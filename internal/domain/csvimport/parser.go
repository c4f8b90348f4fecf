// Package csvimport interpreta los archivos CSV de carga masiva de entregas y
// aplica las reglas de validación fila por fila.
//
// Dos formatos:
//
//	status-update:   id,status
//	delivery-batch:  reference,customerName,customerPhone,deliveryAddress,packageType,
//	                 description,priority,paymentMethod,deliveryFee,codAmount,notes,originAddress
//
// El separador es siempre la coma y no se soportan campos entre comillas.
package csvimport

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Logistica-api/internal/domain"
)

// Kind tipo de archivo de importación.
type Kind string

const (
	KindDeliveryBatch Kind = "delivery-batch"
	KindStatusUpdate  Kind = "status-update"
)

// Posiciones de columna del formato delivery-batch.
const (
	ColReference = iota
	ColCustomerName
	ColCustomerPhone
	ColDeliveryAddress
	ColPackageType
	ColDescription
	ColPriority
	ColPaymentMethod
	ColDeliveryFee
	ColCODAmount
	ColNotes
	ColOriginAddress
)

// DeliveryColumns nombres de columna del formato delivery-batch, en orden.
var DeliveryColumns = []string{
	"reference", "customerName", "customerPhone", "deliveryAddress", "packageType",
	"description", "priority", "paymentMethod", "deliveryFee", "codAmount", "notes", "originAddress",
}

// palabras que identifican la primera línea como cabecera en delivery-batch
var deliveryHeaderKeywords = []string{"reference", "customer", "phone", "address", "package", "description"}

// Row una línea de datos del archivo. No se persiste.
type Row struct {
	Index     int      // base 0 dentro de la sección de datos
	RowNumber int      // base 1, para mostrar al usuario
	Line      string   // línea original ya recortada
	Values    []string // campos separados por coma y recortados
	Valid     bool
	Reason    string
}

// Value devuelve el campo en la posición i o "" si no existe.
func (r Row) Value(i int) string {
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Parsed resultado del parseo, antes de validar.
type Parsed struct {
	Kind      Kind
	Columns   []string
	HasHeader bool
	Rows      []Row
}

// Parse divide el contenido en líneas, detecta la cabecera según el tipo y
// separa cada línea de datos en campos.
// Devuelve domain.ErrEmptyInput si no queda ninguna línea no vacía.
func Parse(content string, kind Kind) (*Parsed, error) {
	if kind != KindDeliveryBatch && kind != KindStatusUpdate {
		return nil, fmt.Errorf("%w: tipo de importación desconocido %q", domain.ErrInvalidInput, kind)
	}
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyInput
	}

	out := &Parsed{Kind: kind}
	first := lines[0]
	switch kind {
	case KindStatusUpdate:
		if isStatusHeader(first) {
			out.HasHeader = true
			out.Columns = splitFields(first)
		} else {
			out.Columns = []string{"id", "status"}
		}
	case KindDeliveryBatch:
		out.HasHeader, out.Columns = detectDeliveryHeader(first)
	}

	data := lines
	if out.HasHeader {
		data = lines[1:]
	}
	out.Rows = make([]Row, 0, len(data))
	for i, l := range data {
		out.Rows = append(out.Rows, Row{
			Index:     i,
			RowNumber: i + 1,
			Line:      l,
			Values:    splitFields(l),
		})
	}
	return out, nil
}

// splitLines acepta \r\n, \r y \n; recorta y descarta líneas vacías.
func splitLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isStatusHeader(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "id") && strings.Contains(l, "status")
}

// detectDeliveryHeader decide si la primera línea es cabecera.
// Con palabras clave → cabecera. Sin ellas, más de 3 campos no vacíos → datos
// con columnas sintéticas col1..colN. En otro caso se trata como cabecera.
func detectDeliveryHeader(line string) (bool, []string) {
	l := strings.ToLower(line)
	for _, kw := range deliveryHeaderKeywords {
		if strings.Contains(l, kw) {
			return true, splitFields(line)
		}
	}
	fields := splitFields(line)
	nonEmpty := 0
	for _, f := range fields {
		if f != "" {
			nonEmpty++
		}
	}
	if nonEmpty > 3 {
		cols := make([]string, len(fields))
		for i := range fields {
			cols[i] = fmt.Sprintf("col%d", i+1)
		}
		return false, cols
	}
	return true, fields
}
