package csvimport

import (
	"regexp"
	"strings"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{7,15}$`)

// campos obligatorios del formato delivery-batch, por posición
var requiredDeliveryColumns = []int{ColReference, ColCustomerName, ColCustomerPhone}

// StatusUpdate fila aceptada de un archivo status-update.
type StatusUpdate struct {
	RowNumber int
	ID        string
	Status    string
}

// Summary conteos de una validación delivery-batch.
type Summary struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// ValidPhone indica si el teléfono (recortado) cumple el patrón permitido.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// AcceptStatusRows filtra las filas status-update. Las filas que no tienen
// exactamente dos campos o cuyo estado no es uno de los permitidos se
// descartan sin motivo. Un id vacío se acepta: no coincide con ninguna entrega.
func AcceptStatusRows(rows []Row) []StatusUpdate {
	out := make([]StatusUpdate, 0, len(rows))
	for _, r := range rows {
		if len(r.Values) != 2 {
			continue
		}
		id, status := r.Values[0], r.Values[1]
		if !entity.IsValidDeliveryStatus(status) {
			continue
		}
		out = append(out, StatusUpdate{RowNumber: r.RowNumber, ID: id, Status: status})
	}
	return out
}

// ValidateDeliveryRows marca cada fila como válida o inválida con su motivo.
// Normaliza prioridad y método de pago dentro de Values; aplicar dos veces
// produce el mismo resultado.
func ValidateDeliveryRows(rows []Row) ([]Row, Summary) {
	out := make([]Row, len(rows))
	sum := Summary{Total: len(rows)}
	for i, r := range rows {
		out[i] = validateDeliveryRow(r)
		if out[i].Valid {
			sum.Valid++
		} else {
			sum.Invalid++
		}
	}
	return out, sum
}

func validateDeliveryRow(r Row) Row {
	values := make([]string, len(r.Values))
	copy(values, r.Values)
	r.Values = values

	var reasons []string

	var missing []string
	for _, pos := range requiredDeliveryColumns {
		if r.Value(pos) == "" {
			missing = append(missing, DeliveryColumns[pos])
		}
	}
	if len(missing) > 0 {
		reasons = append(reasons, "faltan campos obligatorios: "+strings.Join(missing, ", "))
	}

	if phone := r.Value(ColCustomerPhone); phone != "" && !ValidPhone(phone) {
		reasons = append(reasons, "teléfono inválido: "+phone)
	}

	if p := strings.ToLower(r.Value(ColPriority)); p != "" {
		if p != entity.PriorityExpress && p != entity.PriorityStandard {
			p = entity.PriorityStandard
		}
		r.Values[ColPriority] = p
	}

	if pm := strings.ToLower(r.Value(ColPaymentMethod)); pm != "" {
		if pm == entity.PaymentCOD || pm == entity.PaymentPrepaid {
			r.Values[ColPaymentMethod] = pm
		} else {
			reasons = append(reasons, "método de pago inválido: "+r.Value(ColPaymentMethod)+" (use cod o prepaid)")
		}
	}

	r.Valid = len(reasons) == 0
	r.Reason = strings.Join(reasons, "; ")
	return r
}
