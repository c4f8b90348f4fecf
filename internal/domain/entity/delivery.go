package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de una entrega.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusReturned  = "returned"
)

// Prioridades y métodos de pago.
const (
	PriorityStandard = "standard"
	PriorityExpress  = "express"

	PaymentPrepaid = "prepaid"
	PaymentCOD     = "cod"
)

// DeliveryStatuses lista ordenada de estados permitidos.
var DeliveryStatuses = []string{
	DeliveryStatusPending,
	DeliveryStatusAssigned,
	DeliveryStatusInTransit,
	DeliveryStatusDelivered,
	DeliveryStatusReturned,
}

// IsValidDeliveryStatus compara exacto (sensible a mayúsculas).
func IsValidDeliveryStatus(s string) bool {
	for _, st := range DeliveryStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Sender datos opcionales del remitente.
type Sender struct {
	Name    string
	Phone   string
	Address string
}

// Delivery representa un paquete a entregar.
// Reference es única en todo el sistema; Status siempre es uno de DeliveryStatuses.
type Delivery struct {
	ID                  string
	Reference           string
	CustomerName        string
	CustomerPhone       string
	DeliveryAddress     string
	Sender              Sender
	Weight              *decimal.Decimal
	Dimensions          string
	PackageType         string
	Description         string
	Priority            string
	PaymentMethod       string
	DeliveryFee         decimal.Decimal
	CODAmount           decimal.Decimal
	SpecialInstructions []string
	Notes               string
	AssignedDriverID    *string
	Status              string
	CreatedByID         string
	IsDraft             bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsCOD indica si el pago se cobra contra entrega.
func (d *Delivery) IsCOD() bool {
	return d.PaymentMethod == PaymentCOD
}
