package dto

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

var phoneRule = validation.Match(regexp.MustCompile(`^\+?[\d\s\-()]{7,15}$`)).Error("teléfono inválido")

// DeliveryInput campos editables de una entrega (alta y edición).
type DeliveryInput struct {
	CustomerName        string           `json:"customer_name"`
	CustomerPhone       string           `json:"customer_phone"`
	DeliveryAddress     string           `json:"delivery_address"`
	SenderName          string           `json:"sender_name"`
	SenderPhone         string           `json:"sender_phone"`
	SenderAddress       string           `json:"sender_address"`
	Weight              *decimal.Decimal `json:"weight,omitempty"`
	Dimensions          string           `json:"dimensions"`
	PackageType         string           `json:"package_type"`
	Description         string           `json:"description"`
	Priority            string           `json:"priority"`
	PaymentMethod       string           `json:"payment_method"`
	DeliveryFee         decimal.Decimal  `json:"delivery_fee"`
	CODAmount           decimal.Decimal  `json:"cod_amount"`
	SpecialInstructions []string         `json:"special_instructions"`
	Notes               string           `json:"notes"`
	IsDraft             bool             `json:"is_draft"`
}

// Validate reglas comunes de alta y edición.
func (in DeliveryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CustomerName, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.CustomerPhone, validation.Required, phoneRule),
		validation.Field(&in.DeliveryAddress, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.SenderPhone, phoneRule),
		validation.Field(&in.Weight, nonNegative),
		validation.Field(&in.Priority, validation.In(entity.PriorityStandard, entity.PriorityExpress)),
		validation.Field(&in.PaymentMethod, validation.In(entity.PaymentPrepaid, entity.PaymentCOD)),
		validation.Field(&in.DeliveryFee, nonNegative),
		validation.Field(&in.CODAmount, nonNegative),
	)
}

// CreateDeliveryRequest alta de una entrega. Reference vacía se genera en el servidor.
type CreateDeliveryRequest struct {
	Reference string `json:"reference"`
	DeliveryInput
}

// Validate valida la referencia opcional y los campos editables.
func (r CreateDeliveryRequest) Validate() error {
	if err := validation.Validate(r.Reference, validation.Length(0, 64)); err != nil {
		return validation.Errors{"reference": err}
	}
	return r.DeliveryInput.Validate()
}

// UpdateDeliveryRequest reemplaza los campos editables de una entrega.
type UpdateDeliveryRequest struct {
	DeliveryInput
}

// UpdateStatusRequest cambio manual de estado.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Validate exige uno de los cinco estados.
func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(
			entity.DeliveryStatusPending, entity.DeliveryStatusAssigned, entity.DeliveryStatusInTransit,
			entity.DeliveryStatusDelivered, entity.DeliveryStatusReturned,
		)),
	)
}

// AssignDriverRequest asignación de conductor.
type AssignDriverRequest struct {
	DriverID string `json:"driver_id"`
}

// Validate exige el id del conductor.
func (r AssignDriverRequest) Validate() error {
	return validation.ValidateStruct(&r, validation.Field(&r.DriverID, validation.Required))
}

// DeliveryListRequest filtros de GET /api/deliveries.
type DeliveryListRequest struct {
	Status string `query:"status"`
	Search string `query:"search"`
	PageRequest
}

// SenderDTO datos del remitente.
type SenderDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                  string           `json:"id"`
	Reference           string           `json:"reference"`
	CustomerName        string           `json:"customer_name"`
	CustomerPhone       string           `json:"customer_phone"`
	DeliveryAddress     string           `json:"delivery_address"`
	Sender              SenderDTO        `json:"sender"`
	Weight              *decimal.Decimal `json:"weight,omitempty"`
	Dimensions          string           `json:"dimensions,omitempty"`
	PackageType         string           `json:"package_type,omitempty"`
	Description         string           `json:"description,omitempty"`
	Priority            string           `json:"priority"`
	PaymentMethod       string           `json:"payment_method"`
	DeliveryFee         decimal.Decimal  `json:"delivery_fee"`
	CODAmount           decimal.Decimal  `json:"cod_amount"`
	SpecialInstructions []string         `json:"special_instructions"`
	Notes               string           `json:"notes,omitempty"`
	AssignedDriverID    *string          `json:"assigned_driver_id"`
	Status              string           `json:"status"`
	CreatedByID         string           `json:"created_by_id"`
	IsDraft             bool             `json:"is_draft"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// DeliveryListResponse listado paginado.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TrackingResponse consulta pública por referencia (sin datos personales).
type TrackingResponse struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
