// Package deliveries contiene los casos de uso de entregas: alta, edición,
// cambios de estado, asignación de conductor y carga masiva desde CSV.
package deliveries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// DeliveryUseCase operaciones sobre una entrega.
type DeliveryUseCase struct {
	repo     repository.DeliveryRepository
	userRepo repository.UserRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(repo repository.DeliveryRepository, userRepo repository.UserRepository) *DeliveryUseCase {
	return &DeliveryUseCase{repo: repo, userRepo: userRepo}
}

// NewReference genera una referencia legible del tipo DLV-1A2B3C4D.
func NewReference() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "DLV-" + strings.ToUpper(id[:8])
}

// Create da de alta una entrega en estado pending a nombre del actor.
func (uc *DeliveryUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	now := time.Now()
	d := &entity.Delivery{
		ID:          uuid.New().String(),
		Reference:   strings.TrimSpace(in.Reference),
		Status:      entity.DeliveryStatusPending,
		CreatedByID: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if d.Reference == "" {
		d.Reference = NewReference()
	}
	applyInput(d, in.DeliveryInput)
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// Get devuelve una entrega visible para el actor.
func (uc *DeliveryUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.DeliveryResponse, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// List lista entregas según el rol: staff ve todo, el conductor sus asignadas
// y el cliente las que creó.
func (uc *DeliveryUseCase) List(ctx context.Context, actor entity.Actor, in dto.DeliveryListRequest) (*dto.DeliveryListResponse, error) {
	in.DefaultPage()
	if in.Status != "" && !entity.IsValidDeliveryStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	f := repository.DeliveryFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	switch {
	case actor.IsStaff():
	case actor.Role == entity.RoleDriver:
		f.AssignedDriverID = actor.UserID
	default:
		f.CreatedByID = actor.UserID
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Update reemplaza los campos editables. Solo staff o el creador.
func (uc *DeliveryUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateDeliveryRequest) (*dto.DeliveryResponse, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && d.CreatedByID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	applyInput(d, in.DeliveryInput)
	d.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toResponse(d), nil
}

// Delete elimina una entrega.
func (uc *DeliveryUseCase) Delete(ctx context.Context, id string) error {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// UpdateStatus cambia el estado. Staff o el conductor asignado.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, id, status string) (*dto.DeliveryResponse, error) {
	if !entity.IsValidDeliveryStatus(status) {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && !isAssignedTo(d, actor.UserID) {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.repo.UpdateStatus(ctx, d.ID, status); err != nil {
		return nil, err
	}
	d.Status = status
	d.UpdatedAt = time.Now()
	return toResponse(d), nil
}

// AssignDriver asigna un conductor activo. Si la entrega estaba pending pasa a assigned.
func (uc *DeliveryUseCase) AssignDriver(ctx context.Context, id, driverID string) (*dto.DeliveryResponse, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	driver, err := uc.userRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if driver == nil || driver.Role != entity.RoleDriver {
		return nil, fmt.Errorf("%w: el conductor no existe", domain.ErrInvalidInput)
	}
	if !driver.IsActive {
		return nil, fmt.Errorf("%w: el conductor está inactivo", domain.ErrConflict)
	}
	if err := uc.repo.AssignDriver(ctx, d.ID, driver.ID); err != nil {
		return nil, err
	}
	d.AssignedDriverID = &driver.ID
	if d.Status == entity.DeliveryStatusPending {
		d.Status = entity.DeliveryStatusAssigned
	}
	d.UpdatedAt = time.Now()
	return toResponse(d), nil
}

// Track consulta pública por referencia.
func (uc *DeliveryUseCase) Track(ctx context.Context, reference string) (*dto.TrackingResponse, error) {
	d, err := uc.repo.GetByReference(ctx, strings.TrimSpace(reference))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.TrackingResponse{
		Reference: d.Reference,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// load obtiene la entrega y verifica que el actor pueda verla.
func (uc *DeliveryUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Delivery, error) {
	d, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if actor.IsStaff() || d.CreatedByID == actor.UserID || isAssignedTo(d, actor.UserID) {
		return d, nil
	}
	return nil, domain.ErrForbidden
}

func isAssignedTo(d *entity.Delivery, userID string) bool {
	return d.AssignedDriverID != nil && *d.AssignedDriverID == userID
}

func applyInput(d *entity.Delivery, in dto.DeliveryInput) {
	d.CustomerName = strings.TrimSpace(in.CustomerName)
	d.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	d.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	d.Sender = entity.Sender{
		Name:    strings.TrimSpace(in.SenderName),
		Phone:   strings.TrimSpace(in.SenderPhone),
		Address: strings.TrimSpace(in.SenderAddress),
	}
	d.Weight = in.Weight
	d.Dimensions = in.Dimensions
	d.PackageType = in.PackageType
	d.Description = in.Description
	d.Priority = in.Priority
	if d.Priority == "" {
		d.Priority = entity.PriorityStandard
	}
	d.PaymentMethod = in.PaymentMethod
	if d.PaymentMethod == "" {
		d.PaymentMethod = entity.PaymentPrepaid
	}
	d.DeliveryFee = in.DeliveryFee
	d.CODAmount = in.CODAmount
	d.SpecialInstructions = in.SpecialInstructions
	if d.SpecialInstructions == nil {
		d.SpecialInstructions = []string{}
	}
	d.Notes = in.Notes
	d.IsDraft = in.IsDraft
}

func toResponse(d *entity.Delivery) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:                  d.ID,
		Reference:           d.Reference,
		CustomerName:        d.CustomerName,
		CustomerPhone:       d.CustomerPhone,
		DeliveryAddress:     d.DeliveryAddress,
		Sender:              dto.SenderDTO{Name: d.Sender.Name, Phone: d.Sender.Phone, Address: d.Sender.Address},
		Weight:              d.Weight,
		Dimensions:          d.Dimensions,
		PackageType:         d.PackageType,
		Description:         d.Description,
		Priority:            d.Priority,
		PaymentMethod:       d.PaymentMethod,
		DeliveryFee:         d.DeliveryFee,
		CODAmount:           d.CODAmount,
		SpecialInstructions: d.SpecialInstructions,
		Notes:               d.Notes,
		AssignedDriverID:    d.AssignedDriverID,
		Status:              d.Status,
		CreatedByID:         d.CreatedByID,
		IsDraft:             d.IsDraft,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
