package deliveries_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/deliveries"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/testutil/memstore"
)

func newDeliveryUC(t *testing.T) (*deliveries.DeliveryUseCase, *memstore.Store, *memstore.Deliveries) {
	t.Helper()
	users := memstore.NewStore()
	store := memstore.NewDeliveries(users)
	return deliveries.NewDeliveryUseCase(store, users), users, store
}

func validInput() dto.DeliveryInput {
	return dto.DeliveryInput{
		CustomerName:    "Ana",
		CustomerPhone:   "9876543210",
		DeliveryAddress: "MG Road",
		PaymentMethod:   entity.PaymentCOD,
		CODAmount:       decimal.NewFromInt(500),
	}
}

func TestCreate_GeneraReferenciaYDefaults(t *testing.T) {
	uc, _, _ := newDeliveryUC(t)
	customer := entity.Actor{UserID: "c1", Role: entity.RoleCustomer}

	in := dto.CreateDeliveryRequest{DeliveryInput: validInput()}
	in.PaymentMethod = ""
	out, err := uc.Create(context.Background(), customer, in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.Reference, "DLV-"))
	assert.Len(t, out.Reference, 12)
	assert.Equal(t, entity.DeliveryStatusPending, out.Status)
	assert.Equal(t, entity.PriorityStandard, out.Priority)
	assert.Equal(t, entity.PaymentPrepaid, out.PaymentMethod)
	assert.Equal(t, "c1", out.CreatedByID)
	assert.NotNil(t, out.SpecialInstructions)
}

func TestCreate_ReferenciaDuplicada(t *testing.T) {
	uc, _, _ := newDeliveryUC(t)
	in := dto.CreateDeliveryRequest{Reference: "R-1", DeliveryInput: validInput()}

	_, err := uc.Create(context.Background(), admin, in)
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), admin, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestList_AlcancePorRol(t *testing.T) {
	uc, _, store := newDeliveryUC(t)
	driverID := "d1"
	a := seedDelivery("1", "R-1", entity.DeliveryStatusPending)
	a.CreatedByID = "c1"
	b := seedDelivery("2", "R-2", entity.DeliveryStatusAssigned)
	b.CreatedByID = "c2"
	b.AssignedDriverID = &driverID
	store.Seed(a, b)

	all, err := uc.List(context.Background(), admin, dto.DeliveryListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)

	mine, err := uc.List(context.Background(), entity.Actor{UserID: "c1", Role: entity.RoleCustomer}, dto.DeliveryListRequest{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, "R-1", mine.Items[0].Reference)

	assigned, err := uc.List(context.Background(), entity.Actor{UserID: driverID, Role: entity.RoleDriver}, dto.DeliveryListRequest{})
	require.NoError(t, err)
	require.Len(t, assigned.Items, 1)
	assert.Equal(t, "R-2", assigned.Items[0].Reference)

	_, err = uc.List(context.Background(), admin, dto.DeliveryListRequest{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_ClienteAjenoRecibeForbidden(t *testing.T) {
	uc, _, store := newDeliveryUC(t)
	store.Seed(seedDelivery("1", "R-1", entity.DeliveryStatusPending))

	_, err := uc.Get(context.Background(), entity.Actor{UserID: "otro", Role: entity.RoleCustomer}, "1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(context.Background(), admin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignDriver(t *testing.T) {
	uc, users, store := newDeliveryUC(t)
	store.Seed(seedDelivery("1", "R-1", entity.DeliveryStatusPending))
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "d1", Email: "d1@x.test", Role: entity.RoleDriver, IsActive: true}))
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "d2", Email: "d2@x.test", Role: entity.RoleDriver}))
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "c1", Email: "c1@x.test", Role: entity.RoleCustomer, IsActive: true}))

	out, err := uc.AssignDriver(context.Background(), "1", "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAssigned, out.Status)
	require.NotNil(t, out.AssignedDriverID)
	assert.Equal(t, "d1", *out.AssignedDriverID)

	_, err = uc.AssignDriver(context.Background(), "1", "d2")
	assert.ErrorIs(t, err, domain.ErrConflict, "conductor inactivo")

	_, err = uc.AssignDriver(context.Background(), "1", "c1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un cliente no es conductor")
}

func TestUpdateStatus_ConductorAsignado(t *testing.T) {
	uc, _, store := newDeliveryUC(t)
	driverID := "d1"
	d := seedDelivery("1", "R-1", entity.DeliveryStatusAssigned)
	d.AssignedDriverID = &driverID
	store.Seed(d)

	out, err := uc.UpdateStatus(context.Background(), entity.Actor{UserID: driverID, Role: entity.RoleDriver}, "1", entity.DeliveryStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusDelivered, out.Status)

	_, err = uc.UpdateStatus(context.Background(), entity.Actor{UserID: "d9", Role: entity.RoleDriver}, "1", entity.DeliveryStatusReturned)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.UpdateStatus(context.Background(), admin, "1", "Delivered")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los estados distinguen mayúsculas")
}

func TestTrack(t *testing.T) {
	uc, _, store := newDeliveryUC(t)
	store.Seed(seedDelivery("1", "R-1", entity.DeliveryStatusInTransit))

	out, err := uc.Track(context.Background(), " R-1 ")
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusInTransit, out.Status)

	_, err = uc.Track(context.Background(), "R-404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
