package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/analytics"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/testutil/memstore"
)

var now = time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

func delivery(id, createdBy, status string, daysAgo int) *entity.Delivery {
	at := now.AddDate(0, 0, -daysAgo)
	return &entity.Delivery{
		ID: id, Reference: id, Status: status, CreatedByID: createdBy,
		PaymentMethod: entity.PaymentPrepaid, CreatedAt: at, UpdatedAt: at,
	}
}

func seeded() *memstore.Deliveries {
	store := memstore.NewDeliveries(memstore.NewStore())
	store.Seed(
		// ventana actual del usuario u1
		delivery("1", "u1", entity.DeliveryStatusDelivered, 1),
		delivery("2", "u1", entity.DeliveryStatusDelivered, 5),
		delivery("3", "u1", entity.DeliveryStatusInTransit, 29),
		// ventana anterior del usuario u1
		delivery("4", "u1", entity.DeliveryStatusDelivered, 31),
		delivery("5", "u1", entity.DeliveryStatusReturned, 45),
		// fuera de ambas ventanas
		delivery("6", "u1", entity.DeliveryStatusDelivered, 61),
		// otro usuario
		delivery("7", "u2", entity.DeliveryStatusDelivered, 2),
		delivery("8", "u2", entity.DeliveryStatusPending, 2),
	)
	return store
}

func TestGetStats_UsuarioSoloVeLoPropio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seeded(), nil, 0, nil).WithClock(func() time.Time { return now })

	out, err := uc.GetStats(context.Background(), entity.Actor{UserID: "u1", Role: entity.RoleCustomer})
	require.NoError(t, err)

	assert.Equal(t, 30, out.WindowDays)
	assert.Equal(t, 2, out.Mine.Delivered.Current)
	assert.Equal(t, 1, out.Mine.Delivered.Previous)
	assert.Equal(t, 100, out.Mine.Delivered.Change)
	assert.Equal(t, 0, out.Mine.Returned.Current)
	assert.Equal(t, -100, out.Mine.Returned.Change)
	assert.Equal(t, 1, out.Mine.InTransit.Current)
	assert.Equal(t, 100, out.Mine.InTransit.Change, "sin base y con actividad es +100")
	assert.Equal(t, 3, out.Mine.Total.Current)
	assert.Equal(t, 2, out.Mine.Total.Previous)
	assert.Equal(t, 50, out.Mine.Total.Change)
	assert.Nil(t, out.Global, "solo el admin recibe el global")
}

func TestGetStats_AdminRecibeGlobal(t *testing.T) {
	uc := analytics.NewDashboardUseCase(seeded(), nil, 0, nil).WithClock(func() time.Time { return now })

	out, err := uc.GetStats(context.Background(), entity.Actor{UserID: "u-admin", Role: entity.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Mine.Total.Current)
	require.NotNil(t, out.Global)
	assert.Equal(t, 3, out.Global.Delivered.Current, "pending no suma en ninguna categoría")
	assert.Equal(t, 4, out.Global.Total.Current)
}

func TestGetStats_UsaCache(t *testing.T) {
	store := seeded()
	cache := memstore.NewCache()
	uc := analytics.NewDashboardUseCase(store, cache, time.Minute, nil).WithClock(func() time.Time { return now })
	actor := entity.Actor{UserID: "u1", Role: entity.RoleCustomer}

	first, err := uc.GetStats(context.Background(), actor)
	require.NoError(t, err)

	store.Seed(delivery("9", "u1", entity.DeliveryStatusDelivered, 1))
	second, err := uc.GetStats(context.Background(), actor)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Hits)
	assert.Equal(t, first.Mine.Delivered.Current, second.Mine.Delivered.Current, "la respuesta cacheada no ve la nueva entrega")
}
