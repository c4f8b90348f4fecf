package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/testutil/memstore"
	"github.com/jhoicas/Logistica-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memstore.Store, *usecase.SettingsUseCase) {
	t.Helper()
	users := memstore.NewStore()
	settings := usecase.NewSettingsUseCase(memstore.NewSettings(), nil, 0, nil)
	uc := auth.NewAuthUseCase(users, settings, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "logistica-test"})
	return uc, users, settings
}

var registration = dto.RegisterRequest{
	FirstName: "Ana",
	Email:     "  Ana@Example.com ",
	Password:  "secreto123",
}

func TestRegisterYLogin(t *testing.T) {
	uc, _, _ := newAuth(t)

	user, err := uc.Register(context.Background(), registration)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email, "el email se normaliza")
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@example.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, entity.RoleCustomer, id.Role)

	me, err := uc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.FirstName)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuth(t)

	_, err := uc.Register(context.Background(), registration)
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), registration)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Cerrado(t *testing.T) {
	uc, _, settings := newAuth(t)
	cur, err := settings.Get(context.Background())
	require.NoError(t, err)
	cur.AllowRegistration = false
	_, err = settings.Update(context.Background(), cur)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registration)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_RolPorDefectoDeLaConfiguracion(t *testing.T) {
	uc, _, settings := newAuth(t)
	cur, err := settings.Get(context.Background())
	require.NoError(t, err)
	cur.DefaultRole = entity.RoleDriver
	_, err = settings.Update(context.Background(), cur)
	require.NoError(t, err)

	user, err := uc.Register(context.Background(), registration)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDriver, user.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, users, _ := newAuth(t)
	user, err := uc.Register(context.Background(), registration)
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	u, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, users.Update(context.Background(), u))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "cuenta inactiva")
}
