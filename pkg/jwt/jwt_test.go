package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Logistica-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testEmail  = "ops@logistica.test"
	testIssuer = "logistica-api-test"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "driver", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, id.UserID)
	assert.Equal(t, testEmail, id.Email)
	assert.Equal(t, "driver", id.Role)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testEmail, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testEmail, "admin", testIssuer, 60)
	assert.Error(t, err)
}
