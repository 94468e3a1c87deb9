package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-hosteria/pkg/token"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testUserID = "00000000-0000-0000-0000-000000000001"
	testIssuer = "inventario-hosteria-test"
	testExpMin = 60
)

func TestToken_GenerateAndParse(t *testing.T) {
	tok, err := token.Generate(testSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := token.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestToken_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := token.Generate(testSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = token.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestToken_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := token.Generate(testSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = token.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestToken_SecretVacio_RetornaError(t *testing.T) {
	_, err := token.Generate("", testUserID, testIssuer, testExpMin)
	assert.Error(t, err)

	_, err = token.Parse("", "cualquier.token.aqui")
	assert.Error(t, err)
}

func TestToken_Malformado_RetornaError(t *testing.T) {
	_, err := token.Parse(testSecret, "token.invalido.aqui")
	assert.Error(t, err)
}
