package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/erp-core/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse_ConRolYTenant(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "acme", "financiero", "erp-core-test", 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "acme", claims.TenantID)
	assert.Equal(t, "financiero", claims.Role)
	assert.Equal(t, "erp-core-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "acme", "admin", "erp-core-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "acme", "admin", "erp-core-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "acme", "admin", "x", 60)
	assert.Error(t, err)
}
