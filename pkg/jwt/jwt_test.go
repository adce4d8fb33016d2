package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secreto", "stockflow", 5, "u-1", "OPERATOR", "wh-a", "wh-b", "wh-c")
	require.NoError(t, err)

	claims, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "OPERATOR", claims.Role)
	assert.Equal(t, "wh-a", claims.WarehouseID)
	assert.Equal(t, []string{"wh-b", "wh-c"}, claims.WarehouseIDs)
	assert.Equal(t, "stockflow", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate("secreto", "stockflow", 5, "u-1", "ADMIN", "")
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secreto", "stockflow", -1, "u-1", "ADMIN", "")
	require.NoError(t, err)
	_, err = Parse("secreto", expired)
	assert.Error(t, err, "expirado")

	_, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("", "stockflow", 5, "u-1", "ADMIN", "")
	assert.Error(t, err)
}
