package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitala/gitala_branch/internal/utils"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT("mukasa", "owner", testSecret, time.Hour, "gitala_branch")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "mukasa", claims.Subject)
	assert.Equal(t, "owner", claims.Role)
	assert.Equal(t, "gitala_branch", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("mukasa", "owner", testSecret, time.Hour, "gitala_branch")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("mukasa", "owner", testSecret, -time.Minute, "gitala_branch")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, testSecret)
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := utils.ParseAndValidateJWT("not.a.token", testSecret)
	assert.Error(t, err)
}
