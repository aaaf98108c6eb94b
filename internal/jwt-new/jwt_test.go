package security_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/cryptship/internal/domain/models"
	security "github.com/linemk/cryptship/internal/jwt-new"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken_RoundTrip(t *testing.T) {
	user := &models.User{ID: 42, Email: "voyager@example.com"}

	token, err := security.NewToken(user, "secret", time.Hour)
	require.NoError(t, err)

	userID, err := security.ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	// email и время жизни попадают в claims
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "voyager@example.com", claims["email"])
	assert.Equal(t, "42", claims["sub"])
}

func TestNewToken_EmptySecret(t *testing.T) {
	_, err := security.NewToken(&models.User{ID: 1}, "", time.Hour)
	assert.ErrorIs(t, err, security.ErrEmptySecret)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := security.NewToken(&models.User{ID: 1}, "secret", time.Hour)
	require.NoError(t, err)

	_, err = security.ParseToken(token, "other")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := security.NewToken(&models.User{ID: 1}, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = security.ParseToken(token, "secret")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
