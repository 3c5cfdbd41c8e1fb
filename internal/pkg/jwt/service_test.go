package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("secret", time.Minute, "career-ready")
	userID := uuid.New()

	tok, err := s.GenerateAccessToken(userID, "a@b.c")
	require.NoError(t, err)

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Minute, "")
	past := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return past }
	tok, err := s.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecretOrIssuer(t *testing.T) {
	tok, err := NewHMACService("one", time.Minute, "a").GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewHMACService("two", time.Minute, "a").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("one", time.Minute, "b").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_SubjectOnlyToken(t *testing.T) {
	userID := uuid.New()
	raw := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Minute)),
	})
	tok, err := raw.SignedString([]byte("secret"))
	require.NoError(t, err)

	claims, err := NewHMACService("secret", time.Minute, "").ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestHMACService_RejectsGarbage(t *testing.T) {
	_, err := NewHMACService("secret", time.Minute, "").ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
