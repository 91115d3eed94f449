package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "device-7", time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "device-7", token.Owner)

	claims, ok := token.Token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "device-7", claims.Subject)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		owner    string
		duration time.Duration
		key      string
	}{
		{name: "empty issuer", owner: "o", duration: time.Hour, key: "k"},
		{name: "empty owner", issuer: "i", duration: time.Hour, key: "k"},
		{name: "zero duration", issuer: "i", owner: "o", key: "k"},
		{name: "empty key", issuer: "i", owner: "o", duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.owner, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("issuer", "alice", time.Hour, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "issuer")
	require.NoError(t, err)
	assert.Equal(t, "alice", parsed.Owner)
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	valid, err := GenerateJWTToken("issuer", "alice", time.Hour, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(valid.SignedString, "other-key", "issuer")
	assert.Error(t, err, "wrong sign key")

	_, err = ValidateAndParseJWTToken(valid.SignedString, "key", "other-issuer")
	assert.Error(t, err, "wrong issuer")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "issuer",
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredString, err := expired.SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(expiredString, "key", "issuer")
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateAndParseJWTToken_EmptySubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "issuer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	s, err := tok.SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(s, "key", "issuer")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	got, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", got)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.ErrorIs(t, err, ErrInvalidAuthorizationHeader, header)
	}
}
