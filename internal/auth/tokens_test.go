package auth

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodshelfapp/moodshelf-server/internal/domain"
)

func testKeyHex(t *testing.T) string {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return hex.EncodeToString(key)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		Entity: domain.Entity{ID: "usr-1"},
		Email:  "reader@example.com",
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "usr-1", claims.Subject)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken("v4.local.not-a-real-token")
	assert.Error(t, err)
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	svcA, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)
	svcB, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	token, err := svcA.GenerateAccessToken(&domain.User{
		Entity: domain.Entity{ID: "usr-1"},
		Email:  "reader@example.com",
	})
	require.NoError(t, err)

	_, err = svcB.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenServiceRejectsBadKey(t *testing.T) {
	_, err := NewTokenService("too-short", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}
