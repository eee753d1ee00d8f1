package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mddstore/backend/internal/domain/identity"
)

func testUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Priya", "priya@example.com", "$2a$10$hash")
	require.NoError(t, err)
	u.PromoteToAdmin()
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, "mddstore")
	user := testUser(t)

	token, err := mgr.Issue(user)
	require.NoError(t, err)

	claims, err := mgr.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "mddstore", claims.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour, "mddstore").Issue(testUser(t))
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour, "mddstore").Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	mgr := NewJWTManager("test-secret", -time.Minute, "mddstore")
	token, err := mgr.Issue(testUser(t))
	require.NoError(t, err)

	_, err = mgr.Verify(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Hour, "mddstore")
	_, err := mgr.Verify("not.a.token")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher()

	hash, err := h.Hash("supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)

	assert.NoError(t, h.Compare(hash, "supersecret"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
