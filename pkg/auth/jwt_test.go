package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "moro-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("user-1", "tenant-1", []string{RoleEntrepreneur})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.True(t, claims.HasRole(RoleEntrepreneur))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.Equal(t, "moro-test", claims.Issuer)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("user-1", "tenant-1", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)
	token, err := svc.GenerateToken("user-1", "tenant-1", nil)
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{
		Secret:     "a-different-secret",
		Issuer:     "moro-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "moro-test",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken("user-1", "tenant-1", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongIssuer(t *testing.T) {
	issuer, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("user-1", "tenant-1", nil)
	require.NoError(t, err)

	svc := newTestService(t)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestNewJWTService_RequiresKeyMaterial(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "moro-test"})
	assert.Error(t, err)
}

func TestContextWithClaims_RoundTrip(t *testing.T) {
	claims := &Claims{UserID: "user-1", TenantID: "tenant-1", Roles: []string{RoleAdmin}}
	ctx := ContextWithClaims(t.Context(), claims)

	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = ClaimsFromContext(t.Context())
	assert.False(t, ok)
}
