package services

import (
	"context"
	"testing"
	"time"

	"tourdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthBootstrapLoginAndParse(t *testing.T) {
	admins := &fakeAdmins{}
	now := fixedNow
	svc := AuthService{Admins: admins, Secret: []byte("test-secret"), Now: func() time.Time { return now }}
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "owner", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = svc.EnsureBootstrapAdmin(ctx, "other", "pw")
	require.NoError(t, err)
	assert.False(t, created, "only when no admin exists")
	require.Len(t, admins.rows, 1)
	assert.NotEqual(t, "s3cret", admins.rows[0].PasswordHash)

	res, err := svc.Login(ctx, "req-1", "owner", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, fixedNow.Add(24*time.Hour), res.ExpiresAt)

	rc, err := svc.ParseToken("req-2", res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rc.AdminID)
	assert.Equal(t, "owner", rc.Username)
	assert.Equal(t, domain.RoleOwner, rc.Role)
	assert.Equal(t, "req-2", rc.RequestID)

	now = fixedNow.Add(25 * time.Hour)
	_, err = svc.ParseToken("req-3", res.Token)
	assert.True(t, domain.IsUnauthorized(err), "expired token")
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	svc := AuthService{Admins: &fakeAdmins{}, Secret: []byte("k")}
	ctx := context.Background()
	_, err := svc.EnsureBootstrapAdmin(ctx, "owner", "right")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "", "owner", "wrong")
	assert.True(t, domain.IsUnauthorized(err))
	_, err = svc.Login(ctx, "", "ghost", "right")
	assert.True(t, domain.IsUnauthorized(err))
	_, err = svc.Login(ctx, "", "", "")
	assert.True(t, domain.IsValidation(err))
}

func TestAuthParseTokenRejectsForeignSignature(t *testing.T) {
	admins := &fakeAdmins{}
	issuer := AuthService{Admins: admins, Secret: []byte("one")}
	_, err := issuer.EnsureBootstrapAdmin(context.Background(), "owner", "pw")
	require.NoError(t, err)
	res, err := issuer.Login(context.Background(), "", "owner", "pw")
	require.NoError(t, err)

	other := AuthService{Secret: []byte("two")}
	_, err = other.ParseToken("", res.Token)
	assert.True(t, domain.IsUnauthorized(err))

	_, err = other.ParseToken("", "not.a.token")
	assert.True(t, domain.IsUnauthorized(err))
}
