package service

import (
	"testing"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_IdenticalErrorForUnknownUserAndWrongPassword(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	_, errUnknown := f.auth.Login("ghost", "s3cure password")
	_, errWrongPass := f.auth.Login("alice", "wrong password")

	// Responses must not reveal whether the username exists.
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestLogin_RejectsUnactivatedAccount(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "s3cure password")

	_, err := f.auth.Login("alice", "s3cure password")
	assert.ErrorIs(t, err, ErrAccountNotActivated)
}

func TestLogin_IssuesBareSession(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	session, err := f.auth.Login("alice", "s3cure password")
	require.NoError(t, err)

	assert.Equal(t, "alice", session.Username)
	assert.EqualValues(t, security.UserAccessTTL.Seconds(), session.ExpiresIn)

	claims, err := f.issuer.ParseAccess(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.False(t, claims.Elevated())
}

func TestAdminLogin_ClaimsFollowRole(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "ed", "editor password", model.RoleEditor)
	f.seedAdmin(t, "newbie", "member password", model.RoleRegularMember)

	session, err := f.auth.AdminLogin("ed", "editor password")
	require.NoError(t, err)

	claims, err := f.issuer.ParseAccess(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, claims.Role)
	assert.NotZero(t, claims.AdminID)

	// A lowest-tier admin gets a token indistinguishable from a user's.
	session, err = f.auth.AdminLogin("newbie", "member password")
	require.NoError(t, err)

	claims, err = f.issuer.ParseAccess(session.AccessToken)
	require.NoError(t, err)
	assert.False(t, claims.Elevated())
	assert.Zero(t, claims.AdminID)
}

func TestAdminLogin_BadCredentials(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "ed", "editor password", model.RoleEditor)

	_, err := f.auth.AdminLogin("ed", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.AdminLogin("ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RecomputesRoleClaims(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "ed", "editor password", model.RoleEditor)

	session, err := f.auth.AdminLogin("ed", "editor password")
	require.NoError(t, err)

	// Demote between login and refresh; the new access token must carry
	// the current role, not the one from login time.
	admin.Role = model.RoleRegularMember
	require.NoError(t, f.admins.Update(admin))

	access, expiresIn, err := f.auth.Refresh(session.RefreshToken)
	require.NoError(t, err)
	assert.EqualValues(t, security.AdminAccessTTL.Seconds(), expiresIn)

	claims, err := f.issuer.ParseAccess(access)
	require.NoError(t, err)
	assert.False(t, claims.Elevated())
}

func TestRefresh_UserToken(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	session, err := f.auth.Login("alice", "s3cure password")
	require.NoError(t, err)

	access, expiresIn, err := f.auth.Refresh(session.RefreshToken)
	require.NoError(t, err)
	assert.EqualValues(t, security.UserAccessTTL.Seconds(), expiresIn)

	claims, err := f.issuer.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
}

func TestRefresh_DeletedAccount(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	session, err := f.auth.Login("alice", "s3cure password")
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(user.ID))

	_, _, err = f.auth.Refresh(session.RefreshToken)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	session, err := f.auth.Login("alice", "s3cure password")
	require.NoError(t, err)

	_, _, err = f.auth.Refresh(session.AccessToken)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestVerifyAdminPassword(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "ed", "editor password", model.RoleEditor)

	assert.True(t, f.auth.VerifyAdminPassword(admin, "editor password"))
	assert.False(t, f.auth.VerifyAdminPassword(admin, "wrong"))
}
