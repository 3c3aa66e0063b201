package service

import (
	"testing"
	"time"

	"myannime/catalog-api/internal/model"
	"myannime/catalog-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserAndMailsActivation(t *testing.T) {
	f := newFixture(t)

	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cure password", user.PasswordHash)
	require.Len(t, f.mail.activations, 1)
	assert.Contains(t, f.mail.activations[0], "/v1/user/activate?token=")

	last, err := f.tokens.LastConfirmation(user.ID)
	require.NoError(t, err)
	assert.False(t, last.Confirmed)
	assert.False(t, last.Expired())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "s3cure password")

	err := f.accounts.Register("Other", "alice", "other@example.com", "s3cure password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice", "alice@example.com", "s3cure password")

	err := f.accounts.Register("Other", "bob", "alice@example.com", "s3cure password")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_RollsBackWhenMailFails(t *testing.T) {
	f := newFixture(t)
	f.mail.fail = true

	err := f.accounts.Register("Test User", "alice", "alice@example.com", "s3cure password")
	require.ErrorIs(t, err, ErrDelivery)

	// Nothing may survive a failed delivery, not even orphaned tokens.
	_, err = f.users.FindByUsername("alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	var confirmations int64
	require.NoError(t, f.db.Model(&model.Confirmation{}).Count(&confirmations).Error)
	assert.Zero(t, confirmations)
}

func TestActivate_Lifecycle(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	last, err := f.tokens.LastConfirmation(user.ID)
	require.NoError(t, err)

	require.NoError(t, f.accounts.Activate(last.Token))

	// A consumed link answers "already confirmed", even once it is old.
	assert.ErrorIs(t, f.accounts.Activate(last.Token), ErrAlreadyConfirmed)

	assert.ErrorIs(t, f.accounts.Activate("deadbeefdeadbeefdeadbeefdeadbeef"), ErrTokenNotFound)
}

func TestActivate_Expired(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	last, err := f.tokens.LastConfirmation(user.ID)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(last).Update("expires_at", time.Now().Add(-time.Minute).Unix()).Error)

	assert.ErrorIs(t, f.accounts.Activate(last.Token), ErrTokenExpired)
}

func TestResendActivation_InvalidatesOldLink(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	old, err := f.tokens.LastConfirmation(user.ID)
	require.NoError(t, err)

	require.NoError(t, f.accounts.ResendActivation("alice"))
	require.Len(t, f.mail.activations, 2)

	// The superseded link is force-expired in place, its row kept.
	reloaded, err := f.tokens.FindConfirmation(old.Token)
	require.NoError(t, err)
	assert.LessOrEqual(t, reloaded.ExpiresAt, time.Now().Unix())
	assert.False(t, reloaded.Confirmed)

	f.activate(t, user.ID)

	assert.ErrorIs(t, f.accounts.ResendActivation("alice"), ErrAlreadyConfirmed)
	assert.ErrorIs(t, f.accounts.ResendActivation("ghost"), ErrUserNotFound)
}

func TestResendActivation_KeepsTokenWhenMailFails(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	f.mail.fail = true
	require.ErrorIs(t, f.accounts.ResendActivation("alice"), ErrDelivery)

	// The fresh token stays usable even though delivery failed.
	last, err := f.tokens.LastConfirmation(user.ID)
	require.NoError(t, err)
	assert.False(t, last.Expired())
}

func TestRequestPasswordReset(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")

	_, err := f.accounts.RequestPasswordReset("alice@example.com")
	assert.ErrorIs(t, err, ErrInactiveAccount)

	f.activate(t, user.ID)

	token, err := f.accounts.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.Len(t, f.mail.resets, 1)
	assert.Contains(t, f.mail.resets[0], token)

	_, err = f.accounts.RequestPasswordReset("ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestPasswordReset_SupersedesPrevious(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	f.activate(t, user.ID)

	first, err := f.accounts.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)

	second, err := f.accounts.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, f.accounts.CompletePasswordReset(first, "new password 1"), ErrTokenNotFound)
	assert.NoError(t, f.accounts.CompletePasswordReset(second, "new password 2"))
}

func TestCompletePasswordReset_SingleUse(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "old password!")
	f.activate(t, user.ID)

	token, err := f.accounts.RequestPasswordReset("alice@example.com")
	require.NoError(t, err)

	require.NoError(t, f.accounts.CompletePasswordReset(token, "new password!"))

	_, err = f.auth.Login("alice", "old password!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login("alice", "new password!")
	assert.NoError(t, err)

	// The consumed token is gone.
	assert.ErrorIs(t, f.accounts.CompletePasswordReset(token, "another one"), ErrTokenNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "old password!")
	f.activate(t, user.ID)

	err := f.accounts.ChangePassword("alice", "wrong old", "new password!")
	assert.ErrorIs(t, err, ErrIncorrectOldPassword)

	require.NoError(t, f.accounts.ChangePassword("alice", "old password!", "new password!"))

	_, err = f.auth.Login("alice", "new password!")
	assert.NoError(t, err)
}

func TestConfirmationStatus(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "alice", "alice@example.com", "s3cure password")
	require.NoError(t, f.accounts.ResendActivation("alice"))

	got, history, err := f.accounts.ConfirmationStatus("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Len(t, history, 2)

	_, _, err = f.accounts.ConfirmationStatus("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
