package store

import (
	"testing"
	"time"

	"myannime/catalog-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationExpiry_WholeSecondBoundary(t *testing.T) {
	c := &model.Confirmation{Token: "t", ExpiresAt: time.Now().Unix()}

	// Equal seconds means still valid; only a strictly later second expires.
	assert.False(t, c.Expired())

	c.ExpiresAt = time.Now().Unix() - 1
	assert.True(t, c.Expired())
}

func TestIssueConfirmation(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	c, err := tokens.IssueConfirmation(user.ID)
	require.NoError(t, err)

	assert.Len(t, c.Token, 32)
	assert.False(t, c.Confirmed)
	assert.False(t, c.Expired())

	found, err := tokens.FindConfirmation(c.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)
}

func TestFindConfirmation_Unknown(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)

	_, err := tokens.FindConfirmation("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirm_OnlyOnce(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	c, err := tokens.IssueConfirmation(user.ID)
	require.NoError(t, err)

	require.NoError(t, tokens.Confirm(c))
	assert.ErrorIs(t, tokens.Confirm(c), ErrAlreadyConfirmed)

	ok, err := tokens.HasConfirmed(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestForceExpire_Idempotent(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	c, err := tokens.IssueConfirmation(user.ID)
	require.NoError(t, err)

	require.NoError(t, tokens.ForceExpire(c))
	firstExpiry := c.ExpiresAt

	// An expired token must not get its expiry bumped again.
	time.Sleep(1100 * time.Millisecond)
	require.NoError(t, tokens.ForceExpire(c))
	assert.Equal(t, firstExpiry, c.ExpiresAt)
}

func TestReissueConfirmation_ExpiresOldKeepsHistory(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	first, err := tokens.IssueConfirmation(user.ID)
	require.NoError(t, err)

	second, err := tokens.ReissueConfirmation(first, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	old, err := tokens.FindConfirmation(first.Token)
	require.NoError(t, err)
	assert.True(t, old.Expired())

	// Both rows survive; the ledger is history, not state.
	history, err := tokens.Confirmations(user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	last, err := tokens.LastConfirmation(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Token, last.Token)
}

func TestHasConfirmed_SurvivesLaterExpiredTokens(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	c, err := tokens.IssueConfirmation(user.ID)
	require.NoError(t, err)
	require.NoError(t, tokens.Confirm(c))

	expired := &model.Confirmation{
		Token:     "expired-token-xxxxxxxxxxxxxxxxxx",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}
	require.NoError(t, db.Create(expired).Error)

	ok, err := tokens.HasConfirmed(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIssueReset_SupersedesPendingReset(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	first, err := tokens.IssueReset(user.ID)
	require.NoError(t, err)

	second, err := tokens.IssueReset(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	// The superseded token is gone, not merely expired.
	_, err = tokens.FindReset(first.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.PasswordReset{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConsumeReset_DeletesRow(t *testing.T) {
	db := testDB(t)
	tokens := NewTokenStore(db)
	user := seedUser(t, db, "alice", "alice@example.com")

	r, err := tokens.IssueReset(user.ID)
	require.NoError(t, err)

	require.NoError(t, tokens.ConsumeReset(r))

	_, err = tokens.FindReset(r.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}
