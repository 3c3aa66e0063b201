package store

import (
	"encoding/hex"
	"errors"
	"time"

	"myannime/catalog-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// Both token kinds live for one hour from issuance.
	ConfirmationTTL  = time.Hour
	PasswordResetTTL = time.Hour
)

// TokenStore is the ledger of confirmation and password reset tokens.
// Expiry is a property of the stored timestamp evaluated at read time,
// nothing here runs on a timer.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) WithTx(tx *gorm.DB) *TokenStore {
	return &TokenStore{db: tx}
}

func newToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// NewConfirmation builds an unsaved confirmation row for userID.
func NewConfirmation(userID uint) *model.Confirmation {
	return &model.Confirmation{
		Token:     newToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ConfirmationTTL).Unix(),
	}
}

// IssueConfirmation inserts a fresh confirmation token for userID.
func (s *TokenStore) IssueConfirmation(userID uint) (*model.Confirmation, error) {
	c := NewConfirmation(userID)
	if err := s.db.Create(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// ReissueConfirmation force-expires prev (when still outstanding) and
// inserts a replacement in one transaction. prev may be nil.
func (s *TokenStore) ReissueConfirmation(prev *model.Confirmation, userID uint) (*model.Confirmation, error) {
	c := NewConfirmation(userID)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if prev != nil {
			if err := s.WithTx(tx).ForceExpire(prev); err != nil {
				return err
			}
		}

		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *TokenStore) FindConfirmation(token string) (*model.Confirmation, error) {
	var c model.Confirmation
	err := s.db.Where("token = ?", token).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

// LastConfirmation returns the account's most recent confirmation, the one
// that decides pending-vs-expired status. Older rows are history only.
func (s *TokenStore) LastConfirmation(userID uint) (*model.Confirmation, error) {
	var c model.Confirmation
	err := s.db.
		Where("user_id = ?", userID).
		Order("expires_at desc").
		First(&c).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (s *TokenStore) Confirmations(userID uint) ([]model.Confirmation, error) {
	var cs []model.Confirmation
	err := s.db.
		Where("user_id = ?", userID).
		Order("expires_at asc").
		Find(&cs).
		Error

	return cs, err
}

// HasConfirmed reports whether any confirmation row for userID was ever
// consumed. This is the account's effective activation state.
func (s *TokenStore) HasConfirmed(userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Confirmation{}).
		Where("user_id = ? AND confirmed = ?", userID, true).
		Count(&count).
		Error

	return count > 0, err
}

// ForceExpire moves the expiry to now so the token stops being usable while
// its row stays behind for status queries. Calling it on an already expired
// token changes nothing.
func (s *TokenStore) ForceExpire(c *model.Confirmation) error {
	if c.Expired() {
		return nil
	}

	c.ExpiresAt = time.Now().Unix()
	return s.db.Model(c).Update("expires_at", c.ExpiresAt).Error
}

// Confirm consumes c by flipping confirmed exactly once.
func (s *TokenStore) Confirm(c *model.Confirmation) error {
	if c.Confirmed {
		return ErrAlreadyConfirmed
	}

	c.Confirmed = true
	return s.db.Model(c).Update("confirmed", true).Error
}

// DeleteConfirmations removes every confirmation row for userID. Only the
// registration rollback path uses this.
func (s *TokenStore) DeleteConfirmations(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&model.Confirmation{}).Error
}

// IssueReset replaces any pending reset for userID with a fresh one. The
// old row is deleted outright, not expired in place.
func (s *TokenStore) IssueReset(userID uint) (*model.PasswordReset, error) {
	r := &model.PasswordReset{
		Token:     newToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(PasswordResetTTL).Unix(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.PasswordReset{}).Error; err != nil {
			return err
		}

		return tx.Create(r).Error
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (s *TokenStore) FindReset(token string) (*model.PasswordReset, error) {
	var r model.PasswordReset
	err := s.db.Where("token = ?", token).First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &r, nil
}

// ConsumeReset deletes the single-use row.
func (s *TokenStore) ConsumeReset(r *model.PasswordReset) error {
	return s.db.Delete(r).Error
}
