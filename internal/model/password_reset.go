package model

import "time"

// PasswordReset authorizes exactly one password change. Unlike Confirmation
// rows these are short-lived bookkeeping: a newer request deletes the old row
// and a completed reset deletes the consumed one. The unique index on UserID
// is what actually guarantees at most one active reset per account.
type PasswordReset struct {
	Token     string `gorm:"size:50;primaryKey" json:"token"`
	UserID    uint   `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt int64  `gorm:"not null" json:"expires_at"`
}

func (p *PasswordReset) Expired() bool {
	return time.Now().Unix() > p.ExpiresAt
}
