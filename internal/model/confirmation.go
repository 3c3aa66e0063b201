package model

import "time"

// Confirmation is one email confirmation attempt. Rows are never deleted
// outside of an account cascade so the history stays queryable. A resend
// force-expires the outstanding row and inserts a fresh one.
type Confirmation struct {
	Token     string `gorm:"size:50;primaryKey" json:"token"`
	UserID    uint   `gorm:"index;not null" json:"-"`
	ExpiresAt int64  `gorm:"not null" json:"expires_at"`
	Confirmed bool   `gorm:"not null" json:"confirmed"`
}

// Expired compares in whole seconds. A token whose expiry equals the
// current second is still valid.
func (c *Confirmation) Expired() bool {
	return time.Now().Unix() > c.ExpiresAt
}
