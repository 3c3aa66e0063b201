// Package model contains the gorm models shared across the application
package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:70;default:Awesome User" json:"name"`
	Username     string    `gorm:"size:70;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:70;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:150;not null" json:"-"`
	Joined       time.Time `gorm:"autoCreateTime" json:"joined"`

	Confirmations []Confirmation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PasswordReset *PasswordReset `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SavedAnimes   []Anime        `gorm:"many2many:user_animes" json:"-"`
}
