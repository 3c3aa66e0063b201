package model

import "time"

type Admin struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"size:70;default:Awesome Admin" json:"name"`
	Role         Role      `gorm:"size:30;not null;default:Regular Member" json:"role"`
	Username     string    `gorm:"size:70;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:150;not null" json:"-"`
	Joined       time.Time `gorm:"autoCreateTime" json:"joined"`
}
