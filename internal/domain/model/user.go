package model

import "time"

type User struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"column:password_hash;not null" json:"-"`
	IsAdmin         bool       `gorm:"not null;default:false" json:"is_admin"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// メール認証済みか
func (u User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
