package types

import (
	"time"
)

// UserToken is the single active token pair for a user. Login and
// reissue replace the row in place (upsert keyed by user_id).
type UserToken struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AccessToken  string    `gorm:"not null;column:access_token" json:"access_token"`
	RefreshToken string    `gorm:"not null;column:refresh_token" json:"refresh_token"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (UserToken) TableName() string {
	return "user_token"
}
