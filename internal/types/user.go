package types

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Password  string     `gorm:"not null;column:password" json:"-"`
	RealName  string     `gorm:"column:real_name" json:"real_name"`
	Interests string     `gorm:"column:interests" json:"interests"`
	LastLogin *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
