package types

import (
	"time"
)

// Interest edges are unique per (user, target); duplicates are filtered
// before insert and the composite index backstops concurrent adds.

type UserInterestedCategory struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"uniqueIndex:idx_user_category;not null;column:user_id" json:"user_id"`
	User       *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CategoryID uint         `gorm:"uniqueIndex:idx_user_category;not null;column:category_id" json:"category_id"`
	Category   *JobCategory `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

func (UserInterestedCategory) TableName() string {
	return "user_interested_category"
}

type UserInterestedPosition struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	UserID     uint         `gorm:"uniqueIndex:idx_user_position;not null;column:user_id" json:"user_id"`
	User       *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PositionID uint         `gorm:"uniqueIndex:idx_user_position;not null;column:position_id" json:"position_id"`
	Position   *JobPosition `gorm:"constraint:OnDelete:CASCADE;foreignKey:PositionID;references:ID" json:"position,omitempty"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

func (UserInterestedPosition) TableName() string {
	return "user_interested_position"
}
