package types

import (
	"time"
)

type CommunityPost struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"index;not null;column:user_id" json:"user_id"`
	User      *User              `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Title     string             `gorm:"not null;column:title" json:"title"`
	Content   string             `gorm:"type:text;not null;column:content" json:"content"`
	ViewCount int64              `gorm:"not null;default:0;column:view_count" json:"view_count"`
	Comments  []CommunityComment `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"comments,omitempty"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null" json:"updated_at"`
}

func (CommunityPost) TableName() string {
	return "community_post"
}
