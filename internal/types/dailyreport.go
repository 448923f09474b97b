package types

import (
	"time"
)

type DailyReport struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Date       string       `gorm:"uniqueIndex:idx_report_date_user;not null;column:date" json:"date"`
	UserID     uint         `gorm:"uniqueIndex:idx_report_date_user;not null;column:user_id" json:"user_id"`
	User       *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PositionID uint         `gorm:"not null;column:position_id" json:"position_id"`
	Position   *JobPosition `gorm:"foreignKey:PositionID;references:ID" json:"position,omitempty"`
	Title      string       `gorm:"not null;column:title" json:"title"`
	Summary    string       `gorm:"type:text;column:summary" json:"summary"`
	Content    string       `gorm:"type:text;column:content" json:"content"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
}

func (DailyReport) TableName() string {
	return "daily_report"
}
