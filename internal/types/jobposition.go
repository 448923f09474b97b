package types

import (
	"time"
)

type JobPosition struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"index;not null;column:category_id" json:"category_id"`
	Category    *JobCategory `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Name        string       `gorm:"not null;column:name" json:"name"`
	Description string       `gorm:"column:description" json:"description"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (JobPosition) TableName() string {
	return "job_position"
}
