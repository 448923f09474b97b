package types

import (
	"time"
)

type JobPosting struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	CategoryID     uint         `gorm:"index;column:category_id" json:"category_id"`
	Category       *JobCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	PositionID     uint         `gorm:"index;column:position_id" json:"position_id"`
	Position       *JobPosition `gorm:"foreignKey:PositionID;references:ID" json:"position,omitempty"`
	CompanyName    string       `gorm:"not null;uniqueIndex:idx_posting_identity;column:company_name" json:"company_name"`
	Title          string       `gorm:"not null;uniqueIndex:idx_posting_identity;column:title" json:"title"`
	Description    string       `gorm:"type:text;column:description" json:"description"`
	Location       string       `gorm:"column:location" json:"location"`
	EmploymentType string       `gorm:"column:employment_type" json:"employment_type"`
	Deadline       *time.Time   `gorm:"column:deadline" json:"deadline,omitempty"`
	SourceURL      string       `gorm:"column:source_url" json:"source_url"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_posting"
}
