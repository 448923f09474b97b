package types

import (
	"time"
)

// DailyKeyword is the per-user-per-day memoized learning keyword. Date is
// the user's calendar day formatted YYYY-MM-DD; the (date, user_id) index
// is what keeps concurrent misses from duplicating rows.
type DailyKeyword struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Date        string       `gorm:"uniqueIndex:idx_keyword_date_user;not null;column:date" json:"date"`
	UserID      uint         `gorm:"uniqueIndex:idx_keyword_date_user;not null;column:user_id" json:"user_id"`
	User        *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	PositionID  uint         `gorm:"not null;column:position_id" json:"position_id"`
	Position    *JobPosition `gorm:"foreignKey:PositionID;references:ID" json:"position,omitempty"`
	Keyword     string       `gorm:"not null;column:keyword" json:"keyword"`
	Description string       `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (DailyKeyword) TableName() string {
	return "daily_keyword"
}
