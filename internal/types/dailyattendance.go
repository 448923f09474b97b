package types

import (
	"time"
)

type StressLevel string

const (
	StressExtremelyHigh StressLevel = "ExtremelyHigh"
	StressHigh          StressLevel = "High"
	StressMiddle        StressLevel = "Middle"
	StressLow           StressLevel = "Low"
	StressExtremelyLow  StressLevel = "ExtremelyLow"
)

func (s StressLevel) Valid() bool {
	switch s {
	case StressExtremelyHigh, StressHigh, StressMiddle, StressLow, StressExtremelyLow:
		return true
	}
	return false
}

// DailyAttendance is one check-in per user per calendar day. Date is the
// user's calendar day formatted YYYY-MM-DD; the (date, user_id) unique
// index is what stops a concurrent second check-in from slipping past the
// read-before-insert check.
type DailyAttendance struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Date        string      `gorm:"uniqueIndex:idx_attendance_date_user;not null;column:date" json:"date"`
	UserID      uint        `gorm:"uniqueIndex:idx_attendance_date_user;not null;column:user_id" json:"user_id"`
	User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	CheckinDate time.Time   `gorm:"not null;column:checkin_date" json:"checkin_date"`
	StressLevel StressLevel `gorm:"not null;column:stress_level" json:"stress_level"`
	Mood        string      `gorm:"column:mood" json:"mood,omitempty"`
	Note        string      `gorm:"column:note" json:"note,omitempty"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

func (DailyAttendance) TableName() string {
	return "daily_attendance"
}
