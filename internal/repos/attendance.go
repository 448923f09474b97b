package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type AttendanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attendance *types.DailyAttendance) (*types.DailyAttendance, error)
	GetFirstInWindow(ctx context.Context, tx *gorm.DB, userID uint, from, to time.Time) (*types.DailyAttendance, error)
	ListInWindow(ctx context.Context, tx *gorm.DB, userID uint, from, to time.Time) ([]*types.DailyAttendance, error)
}

type attendanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttendanceRepo(db *gorm.DB, baseLog *logger.Logger) AttendanceRepo {
	repoLog := baseLog.With("repo", "AttendanceRepo")
	return &attendanceRepo{db: db, log: repoLog}
}

func (ar *attendanceRepo) Create(ctx context.Context, tx *gorm.DB, attendance *types.DailyAttendance) (*types.DailyAttendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(attendance).Error; err != nil {
		return nil, err
	}
	return attendance, nil
}

func (ar *attendanceRepo) GetFirstInWindow(ctx context.Context, tx *gorm.DB, userID uint, from, to time.Time) (*types.DailyAttendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.DailyAttendance
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND checkin_date >= ? AND checkin_date < ?", userID, from, to).
		Order("checkin_date asc").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *attendanceRepo) ListInWindow(ctx context.Context, tx *gorm.DB, userID uint, from, to time.Time) ([]*types.DailyAttendance, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.DailyAttendance
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND checkin_date >= ? AND checkin_date < ?", userID, from, to).
		Order("checkin_date asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
