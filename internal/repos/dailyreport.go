package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type DailyReportRepo interface {
	GetByDateAndUserID(ctx context.Context, tx *gorm.DB, date string, userID uint) (*types.DailyReport, error)
	Create(ctx context.Context, tx *gorm.DB, report *types.DailyReport) (*types.DailyReport, error)
}

type dailyReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyReportRepo(db *gorm.DB, baseLog *logger.Logger) DailyReportRepo {
	repoLog := baseLog.With("repo", "DailyReportRepo")
	return &dailyReportRepo{db: db, log: repoLog}
}

func (drr *dailyReportRepo) GetByDateAndUserID(ctx context.Context, tx *gorm.DB, date string, userID uint) (*types.DailyReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = drr.db
	}

	var result types.DailyReport
	err := transaction.WithContext(ctx).
		Preload("Position").
		Preload("Position.Category").
		Where("date = ? AND user_id = ?", date, userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (drr *dailyReportRepo) Create(ctx context.Context, tx *gorm.DB, report *types.DailyReport) (*types.DailyReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = drr.db
	}

	if err := transaction.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}
