package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type DailyKeywordRepo interface {
	GetByDateAndUserID(ctx context.Context, tx *gorm.DB, date string, userID uint) (*types.DailyKeyword, error)
	Create(ctx context.Context, tx *gorm.DB, keyword *types.DailyKeyword) (*types.DailyKeyword, error)
}

type dailyKeywordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyKeywordRepo(db *gorm.DB, baseLog *logger.Logger) DailyKeywordRepo {
	repoLog := baseLog.With("repo", "DailyKeywordRepo")
	return &dailyKeywordRepo{db: db, log: repoLog}
}

func (dkr *dailyKeywordRepo) GetByDateAndUserID(ctx context.Context, tx *gorm.DB, date string, userID uint) (*types.DailyKeyword, error) {
	transaction := tx
	if transaction == nil {
		transaction = dkr.db
	}

	var result types.DailyKeyword
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

func (dkr *dailyKeywordRepo) Create(ctx context.Context, tx *gorm.DB, keyword *types.DailyKeyword) (*types.DailyKeyword, error) {
	transaction := tx
	if transaction == nil {
		transaction = dkr.db
	}

	if err := transaction.WithContext(ctx).Create(keyword).Error; err != nil {
		return nil, err
	}
	return keyword, nil
}
