package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type JobPositionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, positions []*types.JobPosition) ([]*types.JobPosition, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.JobPosition, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, positionIDs []uint) ([]*types.JobPosition, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.JobPosition, error)
}

type jobPositionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobPositionRepo(db *gorm.DB, baseLog *logger.Logger) JobPositionRepo {
	repoLog := baseLog.With("repo", "JobPositionRepo")
	return &jobPositionRepo{db: db, log: repoLog}
}

func (jpr *jobPositionRepo) Create(ctx context.Context, tx *gorm.DB, positions []*types.JobPosition) ([]*types.JobPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	if len(positions) == 0 {
		return []*types.JobPosition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (jpr *jobPositionRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.JobPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var results []*types.JobPosition
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Order("id asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jpr *jobPositionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, positionIDs []uint) ([]*types.JobPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var results []*types.JobPosition
	if len(positionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", positionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jpr *jobPositionRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.JobPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var result types.JobPosition
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
