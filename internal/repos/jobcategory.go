package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type JobCategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.JobCategory) ([]*types.JobCategory, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.JobCategory, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*types.JobCategory, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.JobCategory, error)
}

type jobCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobCategoryRepo(db *gorm.DB, baseLog *logger.Logger) JobCategoryRepo {
	repoLog := baseLog.With("repo", "JobCategoryRepo")
	return &jobCategoryRepo{db: db, log: repoLog}
}

func (jcr *jobCategoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.JobCategory) ([]*types.JobCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = jcr.db
	}

	if len(categories) == 0 {
		return []*types.JobCategory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (jcr *jobCategoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.JobCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = jcr.db
	}

	var results []*types.JobCategory
	if err := transaction.WithContext(ctx).
		Order("id asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jcr *jobCategoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint) ([]*types.JobCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = jcr.db
	}

	var results []*types.JobCategory
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jcr *jobCategoryRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.JobCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = jcr.db
	}

	var result types.JobCategory
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
