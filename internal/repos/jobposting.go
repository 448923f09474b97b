package repos

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type JobPostingRepo interface {
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.JobPosting, error)
	ListRecentByPositionIDs(ctx context.Context, tx *gorm.DB, positionIDs []uint, limit int) ([]*types.JobPosting, error)
	ListRecentByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint, limit int) ([]*types.JobPosting, error)
	Upsert(ctx context.Context, tx *gorm.DB, posting *types.JobPosting) (*types.JobPosting, error)
}

type jobPostingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobPostingRepo(db *gorm.DB, baseLog *logger.Logger) JobPostingRepo {
	repoLog := baseLog.With("repo", "JobPostingRepo")
	return &jobPostingRepo{db: db, log: repoLog}
}

func (jpr *jobPostingRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*types.JobPosting, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var results []*types.JobPosting
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Position").
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jpr *jobPostingRepo) ListRecentByPositionIDs(ctx context.Context, tx *gorm.DB, positionIDs []uint, limit int) ([]*types.JobPosting, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var results []*types.JobPosting
	if len(positionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Position").
		Where("position_id IN ?", positionIDs).
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (jpr *jobPostingRepo) ListRecentByCategoryIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uint, limit int) ([]*types.JobPosting, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	var results []*types.JobPosting
	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Category").
		Preload("Position").
		Where("category_id IN ?", categoryIDs).
		Order("created_at desc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert matches an existing posting by (title, company_name) and
// refreshes its mutable fields, keeping the feed sync idempotent.
func (jpr *jobPostingRepo) Upsert(ctx context.Context, tx *gorm.DB, posting *types.JobPosting) (*types.JobPosting, error) {
	transaction := tx
	if transaction == nil {
		transaction = jpr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "company_name"}, {Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"description", "location", "employment_type", "deadline", "source_url", "updated_at",
			}),
		}).
		Create(posting).Error; err != nil {
		return nil, err
	}
	return posting, nil
}
