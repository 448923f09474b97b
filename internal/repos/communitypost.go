package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type CommunityPostRepo interface {
	Create(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) (*types.CommunityPost, error)
	GetByID(ctx context.Context, tx *gorm.DB, postID uint) (*types.CommunityPost, error)
	GetByIDWithComments(ctx context.Context, tx *gorm.DB, postID uint) (*types.CommunityPost, error)
	List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.CommunityPost, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) (*types.CommunityPost, error)
	Delete(ctx context.Context, tx *gorm.DB, postID uint) error
	IncrementViewCount(ctx context.Context, tx *gorm.DB, postID uint) error
}

type communityPostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunityPostRepo(db *gorm.DB, baseLog *logger.Logger) CommunityPostRepo {
	repoLog := baseLog.With("repo", "CommunityPostRepo")
	return &communityPostRepo{db: db, log: repoLog}
}

func (cpr *communityPostRepo) Create(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) (*types.CommunityPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	if err := transaction.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (cpr *communityPostRepo) GetByID(ctx context.Context, tx *gorm.DB, postID uint) (*types.CommunityPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	var result types.CommunityPost
	err := transaction.WithContext(ctx).
		Preload("User").
		Where("id = ?", postID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cpr *communityPostRepo) GetByIDWithComments(ctx context.Context, tx *gorm.DB, postID uint) (*types.CommunityPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	var result types.CommunityPost
	err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("community_comment.created_at asc")
		}).
		Preload("Comments.User").
		Where("id = ?", postID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cpr *communityPostRepo) List(ctx context.Context, tx *gorm.DB, offset, limit int) ([]*types.CommunityPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	var results []*types.CommunityPost
	if err := transaction.WithContext(ctx).
		Preload("User").
		Preload("Comments").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cpr *communityPostRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.CommunityPost{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (cpr *communityPostRepo) Update(ctx context.Context, tx *gorm.DB, post *types.CommunityPost) (*types.CommunityPost, error) {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	if err := transaction.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (cpr *communityPostRepo) Delete(ctx context.Context, tx *gorm.DB, postID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", postID).
		Delete(&types.CommunityPost{}).Error
}

// IncrementViewCount bumps the counter in a single UPDATE so concurrent
// readers cannot lose increments.
func (cpr *communityPostRepo) IncrementViewCount(ctx context.Context, tx *gorm.DB, postID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = cpr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.CommunityPost{}).
		Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}
