package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type CommunityCommentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, comment *types.CommunityComment) (*types.CommunityComment, error)
	GetByID(ctx context.Context, tx *gorm.DB, commentID uint) (*types.CommunityComment, error)
	ListByPostID(ctx context.Context, tx *gorm.DB, postID uint) ([]*types.CommunityComment, error)
	Update(ctx context.Context, tx *gorm.DB, comment *types.CommunityComment) (*types.CommunityComment, error)
	Delete(ctx context.Context, tx *gorm.DB, commentID uint) error
	DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uint) error
}

type communityCommentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCommunityCommentRepo(db *gorm.DB, baseLog *logger.Logger) CommunityCommentRepo {
	repoLog := baseLog.With("repo", "CommunityCommentRepo")
	return &communityCommentRepo{db: db, log: repoLog}
}

func (ccr *communityCommentRepo) Create(ctx context.Context, tx *gorm.DB, comment *types.CommunityComment) (*types.CommunityComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	if err := transaction.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (ccr *communityCommentRepo) GetByID(ctx context.Context, tx *gorm.DB, commentID uint) (*types.CommunityComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	var result types.CommunityComment
	err := transaction.WithContext(ctx).
		Preload("User").
		Where("id = ?", commentID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ccr *communityCommentRepo) ListByPostID(ctx context.Context, tx *gorm.DB, postID uint) ([]*types.CommunityComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	var results []*types.CommunityComment
	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ccr *communityCommentRepo) Update(ctx context.Context, tx *gorm.DB, comment *types.CommunityComment) (*types.CommunityComment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	if err := transaction.WithContext(ctx).Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (ccr *communityCommentRepo) Delete(ctx context.Context, tx *gorm.DB, commentID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&types.CommunityComment{}).Error
}

func (ccr *communityCommentRepo) DeleteByPostID(ctx context.Context, tx *gorm.DB, postID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ccr.db
	}

	return transaction.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&types.CommunityComment{}).Error
}
