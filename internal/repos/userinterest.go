package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type UserInterestRepo interface {
	ListCategoriesByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserInterestedCategory, error)
	ListPositionsByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserInterestedPosition, error)
	CreateCategories(ctx context.Context, tx *gorm.DB, edges []*types.UserInterestedCategory) ([]*types.UserInterestedCategory, error)
	CreatePositions(ctx context.Context, tx *gorm.DB, edges []*types.UserInterestedPosition) ([]*types.UserInterestedPosition, error)
	DeleteCategories(ctx context.Context, tx *gorm.DB, userID uint, categoryIDs []uint) (int64, error)
	DeletePositions(ctx context.Context, tx *gorm.DB, userID uint, positionIDs []uint) (int64, error)
	GetPrimaryPosition(ctx context.Context, tx *gorm.DB, userID uint) (*types.UserInterestedPosition, error)
}

type userInterestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserInterestRepo(db *gorm.DB, baseLog *logger.Logger) UserInterestRepo {
	repoLog := baseLog.With("repo", "UserInterestRepo")
	return &userInterestRepo{db: db, log: repoLog}
}

func (uir *userInterestRepo) ListCategoriesByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserInterestedCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	var results []*types.UserInterestedCategory
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uir *userInterestRepo) ListPositionsByUserID(ctx context.Context, tx *gorm.DB, userID uint) ([]*types.UserInterestedPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	var results []*types.UserInterestedPosition
	if err := transaction.WithContext(ctx).
		Preload("Position").
		Preload("Position.Category").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uir *userInterestRepo) CreateCategories(ctx context.Context, tx *gorm.DB, edges []*types.UserInterestedCategory) ([]*types.UserInterestedCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	if len(edges) == 0 {
		return []*types.UserInterestedCategory{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (uir *userInterestRepo) CreatePositions(ctx context.Context, tx *gorm.DB, edges []*types.UserInterestedPosition) ([]*types.UserInterestedPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	if len(edges) == 0 {
		return []*types.UserInterestedPosition{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&edges).Error; err != nil {
		return nil, err
	}
	return edges, nil
}

func (uir *userInterestRepo) DeleteCategories(ctx context.Context, tx *gorm.DB, userID uint, categoryIDs []uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	if len(categoryIDs) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND category_id IN ?", userID, categoryIDs).
		Delete(&types.UserInterestedCategory{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (uir *userInterestRepo) DeletePositions(ctx context.Context, tx *gorm.DB, userID uint, positionIDs []uint) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	if len(positionIDs) == 0 {
		return 0, nil
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND position_id IN ?", userID, positionIDs).
		Delete(&types.UserInterestedPosition{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetPrimaryPosition returns the user's first interested position with its
// category loaded, nil when the user has none configured.
func (uir *userInterestRepo) GetPrimaryPosition(ctx context.Context, tx *gorm.DB, userID uint) (*types.UserInterestedPosition, error) {
	transaction := tx
	if transaction == nil {
		transaction = uir.db
	}

	var result types.UserInterestedPosition
	err := transaction.WithContext(ctx).
		Preload("Position").
		Preload("Position.Category").
		Where("user_id = ?", userID).
		Order("id asc").
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
