package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/clients/jobapi"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

const defaultRecommendedRows = 10

type SyncResult struct {
	Fetched int `json:"fetched"`
	Stored  int `json:"stored"`
	Skipped int `json:"skipped"`
}

type JobService interface {
	GetCategories(ctx context.Context) ([]*types.JobCategory, error)
	GetPositions(ctx context.Context) ([]*types.JobPosition, error)
	GetInterestedCategories(ctx context.Context, userID uint) ([]*types.UserInterestedCategory, error)
	GetInterestedPositions(ctx context.Context, userID uint) ([]*types.UserInterestedPosition, error)
	AddInterestedCategories(ctx context.Context, userID uint, categoryIDs []uint) ([]*types.UserInterestedCategory, error)
	AddInterestedPositions(ctx context.Context, userID uint, positionIDs []uint) ([]*types.UserInterestedPosition, error)
	DeleteInterestedCategories(ctx context.Context, userID uint, categoryIDs []uint) error
	DeleteInterestedPositions(ctx context.Context, userID uint, positionIDs []uint) error
	GetRecommendedJobs(ctx context.Context, userID uint, numOfRows int) ([]*types.JobPosting, error)
	SyncJobPostings(ctx context.Context, numOfRows int) (*SyncResult, error)
}

type jobService struct {
	db           *gorm.DB
	log          *logger.Logger
	categoryRepo repos.JobCategoryRepo
	positionRepo repos.JobPositionRepo
	postingRepo  repos.JobPostingRepo
	interestRepo repos.UserInterestRepo
	jobAPI       jobapi.Client
}

func NewJobService(
	db *gorm.DB,
	log *logger.Logger,
	categoryRepo repos.JobCategoryRepo,
	positionRepo repos.JobPositionRepo,
	postingRepo repos.JobPostingRepo,
	interestRepo repos.UserInterestRepo,
	jobAPI jobapi.Client,
) JobService {
	serviceLog := log.With("service", "JobService")
	return &jobService{
		db:           db,
		log:          serviceLog,
		categoryRepo: categoryRepo,
		positionRepo: positionRepo,
		postingRepo:  postingRepo,
		interestRepo: interestRepo,
		jobAPI:       jobAPI,
	}
}

func (s *jobService) GetCategories(ctx context.Context) ([]*types.JobCategory, error) {
	categories, err := s.categoryRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list job categories: %w", err))
	}
	return categories, nil
}

func (s *jobService) GetPositions(ctx context.Context) ([]*types.JobPosition, error) {
	positions, err := s.positionRepo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list job positions: %w", err))
	}
	return positions, nil
}

func (s *jobService) GetInterestedCategories(ctx context.Context, userID uint) ([]*types.UserInterestedCategory, error) {
	edges, err := s.interestRepo.ListCategoriesByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested categories: %w", err))
	}
	return edges, nil
}

func (s *jobService) GetInterestedPositions(ctx context.Context, userID uint) ([]*types.UserInterestedPosition, error) {
	edges, err := s.interestRepo.ListPositionsByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested positions: %w", err))
	}
	return edges, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *jobService) AddInterestedCategories(ctx context.Context, userID uint, categoryIDs []uint) ([]*types.UserInterestedCategory, error) {
	categoryIDs = dedupeIDs(categoryIDs)
	if len(categoryIDs) == 0 {
		return nil, apierr.Validation("category ids are required")
	}

	known, err := s.categoryRepo.GetByIDs(ctx, nil, categoryIDs)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to resolve categories: %w", err))
	}
	if len(known) != len(categoryIDs) {
		return nil, apierr.Unprocessable("one or more category ids do not exist")
	}

	existing, err := s.interestRepo.ListCategoriesByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested categories: %w", err))
	}
	linked := make(map[uint]struct{}, len(existing))
	for _, edge := range existing {
		linked[edge.CategoryID] = struct{}{}
	}

	var edges []*types.UserInterestedCategory
	for _, id := range categoryIDs {
		if _, ok := linked[id]; ok {
			continue
		}
		edges = append(edges, &types.UserInterestedCategory{UserID: userID, CategoryID: id})
	}
	if len(edges) > 0 {
		if _, err := s.interestRepo.CreateCategories(ctx, nil, edges); err != nil {
			if !isUniqueViolation(err) {
				return nil, apierr.Upstream(fmt.Errorf("failed to add interested categories: %w", err))
			}
			// Concurrent add linked the same edge first; the list below is authoritative.
		}
	}

	return s.GetInterestedCategories(ctx, userID)
}

func (s *jobService) AddInterestedPositions(ctx context.Context, userID uint, positionIDs []uint) ([]*types.UserInterestedPosition, error) {
	positionIDs = dedupeIDs(positionIDs)
	if len(positionIDs) == 0 {
		return nil, apierr.Validation("position ids are required")
	}

	known, err := s.positionRepo.GetByIDs(ctx, nil, positionIDs)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to resolve positions: %w", err))
	}
	if len(known) != len(positionIDs) {
		return nil, apierr.Unprocessable("one or more position ids do not exist")
	}

	existing, err := s.interestRepo.ListPositionsByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested positions: %w", err))
	}
	linked := make(map[uint]struct{}, len(existing))
	for _, edge := range existing {
		linked[edge.PositionID] = struct{}{}
	}

	var edges []*types.UserInterestedPosition
	for _, id := range positionIDs {
		if _, ok := linked[id]; ok {
			continue
		}
		edges = append(edges, &types.UserInterestedPosition{UserID: userID, PositionID: id})
	}
	if len(edges) > 0 {
		if _, err := s.interestRepo.CreatePositions(ctx, nil, edges); err != nil {
			if !isUniqueViolation(err) {
				return nil, apierr.Upstream(fmt.Errorf("failed to add interested positions: %w", err))
			}
		}
	}

	return s.GetInterestedPositions(ctx, userID)
}

func (s *jobService) DeleteInterestedCategories(ctx context.Context, userID uint, categoryIDs []uint) error {
	categoryIDs = dedupeIDs(categoryIDs)
	if len(categoryIDs) == 0 {
		return apierr.Validation("category ids are required")
	}
	if _, err := s.interestRepo.DeleteCategories(ctx, nil, userID, categoryIDs); err != nil {
		return apierr.Upstream(fmt.Errorf("failed to delete interested categories: %w", err))
	}
	return nil
}

func (s *jobService) DeleteInterestedPositions(ctx context.Context, userID uint, positionIDs []uint) error {
	positionIDs = dedupeIDs(positionIDs)
	if len(positionIDs) == 0 {
		return apierr.Validation("position ids are required")
	}
	if _, err := s.interestRepo.DeletePositions(ctx, nil, userID, positionIDs); err != nil {
		return apierr.Upstream(fmt.Errorf("failed to delete interested positions: %w", err))
	}
	return nil
}

// GetRecommendedJobs prefers postings matching the user's interested
// positions, then falls back to interested categories, then to the most
// recent postings overall. Anonymous callers get the recent list.
func (s *jobService) GetRecommendedJobs(ctx context.Context, userID uint, numOfRows int) ([]*types.JobPosting, error) {
	if numOfRows <= 0 {
		numOfRows = defaultRecommendedRows
	}
	if userID == 0 {
		postings, err := s.postingRepo.ListRecent(ctx, nil, numOfRows)
		if err != nil {
			return nil, apierr.Upstream(fmt.Errorf("failed to list recent postings: %w", err))
		}
		return postings, nil
	}

	positionEdges, err := s.interestRepo.ListPositionsByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested positions: %w", err))
	}
	if len(positionEdges) > 0 {
		positionIDs := make([]uint, 0, len(positionEdges))
		for _, edge := range positionEdges {
			positionIDs = append(positionIDs, edge.PositionID)
		}
		postings, err := s.postingRepo.ListRecentByPositionIDs(ctx, nil, positionIDs, numOfRows)
		if err != nil {
			return nil, apierr.Upstream(fmt.Errorf("failed to list postings by position: %w", err))
		}
		if len(postings) > 0 {
			return postings, nil
		}
	}

	categoryEdges, err := s.interestRepo.ListCategoriesByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list interested categories: %w", err))
	}
	if len(categoryEdges) > 0 {
		categoryIDs := make([]uint, 0, len(categoryEdges))
		for _, edge := range categoryEdges {
			categoryIDs = append(categoryIDs, edge.CategoryID)
		}
		postings, err := s.postingRepo.ListRecentByCategoryIDs(ctx, nil, categoryIDs, numOfRows)
		if err != nil {
			return nil, apierr.Upstream(fmt.Errorf("failed to list postings by category: %w", err))
		}
		if len(postings) > 0 {
			return postings, nil
		}
	}

	postings, err := s.postingRepo.ListRecent(ctx, nil, numOfRows)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list recent postings: %w", err))
	}
	return postings, nil
}

func parseDeadline(raw string) *time.Time {
	if len(raw) != 8 {
		return nil
	}
	parsed, err := time.Parse("20060102", raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func (s *jobService) SyncJobPostings(ctx context.Context, numOfRows int) (*SyncResult, error) {
	if s.jobAPI == nil {
		return nil, apierr.Upstream(fmt.Errorf("job posting source is not configured"))
	}
	if numOfRows <= 0 {
		numOfRows = 100
	}

	items, err := s.jobAPI.FetchPostings(ctx, numOfRows)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to fetch postings: %w", err))
	}

	result := &SyncResult{Fetched: len(items)}
	for _, item := range items {
		if item.CompanyName == "" || item.Title == "" {
			result.Skipped++
			continue
		}

		posting := &types.JobPosting{
			CompanyName:    item.CompanyName,
			Title:          item.Title,
			Description:    item.Description,
			Location:       item.Location,
			EmploymentType: item.EmploymentType,
			Deadline:       parseDeadline(item.Deadline),
			SourceURL:      item.SourceURL,
		}

		if item.CategoryName != "" {
			category, err := s.categoryRepo.GetByName(ctx, nil, item.CategoryName)
			if err != nil {
				s.log.Warn("Failed to resolve posting category", "category", item.CategoryName, "error", err)
			} else if category != nil {
				posting.CategoryID = category.ID
			}
		}
		if item.PositionName != "" {
			position, err := s.positionRepo.GetByName(ctx, nil, item.PositionName)
			if err != nil {
				s.log.Warn("Failed to resolve posting position", "position", item.PositionName, "error", err)
			} else if position != nil {
				posting.PositionID = position.ID
				if posting.CategoryID == 0 {
					posting.CategoryID = position.CategoryID
				}
			}
		}

		if _, err := s.postingRepo.Upsert(ctx, nil, posting); err != nil {
			s.log.Warn("Failed to store posting", "company", item.CompanyName, "title", item.Title, "error", err)
			result.Skipped++
			continue
		}
		result.Stored++
	}

	s.log.Info("Job posting sync finished", "fetched", result.Fetched, "stored", result.Stored, "skipped", result.Skipped)
	return result, nil
}
