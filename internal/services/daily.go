package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/clients/rediscache"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type DailyKeywordResponse struct {
	Date        string          `json:"date"`
	Position    PositionSummary `json:"position"`
	Keyword     string          `json:"keyword"`
	Description string          `json:"description"`
}

type DailyReportResponse struct {
	Date     string          `json:"date"`
	Position PositionSummary `json:"position"`
	Title    string          `json:"title"`
	Summary  string          `json:"summary"`
	Content  string          `json:"content"`
}

// DailyService memoizes one generated keyword and one report per user per
// calendar day. The (date, user_id) unique index is the arbiter under
// concurrent misses: a lost insert re-reads the winner's row.
type DailyService interface {
	GetTodayKeyword(ctx context.Context, userID uint) (*DailyKeywordResponse, error)
	GetTodayReport(ctx context.Context, userID uint) (*DailyReportResponse, error)
}

type dailyService struct {
	db           *gorm.DB
	log          *logger.Logger
	keywordRepo  repos.DailyKeywordRepo
	reportRepo   repos.DailyReportRepo
	interestRepo repos.UserInterestRepo
	generator    ContentGenerator
	cache        rediscache.Cache
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewDailyService(
	db *gorm.DB,
	log *logger.Logger,
	keywordRepo repos.DailyKeywordRepo,
	reportRepo repos.DailyReportRepo,
	interestRepo repos.UserInterestRepo,
	generator ContentGenerator,
	cache rediscache.Cache,
	cacheTTL time.Duration,
) DailyService {
	serviceLog := log.With("service", "DailyService")
	return &dailyService{
		db:           db,
		log:          serviceLog,
		keywordRepo:  keywordRepo,
		reportRepo:   reportRepo,
		interestRepo: interestRepo,
		generator:    generator,
		cache:        cache,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

func (s *dailyService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *dailyService) primaryPosition(ctx context.Context, userID uint) (*types.UserInterestedPosition, error) {
	interest, err := s.interestRepo.GetPrimaryPosition(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load interested position: %w", err))
	}
	if interest == nil || interest.Position == nil || interest.Position.Category == nil {
		return nil, apierr.NotFound("no interested position configured")
	}
	return interest, nil
}

func (s *dailyService) GetTodayKeyword(ctx context.Context, userID uint) (*DailyKeywordResponse, error) {
	today := s.today()
	cacheKey := fmt.Sprintf("daily:kw:%s:%d", today, userID)

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached DailyKeywordResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	interest, err := s.primaryPosition(ctx, userID)
	if err != nil {
		return nil, err
	}
	position := interest.Position
	category := position.Category

	keyword, err := s.keywordRepo.GetByDateAndUserID(ctx, nil, today, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to look up daily keyword: %w", err))
	}

	if keyword == nil {
		s.log.Info("Generating new daily keyword", "userID", userID, "position", position.Name, "date", today)

		generated, genErr := s.generator.GenerateDailyKeyword(ctx, PositionContext{
			PositionName:        position.Name,
			CategoryName:        category.Name,
			PositionDescription: position.Description,
			CategoryDescription: category.Description,
		})
		if genErr != nil {
			return nil, genErr
		}

		keyword, err = s.keywordRepo.Create(ctx, nil, &types.DailyKeyword{
			Date:        today,
			UserID:      userID,
			PositionID:  position.ID,
			Keyword:     generated.Keyword,
			Description: generated.Description,
		})
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, apierr.Upstream(fmt.Errorf("failed to store daily keyword: %w", err))
			}
			// Lost a concurrent insert; the winner's row is the answer.
			keyword, err = s.keywordRepo.GetByDateAndUserID(ctx, nil, today, userID)
			if err != nil || keyword == nil {
				return nil, apierr.Upstream(fmt.Errorf("failed to re-read daily keyword: %w", err))
			}
		}
	}

	response := &DailyKeywordResponse{
		Date: keyword.Date,
		Position: PositionSummary{
			ID:       position.ID,
			Name:     position.Name,
			Category: category.Name,
		},
		Keyword:     keyword.Keyword,
		Description: keyword.Description,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
				s.log.Warn("Failed to cache daily keyword", "error", err)
			}
		}
	}
	return response, nil
}

func (s *dailyService) GetTodayReport(ctx context.Context, userID uint) (*DailyReportResponse, error) {
	today := s.today()
	cacheKey := fmt.Sprintf("daily:rp:%s:%d", today, userID)

	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached DailyReportResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	interest, err := s.primaryPosition(ctx, userID)
	if err != nil {
		return nil, err
	}
	position := interest.Position
	category := position.Category

	report, err := s.reportRepo.GetByDateAndUserID(ctx, nil, today, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to look up daily report: %w", err))
	}

	if report == nil {
		s.log.Info("Generating new daily report", "userID", userID, "position", position.Name, "date", today)

		generated, genErr := s.generator.GenerateDailyReport(ctx, PositionContext{
			PositionName:        position.Name,
			CategoryName:        category.Name,
			PositionDescription: position.Description,
			CategoryDescription: category.Description,
		})
		if genErr != nil {
			return nil, genErr
		}

		report, err = s.reportRepo.Create(ctx, nil, &types.DailyReport{
			Date:       today,
			UserID:     userID,
			PositionID: position.ID,
			Title:      generated.Title,
			Summary:    generated.Summary,
			Content:    generated.Content,
		})
		if err != nil {
			if !isUniqueViolation(err) {
				return nil, apierr.Upstream(fmt.Errorf("failed to store daily report: %w", err))
			}
			report, err = s.reportRepo.GetByDateAndUserID(ctx, nil, today, userID)
			if err != nil || report == nil {
				return nil, apierr.Upstream(fmt.Errorf("failed to re-read daily report: %w", err))
			}
		}
	}

	response := &DailyReportResponse{
		Date: report.Date,
		Position: PositionSummary{
			ID:       position.ID,
			Name:     position.Name,
			Category: category.Name,
		},
		Title:   report.Title,
		Summary: report.Summary,
		Content: report.Content,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(raw), s.cacheTTL); err != nil {
				s.log.Warn("Failed to cache daily report", "error", err)
			}
		}
	}
	return response, nil
}
