package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type AttendRequest struct {
	StressLevel types.StressLevel `json:"stressLevel"`
	Mood        string            `json:"mood,omitempty"`
	Note        string            `json:"note,omitempty"`
}

type RoutineRecommendation struct {
	Date        string            `json:"date"`
	StressLevel types.StressLevel `json:"stressLevel"`
	Position    PositionSummary   `json:"position"`
	Routines    []string          `json:"routines"`
}

type PositionSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type AttendService interface {
	Attend(ctx context.Context, userID uint, req AttendRequest) (*types.DailyAttendance, error)
	CheckToday(ctx context.Context, userID uint) (*types.DailyAttendance, error)
	CheckMonth(ctx context.Context, userID uint) ([]*types.DailyAttendance, error)
	GetRoutineRecommendations(ctx context.Context, userID uint) (*RoutineRecommendation, error)
}

type attendService struct {
	db             *gorm.DB
	log            *logger.Logger
	attendanceRepo repos.AttendanceRepo
	interestRepo   repos.UserInterestRepo
	generator      ContentGenerator
	now            func() time.Time
}

func NewAttendService(
	db *gorm.DB,
	log *logger.Logger,
	attendanceRepo repos.AttendanceRepo,
	interestRepo repos.UserInterestRepo,
	generator ContentGenerator,
) AttendService {
	serviceLog := log.With("service", "AttendService")
	return &attendService{
		db:             db,
		log:            serviceLog,
		attendanceRepo: attendanceRepo,
		interestRepo:   interestRepo,
		generator:      generator,
		now:            time.Now,
	}
}

// dayWindow is the user's local calendar day [midnight, next midnight).
func dayWindow(at time.Time) (time.Time, time.Time) {
	from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return from, from.AddDate(0, 0, 1)
}

// monthWindow is [1st of the month, 1st of the next month).
func monthWindow(at time.Time) (time.Time, time.Time) {
	from := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
	return from, from.AddDate(0, 1, 0)
}

func (s *attendService) Attend(ctx context.Context, userID uint, req AttendRequest) (*types.DailyAttendance, error) {
	if !req.StressLevel.Valid() {
		return nil, apierr.Validation("invalid stress level %q", req.StressLevel)
	}

	now := s.now()
	from, to := dayWindow(now)

	existing, err := s.attendanceRepo.GetFirstInWindow(ctx, nil, userID, from, to)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to check today's attendance: %w", err))
	}
	if existing != nil {
		return nil, apierr.NotAcceptable("already checked in today")
	}

	attendance := &types.DailyAttendance{
		Date:        now.Format("2006-01-02"),
		UserID:      userID,
		CheckinDate: now,
		StressLevel: req.StressLevel,
		Mood:        req.Mood,
		Note:        req.Note,
	}
	created, err := s.attendanceRepo.Create(ctx, nil, attendance)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apierr.NotAcceptable("already checked in today")
		}
		return nil, apierr.Upstream(fmt.Errorf("failed to record attendance: %w", err))
	}

	s.log.Info("Attendance recorded", "userID", userID, "stressLevel", req.StressLevel)
	return created, nil
}

func (s *attendService) CheckToday(ctx context.Context, userID uint) (*types.DailyAttendance, error) {
	from, to := dayWindow(s.now())
	attendance, err := s.attendanceRepo.GetFirstInWindow(ctx, nil, userID, from, to)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to check today's attendance: %w", err))
	}
	return attendance, nil
}

func (s *attendService) CheckMonth(ctx context.Context, userID uint) ([]*types.DailyAttendance, error) {
	from, to := monthWindow(s.now())
	attendances, err := s.attendanceRepo.ListInWindow(ctx, nil, userID, from, to)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to list monthly attendance: %w", err))
	}
	return attendances, nil
}

// GetRoutineRecommendations needs both today's check-in (for the stress
// level) and a primary interested position (for the prompt context).
func (s *attendService) GetRoutineRecommendations(ctx context.Context, userID uint) (*RoutineRecommendation, error) {
	from, to := dayWindow(s.now())
	attendance, err := s.attendanceRepo.GetFirstInWindow(ctx, nil, userID, from, to)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to check today's attendance: %w", err))
	}
	if attendance == nil {
		return nil, apierr.NotFound("no attendance record for today, check in first")
	}

	interest, err := s.interestRepo.GetPrimaryPosition(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Upstream(fmt.Errorf("failed to load interested position: %w", err))
	}
	if interest == nil || interest.Position == nil || interest.Position.Category == nil {
		return nil, apierr.NotFound("no interested position configured")
	}

	position := interest.Position
	category := position.Category
	routines, err := s.generator.GenerateCareerRoutines(ctx, PositionContext{
		PositionName:        position.Name,
		CategoryName:        category.Name,
		PositionDescription: position.Description,
		CategoryDescription: category.Description,
	}, attendance.StressLevel)
	if err != nil {
		return nil, err
	}

	return &RoutineRecommendation{
		Date:        from.Format("2006-01-02"),
		StressLevel: attendance.StressLevel,
		Position: PositionSummary{
			ID:       position.ID,
			Name:     position.Name,
			Category: category.Name,
		},
		Routines: routines,
	}, nil
}
