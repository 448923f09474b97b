package services

import (
	"context"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobdam/jobdam-backend/internal/clients/solar"
	"github.com/jobdam/jobdam-backend/internal/db"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return gormDB
}

func newTestLogger() *logger.Logger {
	return logger.NewNop()
}

func createTestUser(t *testing.T, gormDB *gorm.DB, name string) *types.User {
	t.Helper()
	user := &types.User{Name: name, Password: "hashed", RealName: "테스트"}
	if err := gormDB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", name, err)
	}
	return user
}

// createTestCatalog installs one category with one position and returns both.
func createTestCatalog(t *testing.T, gormDB *gorm.DB) (*types.JobCategory, *types.JobPosition) {
	t.Helper()
	category := &types.JobCategory{Name: "개발", Description: "개발 직군"}
	if err := gormDB.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	position := &types.JobPosition{CategoryID: category.ID, Name: "백엔드 개발자", Description: "서버 개발"}
	if err := gormDB.Create(position).Error; err != nil {
		t.Fatalf("failed to create position: %v", err)
	}
	return category, position
}

func linkInterestedPosition(t *testing.T, gormDB *gorm.DB, userID, positionID uint) {
	t.Helper()
	edge := &types.UserInterestedPosition{UserID: userID, PositionID: positionID}
	if err := gormDB.Create(edge).Error; err != nil {
		t.Fatalf("failed to link interest: %v", err)
	}
}

// fakeSolarClient replays a canned reply and records how often it was hit.
type fakeSolarClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeSolarClient) CreateChatCompletion(ctx context.Context, messages []solar.Message) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeGenerator satisfies ContentGenerator without touching the network.
type fakeGenerator struct {
	keyword      *GeneratedKeyword
	report       *GeneratedReport
	routines     []string
	err          error
	keywordCalls int
	reportCalls  int
	routineCalls int
}

func (f *fakeGenerator) GenerateDailyKeyword(ctx context.Context, pos PositionContext) (*GeneratedKeyword, error) {
	f.keywordCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.keyword != nil {
		return f.keyword, nil
	}
	return &GeneratedKeyword{Keyword: "테스트 키워드", Description: "테스트 설명"}, nil
}

func (f *fakeGenerator) GenerateDailyReport(ctx context.Context, pos PositionContext) (*GeneratedReport, error) {
	f.reportCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return &GeneratedReport{Title: "테스트 제목", Summary: "테스트 요약", Content: "테스트 내용"}, nil
}

func (f *fakeGenerator) GenerateCareerRoutines(ctx context.Context, pos PositionContext, stressLevel types.StressLevel) ([]string, error) {
	f.routineCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.routines != nil {
		return f.routines, nil
	}
	return []string{fmt.Sprintf("✨ \"%s 루틴\"", pos.PositionName)}, nil
}
