package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobdam/jobdam-backend/internal/db"
	"github.com/jobdam/jobdam-backend/internal/handlers"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/middleware"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/services"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type stubGenerator struct{}

func (stubGenerator) GenerateDailyKeyword(ctx context.Context, pos services.PositionContext) (*services.GeneratedKeyword, error) {
	return &services.GeneratedKeyword{Keyword: "포트폴리오", Description: "설명"}, nil
}

func (stubGenerator) GenerateDailyReport(ctx context.Context, pos services.PositionContext) (*services.GeneratedReport, error) {
	return &services.GeneratedReport{Title: "리포트", Summary: "요약", Content: "내용"}, nil
}

func (stubGenerator) GenerateCareerRoutines(ctx context.Context, pos services.PositionContext, stressLevel types.StressLevel) ([]string, error) {
	return []string{"🧘 \"명상\""}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log := logger.NewNop()
	userRepo := repos.NewUserRepo(gormDB, log)
	userTokenRepo := repos.NewUserTokenRepo(gormDB, log)
	attendanceRepo := repos.NewAttendanceRepo(gormDB, log)
	categoryRepo := repos.NewJobCategoryRepo(gormDB, log)
	positionRepo := repos.NewJobPositionRepo(gormDB, log)
	postingRepo := repos.NewJobPostingRepo(gormDB, log)
	interestRepo := repos.NewUserInterestRepo(gormDB, log)
	keywordRepo := repos.NewDailyKeywordRepo(gormDB, log)
	reportRepo := repos.NewDailyReportRepo(gormDB, log)
	postRepo := repos.NewCommunityPostRepo(gormDB, log)
	commentRepo := repos.NewCommunityCommentRepo(gormDB, log)

	generator := stubGenerator{}
	authService := services.NewAuthService(gormDB, log, userRepo, userTokenRepo, "router-test-secret", 30*time.Minute, 24*time.Hour)
	attendService := services.NewAttendService(gormDB, log, attendanceRepo, interestRepo, generator)
	dailyService := services.NewDailyService(gormDB, log, keywordRepo, reportRepo, interestRepo, generator, nil, 0)
	jobService := services.NewJobService(gormDB, log, categoryRepo, positionRepo, postingRepo, interestRepo, nil)
	communityService := services.NewCommunityService(gormDB, log, postRepo, commentRepo)

	router := NewRouter(RouterConfig{
		Log:              log,
		AuthMiddleware:   middleware.NewAuthMiddleware(log, authService),
		AuthHandler:      handlers.NewAuthHandler(authService),
		AttendHandler:    handlers.NewAttendHandler(attendService),
		DailyHandler:     handlers.NewDailyHandler(dailyService),
		JobHandler:       handlers.NewJobHandler(jobService),
		CommunityHandler: handlers.NewCommunityHandler(communityService),
		Healthcheck:      handlers.NewHealthcheckHandler(),
	})
	return router, gormDB
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerAndLogin(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"name": name, "password": "password", "realName": "테스트",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"name": name, "password": "password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	authHeader := rec.Header().Get("Authorization")
	if len(authHeader) < 8 {
		t.Fatalf("missing Authorization header on login")
	}
	return authHeader[7:]
}

func TestRecommendedRoute(t *testing.T) {
	router, gormDB := newTestRouter(t)

	category := &types.JobCategory{Name: "개발", Description: "개발 직군"}
	if err := gormDB.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	position := &types.JobPosition{CategoryID: category.ID, Name: "백엔드 개발자"}
	if err := gormDB.Create(position).Error; err != nil {
		t.Fatalf("failed to create position: %v", err)
	}
	for i := 0; i < 3; i++ {
		posting := &types.JobPosting{
			CategoryID: category.ID, PositionID: position.ID,
			CompanyName: "네이버", Title: fmt.Sprintf("백엔드 채용 %d", i),
		}
		if err := gormDB.Create(posting).Error; err != nil {
			t.Fatalf("failed to create posting: %v", err)
		}
	}

	decodePostings := func(rec *httptest.ResponseRecorder) []types.JobPosting {
		var body struct {
			Postings []types.JobPosting `json:"postings"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		return body.Postings
	}

	t.Run("works without a token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/job/recommended", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if got := decodePostings(rec); len(got) != 3 {
			t.Fatalf("postings = %d, want 3", len(got))
		}
	})

	t.Run("numOfRows caps the result", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/job/recommended?numOfRows=1", "", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if got := decodePostings(rec); len(got) != 1 {
			t.Fatalf("postings = %d, want 1", len(got))
		}
	})

	t.Run("token personalizes through optional auth", func(t *testing.T) {
		token := registerAndLogin(t, router, "jobseeker")
		rec := doJSON(t, router, http.MethodPost, "/job/positions/interest", token, gin.H{
			"Ids": []uint{position.ID},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("interest status = %d: %s", rec.Code, rec.Body.String())
		}
		rec = doJSON(t, router, http.MethodGet, "/job/recommended", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		if got := decodePostings(rec); len(got) != 3 {
			t.Fatalf("postings = %d, want 3", len(got))
		}
	})
}

func TestInterestRouteBodyKey(t *testing.T) {
	router, gormDB := newTestRouter(t)
	token := registerAndLogin(t, router, "jobseeker")

	category := &types.JobCategory{Name: "개발", Description: "개발 직군"}
	if err := gormDB.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	rec := doJSON(t, router, http.MethodPost, "/job/categories/interest", token, gin.H{
		"Ids": []uint{category.ID},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/job/categories/interest", token, gin.H{
		"Ids": []uint{category.ID},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCommunityUpdateVerbs(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerAndLogin(t, router, "writer")

	rec := doJSON(t, router, http.MethodPost, "/community/posts", token, gin.H{
		"title": "면접 후기", "content": "본문",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d: %s", rec.Code, rec.Body.String())
	}
	var post types.CommunityPost
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("failed to decode post: %v", err)
	}

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/community/posts/%d", post.ID), token, gin.H{
		"title": "면접 후기 (수정)",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update post status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/community/posts/%d/comments", post.ID), token, gin.H{
		"content": "축하드립니다",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment status = %d: %s", rec.Code, rec.Body.String())
	}
	var comment types.CommunityComment
	if err := json.Unmarshal(rec.Body.Bytes(), &comment); err != nil {
		t.Fatalf("failed to decode comment: %v", err)
	}

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/community/comments/%d", comment.ID), token, gin.H{
		"content": "축하드립니다!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update comment status = %d: %s", rec.Code, rec.Body.String())
	}
}
