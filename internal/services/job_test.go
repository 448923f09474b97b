package services

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/clients/jobapi"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

type fakeJobAPI struct {
	postings []jobapi.Posting
	err      error
	calls    int
}

func (f *fakeJobAPI) FetchPostings(ctx context.Context, numOfRows int) ([]jobapi.Posting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.postings, nil
}

func newJobService(t *testing.T, gormDB *gorm.DB, api jobapi.Client) JobService {
	t.Helper()
	log := newTestLogger()
	return NewJobService(
		gormDB, log,
		repos.NewJobCategoryRepo(gormDB, log),
		repos.NewJobPositionRepo(gormDB, log),
		repos.NewJobPostingRepo(gormDB, log),
		repos.NewUserInterestRepo(gormDB, log),
		api,
	)
}

func TestAddInterestedPositions(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newJobService(t, gormDB, nil)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")
	_, position := createTestCatalog(t, gormDB)

	t.Run("unknown id unprocessable", func(t *testing.T) {
		_, err := svc.AddInterestedPositions(ctx, user.ID, []uint{position.ID, 999})
		if apierr.StatusOf(err) != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusUnprocessableEntity)
		}
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := svc.AddInterestedPositions(ctx, user.ID, nil)
		if apierr.StatusOf(err) != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusBadRequest)
		}
	})

	edges, err := svc.AddInterestedPositions(ctx, user.ID, []uint{position.ID})
	if err != nil {
		t.Fatalf("AddInterestedPositions failed: %v", err)
	}
	if len(edges) != 1 || edges[0].PositionID != position.ID {
		t.Fatalf("edges = %+v", edges)
	}

	t.Run("re-adding is idempotent", func(t *testing.T) {
		edges, err := svc.AddInterestedPositions(ctx, user.ID, []uint{position.ID, position.ID})
		if err != nil {
			t.Fatalf("AddInterestedPositions failed: %v", err)
		}
		if len(edges) != 1 {
			t.Fatalf("edges = %+v, want a single link", edges)
		}
	})

	t.Run("delete removes the link", func(t *testing.T) {
		if err := svc.DeleteInterestedPositions(ctx, user.ID, []uint{position.ID}); err != nil {
			t.Fatalf("DeleteInterestedPositions failed: %v", err)
		}
		edges, err := svc.GetInterestedPositions(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetInterestedPositions failed: %v", err)
		}
		if len(edges) != 0 {
			t.Fatalf("edges = %+v, want none", edges)
		}
	})
}

func TestAddInterestedCategories(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newJobService(t, gormDB, nil)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")
	category, _ := createTestCatalog(t, gormDB)

	edges, err := svc.AddInterestedCategories(ctx, user.ID, []uint{category.ID})
	if err != nil {
		t.Fatalf("AddInterestedCategories failed: %v", err)
	}
	if len(edges) != 1 || edges[0].CategoryID != category.ID {
		t.Fatalf("edges = %+v", edges)
	}

	_, err = svc.AddInterestedCategories(ctx, user.ID, []uint{42})
	if apierr.StatusOf(err) != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusUnprocessableEntity)
	}
}

func seedPostingRow(t *testing.T, gormDB *gorm.DB, posting *types.JobPosting) {
	t.Helper()
	if err := gormDB.Create(posting).Error; err != nil {
		t.Fatalf("failed to seed posting: %v", err)
	}
}

func TestGetRecommendedJobs(t *testing.T) {
	gormDB := newTestDB(t)
	svc := newJobService(t, gormDB, nil)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")
	category, position := createTestCatalog(t, gormDB)

	otherCategory := &types.JobCategory{Name: "디자인", Description: "디자인 직군"}
	if err := gormDB.Create(otherCategory).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	otherPosition := &types.JobPosition{CategoryID: otherCategory.ID, Name: "UX 디자이너"}
	if err := gormDB.Create(otherPosition).Error; err != nil {
		t.Fatalf("failed to create position: %v", err)
	}

	seedPostingRow(t, gormDB, &types.JobPosting{
		CategoryID: category.ID, PositionID: position.ID,
		CompanyName: "네이버", Title: "백엔드 채용",
	})
	seedPostingRow(t, gormDB, &types.JobPosting{
		CategoryID: otherCategory.ID, PositionID: otherPosition.ID,
		CompanyName: "카카오", Title: "디자이너 채용",
	})

	t.Run("anonymous gets recent list", func(t *testing.T) {
		postings, err := svc.GetRecommendedJobs(ctx, 0, 0)
		if err != nil {
			t.Fatalf("GetRecommendedJobs failed: %v", err)
		}
		if len(postings) != 2 {
			t.Fatalf("postings = %d, want 2", len(postings))
		}
	})

	t.Run("numOfRows caps the result", func(t *testing.T) {
		postings, err := svc.GetRecommendedJobs(ctx, 0, 1)
		if err != nil {
			t.Fatalf("GetRecommendedJobs failed: %v", err)
		}
		if len(postings) != 1 {
			t.Fatalf("postings = %d, want 1", len(postings))
		}
	})

	t.Run("no interests falls back to recent", func(t *testing.T) {
		postings, err := svc.GetRecommendedJobs(ctx, user.ID, 0)
		if err != nil {
			t.Fatalf("GetRecommendedJobs failed: %v", err)
		}
		if len(postings) != 2 {
			t.Fatalf("postings = %d, want 2", len(postings))
		}
	})

	t.Run("position interest filters", func(t *testing.T) {
		if _, err := svc.AddInterestedPositions(ctx, user.ID, []uint{position.ID}); err != nil {
			t.Fatalf("AddInterestedPositions failed: %v", err)
		}
		postings, err := svc.GetRecommendedJobs(ctx, user.ID, 0)
		if err != nil {
			t.Fatalf("GetRecommendedJobs failed: %v", err)
		}
		if len(postings) != 1 || postings[0].CompanyName != "네이버" {
			t.Fatalf("postings = %+v", postings)
		}
	})

	t.Run("category fallback when positions match nothing", func(t *testing.T) {
		other := createTestUser(t, gormDB, "another")
		emptyPosition := &types.JobPosition{CategoryID: otherCategory.ID, Name: "BX 디자이너"}
		if err := gormDB.Create(emptyPosition).Error; err != nil {
			t.Fatalf("failed to create position: %v", err)
		}
		if _, err := svc.AddInterestedPositions(ctx, other.ID, []uint{emptyPosition.ID}); err != nil {
			t.Fatalf("AddInterestedPositions failed: %v", err)
		}
		if _, err := svc.AddInterestedCategories(ctx, other.ID, []uint{otherCategory.ID}); err != nil {
			t.Fatalf("AddInterestedCategories failed: %v", err)
		}
		postings, err := svc.GetRecommendedJobs(ctx, other.ID, 0)
		if err != nil {
			t.Fatalf("GetRecommendedJobs failed: %v", err)
		}
		if len(postings) != 1 || postings[0].CompanyName != "카카오" {
			t.Fatalf("postings = %+v", postings)
		}
	})
}

func TestSyncJobPostings(t *testing.T) {
	gormDB := newTestDB(t)
	createTestCatalog(t, gormDB)

	api := &fakeJobAPI{postings: []jobapi.Posting{
		{
			CompanyName:    "토스",
			Title:          "Kotlin 백엔드 개발자",
			Description:    "결제 플랫폼",
			Location:       "서울 강남구",
			EmploymentType: "정규직",
			Deadline:       "20261231",
			SourceURL:      "https://toss.im/career",
			CategoryName:   "개발",
			PositionName:   "백엔드 개발자",
		},
		{CompanyName: "", Title: "이름 없는 공고"},
	}}
	svc := newJobService(t, gormDB, api)
	ctx := context.Background()

	result, err := svc.SyncJobPostings(ctx, 10)
	if err != nil {
		t.Fatalf("SyncJobPostings failed: %v", err)
	}
	if result.Fetched != 2 || result.Stored != 1 || result.Skipped != 1 {
		t.Fatalf("result = %+v", result)
	}

	var stored types.JobPosting
	if err := gormDB.Where("company_name = ? AND title = ?", "토스", "Kotlin 백엔드 개발자").First(&stored).Error; err != nil {
		t.Fatalf("stored posting missing: %v", err)
	}
	if stored.Deadline == nil || stored.Deadline.Format("2006-01-02") != "2026-12-31" {
		t.Fatalf("deadline = %v", stored.Deadline)
	}
	if stored.PositionID == 0 || stored.CategoryID == 0 {
		t.Fatalf("posting should resolve category and position, got %+v", stored)
	}

	t.Run("re-sync updates in place", func(t *testing.T) {
		api.postings[0].Description = "결제 플랫폼 개편"
		result, err := svc.SyncJobPostings(ctx, 10)
		if err != nil {
			t.Fatalf("SyncJobPostings failed: %v", err)
		}
		if result.Stored != 1 {
			t.Fatalf("result = %+v", result)
		}
		var count int64
		if err := gormDB.Model(&types.JobPosting{}).Count(&count).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("posting count = %d, want 1 after upsert", count)
		}
	})

	t.Run("missing client upstream error", func(t *testing.T) {
		svcNoAPI := newJobService(t, gormDB, nil)
		_, err := svcNoAPI.SyncJobPostings(ctx, 10)
		if apierr.StatusOf(err) != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusInternalServerError)
		}
	})
}
