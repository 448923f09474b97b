package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jobdam/jobdam-backend/internal/apierr"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/types"
)

func TestAttend(t *testing.T) {
	gormDB := newTestDB(t)
	log := newTestLogger()
	attendanceRepo := repos.NewAttendanceRepo(gormDB, log)
	interestRepo := repos.NewUserInterestRepo(gormDB, log)
	svc := NewAttendService(gormDB, log, attendanceRepo, interestRepo, &fakeGenerator{})
	impl := svc.(*attendService)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	impl.now = func() time.Time { return base }

	attendance, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressMiddle, Mood: "좋음"})
	if err != nil {
		t.Fatalf("Attend failed: %v", err)
	}
	if attendance.StressLevel != types.StressMiddle {
		t.Fatalf("stressLevel = %q", attendance.StressLevel)
	}

	t.Run("second check-in same day not acceptable", func(t *testing.T) {
		impl.now = func() time.Time { return base.Add(5 * time.Hour) }
		_, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressLow})
		if apierr.StatusOf(err) != http.StatusNotAcceptable {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusNotAcceptable)
		}
	})

	t.Run("next day allowed", func(t *testing.T) {
		impl.now = func() time.Time { return base.AddDate(0, 0, 1) }
		if _, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressHigh}); err != nil {
			t.Fatalf("Attend on next day failed: %v", err)
		}
	})

	t.Run("invalid stress level", func(t *testing.T) {
		_, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressLevel("extreme")})
		if apierr.StatusOf(err) != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusBadRequest)
		}
	})
}

func TestAttendDuplicateInsertBlocked(t *testing.T) {
	gormDB := newTestDB(t)
	log := newTestLogger()
	attendanceRepo := repos.NewAttendanceRepo(gormDB, log)
	interestRepo := repos.NewUserInterestRepo(gormDB, log)
	svc := NewAttendService(gormDB, log, attendanceRepo, interestRepo, &fakeGenerator{})
	impl := svc.(*attendService)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	impl.now = func() time.Time { return base }

	t.Run("store rejects a second row for the same day", func(t *testing.T) {
		user := createTestUser(t, gormDB, "jobseeker")
		if _, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressLow}); err != nil {
			t.Fatalf("Attend failed: %v", err)
		}
		_, err := attendanceRepo.Create(ctx, nil, &types.DailyAttendance{
			Date:        base.Format("2006-01-02"),
			UserID:      user.ID,
			CheckinDate: base.Add(time.Hour),
			StressLevel: types.StressHigh,
		})
		if !isUniqueViolation(err) {
			t.Fatalf("err = %v, want unique violation for a second same-day row", err)
		}
	})

	t.Run("insert losing the race maps to not acceptable", func(t *testing.T) {
		user := createTestUser(t, gormDB, "racer")
		// A row stored under today's date with a skewed checkin timestamp
		// slips past the window read, like a concurrent winner committing
		// between the check and the insert.
		if _, err := attendanceRepo.Create(ctx, nil, &types.DailyAttendance{
			Date:        base.Format("2006-01-02"),
			UserID:      user.ID,
			CheckinDate: base.AddDate(0, 0, -1),
			StressLevel: types.StressLow,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		_, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressMiddle})
		if apierr.StatusOf(err) != http.StatusNotAcceptable {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusNotAcceptable)
		}
	})
}

func TestCheckTodayAndMonth(t *testing.T) {
	gormDB := newTestDB(t)
	log := newTestLogger()
	attendanceRepo := repos.NewAttendanceRepo(gormDB, log)
	interestRepo := repos.NewUserInterestRepo(gormDB, log)
	svc := NewAttendService(gormDB, log, attendanceRepo, interestRepo, &fakeGenerator{})
	impl := svc.(*attendService)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")
	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.Local)

	// Check-ins on the 10th and 11th, plus one in July.
	for _, day := range []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, -1, 0)} {
		day := day
		impl.now = func() time.Time { return day }
		if _, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressLow}); err != nil {
			t.Fatalf("Attend failed for %v: %v", day, err)
		}
	}

	impl.now = func() time.Time { return base }
	today, err := svc.CheckToday(ctx, user.ID)
	if err != nil {
		t.Fatalf("CheckToday failed: %v", err)
	}
	if today == nil {
		t.Fatalf("expected today's attendance")
	}

	impl.now = func() time.Time { return base.AddDate(0, 0, 5) }
	missing, err := svc.CheckToday(ctx, user.ID)
	if err != nil {
		t.Fatalf("CheckToday failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected no attendance on an empty day, got %+v", missing)
	}

	month, err := svc.CheckMonth(ctx, user.ID)
	if err != nil {
		t.Fatalf("CheckMonth failed: %v", err)
	}
	if len(month) != 2 {
		t.Fatalf("month count = %d, want 2 (July check-in excluded)", len(month))
	}
}

func TestGetRoutineRecommendations(t *testing.T) {
	gormDB := newTestDB(t)
	log := newTestLogger()
	attendanceRepo := repos.NewAttendanceRepo(gormDB, log)
	interestRepo := repos.NewUserInterestRepo(gormDB, log)
	gen := &fakeGenerator{routines: []string{"🧘 \"명상\"", "📚 \"독서\""}}
	svc := NewAttendService(gormDB, log, attendanceRepo, interestRepo, gen)
	impl := svc.(*attendService)
	ctx := context.Background()

	user := createTestUser(t, gormDB, "jobseeker")
	_, position := createTestCatalog(t, gormDB)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	impl.now = func() time.Time { return base }

	t.Run("requires a check-in first", func(t *testing.T) {
		_, err := svc.GetRoutineRecommendations(ctx, user.ID)
		if apierr.StatusOf(err) != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusNotFound)
		}
	})

	if _, err := svc.Attend(ctx, user.ID, AttendRequest{StressLevel: types.StressHigh}); err != nil {
		t.Fatalf("Attend failed: %v", err)
	}

	t.Run("requires an interested position", func(t *testing.T) {
		_, err := svc.GetRoutineRecommendations(ctx, user.ID)
		if apierr.StatusOf(err) != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", apierr.StatusOf(err), http.StatusNotFound)
		}
	})

	linkInterestedPosition(t, gormDB, user.ID, position.ID)

	recommendation, err := svc.GetRoutineRecommendations(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetRoutineRecommendations failed: %v", err)
	}
	if recommendation.Date != "2026-08-30" {
		t.Fatalf("date = %q", recommendation.Date)
	}
	if recommendation.StressLevel != types.StressHigh {
		t.Fatalf("stressLevel = %q", recommendation.StressLevel)
	}
	if recommendation.Position.Name != "백엔드 개발자" {
		t.Fatalf("position = %+v", recommendation.Position)
	}
	if len(recommendation.Routines) != 2 {
		t.Fatalf("routines = %v", recommendation.Routines)
	}
	if gen.routineCalls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.routineCalls)
	}
}
