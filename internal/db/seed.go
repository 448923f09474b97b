package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
	"github.com/jobdam/jobdam-backend/internal/utils"
)

type seedPosition struct {
	name        string
	description string
}

type seedCategory struct {
	name        string
	description string
	positions   []seedPosition
}

type seedPosting struct {
	positionName   string
	companyName    string
	title          string
	description    string
	location       string
	employmentType string
	deadline       string
	sourceURL      string
}

var seedCategories = []seedCategory{
	{
		name:        "개발",
		description: "개발 직군",
		positions: []seedPosition{
			{name: "PM", description: "프로젝트 매니저"},
			{name: "백엔드 개발자", description: "서비스의 백엔드를 개발합니다"},
			{name: "프론트엔드 개발자", description: "서비스의 프론트엔드를 개발합니다"},
		},
	},
}

var seedPostings = []seedPosting{
	{
		positionName:   "백엔드 개발자",
		companyName:    "네이버",
		title:          "Spring Boot 백엔드 개발자 채용",
		description:    "대규모 트래픽을 처리하는 백엔드 시스템을 개발할 Spring Boot 개발자를 모집합니다. MSA 아키텍처 경험자 우대합니다.",
		location:       "경기 성남시 분당구",
		employmentType: "정규직",
		deadline:       "2025-12-31",
		sourceURL:      "https://recruit.navercorp.com",
	},
	{
		positionName:   "백엔드 개발자",
		companyName:    "카카오",
		title:          "Node.js 백엔드 개발자 (신입/경력)",
		description:    "카카오톡 플랫폼의 백엔드 API 서버를 개발하고 운영합니다. Node.js, TypeScript 경험이 있으신 분을 찾습니다.",
		location:       "경기 성남시 분당구",
		employmentType: "정규직",
		deadline:       "2025-11-30",
		sourceURL:      "https://careers.kakao.com",
	},
	{
		positionName:   "백엔드 개발자",
		companyName:    "토스",
		title:          "Kotlin 백엔드 개발자 (결제 플랫폼)",
		description:    "안정적인 금융 서비스를 위한 백엔드 시스템을 개발합니다. Kotlin, Spring Boot 경험자 우대합니다.",
		location:       "서울 강남구",
		employmentType: "정규직",
		deadline:       "2025-12-20",
		sourceURL:      "https://toss.im/career",
	},
	{
		positionName:   "프론트엔드 개발자",
		companyName:    "네이버",
		title:          "React 프론트엔드 개발자 채용",
		description:    "네이버 메인 서비스의 프론트엔드를 개발합니다. React, TypeScript 경험 필수입니다.",
		location:       "경기 성남시 분당구",
		employmentType: "정규직",
		deadline:       "2025-12-31",
		sourceURL:      "https://recruit.navercorp.com",
	},
	{
		positionName:   "프론트엔드 개발자",
		companyName:    "라인",
		title:          "Vue.js 프론트엔드 개발자",
		description:    "LINE 메신저 웹 버전 개발에 참여합니다. Vue.js 3.x 경험자 우대합니다.",
		location:       "경기 성남시 분당구",
		employmentType: "정규직",
		deadline:       "2026-01-10",
		sourceURL:      "https://careers.linecorp.com",
	},
	{
		positionName:   "프론트엔드 개발자",
		companyName:    "배달의민족",
		title:          "프론트엔드 개발자 (React Native)",
		description:    "배달의민족 앱 개발에 참여합니다. React Native 경험이 있으신 분을 찾습니다.",
		location:       "서울 송파구",
		employmentType: "정규직",
		deadline:       "2025-12-15",
		sourceURL:      "https://www.woowahan.com",
	},
	{
		positionName:   "PM",
		companyName:    "카카오",
		title:          "프로덕트 매니저 (메신저 플랫폼)",
		description:    "카카오톡 플랫폼의 신규 기능을 기획하고 개발을 리드합니다. 3년 이상 PM 경험자 우대합니다.",
		location:       "경기 성남시 분당구",
		employmentType: "정규직",
		deadline:       "2025-12-31",
		sourceURL:      "https://careers.kakao.com",
	},
	{
		positionName:   "PM",
		companyName:    "쿠팡",
		title:          "테크 PM (로켓배송)",
		description:    "로켓배송 서비스의 기술 전략을 수립하고 실행합니다. 물류 도메인 이해도가 있으신 분을 찾습니다.",
		location:       "서울 송파구",
		employmentType: "정규직",
		deadline:       "2025-12-20",
		sourceURL:      "https://www.coupang.jobs",
	},
	{
		positionName:   "PM",
		companyName:    "토스",
		title:          "프로덕트 오너 (금융 플랫폼)",
		description:    "토스뱅크의 신규 금융 상품을 기획하고 개발합니다. 금융권 경험자 우대합니다.",
		location:       "서울 강남구",
		employmentType: "정규직",
		deadline:       "2026-01-10",
		sourceURL:      "https://toss.im/career",
	},
}

// Seed installs the starter catalog (one category with its positions), a
// demo account and a batch of sample postings. Safe to run repeatedly:
// categories and users are skipped when present, postings upsert on
// (company_name, title).
func Seed(ctx context.Context, gormDB *gorm.DB, log *logger.Logger) error {
	seedLog := log.With("component", "Seed")

	positionIDs := make(map[string]uint)
	for _, sc := range seedCategories {
		var category types.JobCategory
		err := gormDB.WithContext(ctx).Where("name = ?", sc.name).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			category = types.JobCategory{Name: sc.name, Description: sc.description}
			if err := gormDB.WithContext(ctx).Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", sc.name, err)
			}
			seedLog.Info("Seeded job category", "name", sc.name)
		} else if err != nil {
			return fmt.Errorf("failed to look up category %q: %w", sc.name, err)
		}

		for _, sp := range sc.positions {
			var position types.JobPosition
			err := gormDB.WithContext(ctx).
				Where("category_id = ? AND name = ?", category.ID, sp.name).
				First(&position).Error
			if err == gorm.ErrRecordNotFound {
				position = types.JobPosition{
					CategoryID:  category.ID,
					Name:        sp.name,
					Description: sp.description,
				}
				if err := gormDB.WithContext(ctx).Create(&position).Error; err != nil {
					return fmt.Errorf("failed to seed position %q: %w", sp.name, err)
				}
				seedLog.Info("Seeded job position", "name", sp.name)
			} else if err != nil {
				return fmt.Errorf("failed to look up position %q: %w", sp.name, err)
			}
			positionIDs[sp.name] = position.ID
		}
	}

	if err := seedUser(ctx, gormDB, seedLog); err != nil {
		return err
	}

	for _, sp := range seedPostings {
		deadline, err := time.Parse("2006-01-02", sp.deadline)
		if err != nil {
			return fmt.Errorf("bad seed deadline %q: %w", sp.deadline, err)
		}
		posting := types.JobPosting{
			PositionID:     positionIDs[sp.positionName],
			CompanyName:    sp.companyName,
			Title:          sp.title,
			Description:    sp.description,
			Location:       sp.location,
			EmploymentType: sp.employmentType,
			Deadline:       &deadline,
			SourceURL:      sp.sourceURL,
		}
		for _, sc := range seedCategories {
			for _, scp := range sc.positions {
				if scp.name == sp.positionName {
					var category types.JobCategory
					if err := gormDB.WithContext(ctx).Where("name = ?", sc.name).First(&category).Error; err == nil {
						posting.CategoryID = category.ID
					}
				}
			}
		}
		err = gormDB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "company_name"}, {Name: "title"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"description", "location", "employment_type", "deadline", "source_url", "updated_at",
				}),
			}).
			Create(&posting).Error
		if err != nil {
			return fmt.Errorf("failed to seed posting %q/%q: %w", sp.companyName, sp.title, err)
		}
	}
	seedLog.Info("Seeded job postings", "count", len(seedPostings))
	return nil
}

func seedUser(ctx context.Context, gormDB *gorm.DB, log *logger.Logger) error {
	var existing types.User
	err := gormDB.WithContext(ctx).Where("name = ?", "user").First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up seed user: %w", err)
	}
	user := types.User{Name: "user", Password: "password", RealName: "데모 사용자"}
	if err := utils.HashPassword(&user); err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}
	if err := gormDB.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	log.Info("Seeded demo user", "name", user.Name)
	return nil
}
