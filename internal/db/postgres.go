package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/types"
	"github.com/jobdam/jobdam-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "jobdam", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gormDB, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	return AutoMigrate(s.db)
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AutoMigrate creates or updates every table the backend owns. Shared
// with the sqlite-backed tests.
func AutoMigrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.DailyAttendance{},
		&types.JobCategory{},
		&types.JobPosition{},
		&types.UserInterestedCategory{},
		&types.UserInterestedPosition{},
		&types.JobPosting{},
		&types.DailyKeyword{},
		&types.DailyReport{},
		&types.CommunityPost{},
		&types.CommunityComment{},
	)
}
