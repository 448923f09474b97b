package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobdam/jobdam-backend/internal/clients/jobapi"
	"github.com/jobdam/jobdam-backend/internal/clients/rediscache"
	"github.com/jobdam/jobdam-backend/internal/clients/solar"
	"github.com/jobdam/jobdam-backend/internal/db"
	"github.com/jobdam/jobdam-backend/internal/handlers"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/middleware"
	"github.com/jobdam/jobdam-backend/internal/repos"
	"github.com/jobdam/jobdam-backend/internal/server"
	"github.com/jobdam/jobdam-backend/internal/services"
	"github.com/jobdam/jobdam-backend/internal/utils"
)

func main() {
	seedFlag := flag.Bool("seed", false, "install the starter catalog and demo data, then exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on process environment")
	}

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 1800, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	dailyCacheTTL := utils.GetEnvAsInt("DAILY_CACHE_TTL", 3600, log)
	allowedOrigins := server.SplitOrigins(os.Getenv("ALLOWED_ORIGINS"))

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	if *seedFlag {
		if err := db.Seed(context.Background(), thePG, log); err != nil {
			log.Fatal("Seeding failed", "error", err)
		}
		log.Info("Seeding finished")
		return
	}

	// Clients
	log.Info("Setting up clients from main...")
	solarClient, err := solar.NewClient(log)
	if err != nil {
		log.Fatal("Upstage Solar client init failed", "error", err)
	}
	jobAPIClient, err := jobapi.NewClient(log)
	if err != nil {
		log.Warn("Job posting client unavailable, sync disabled", "error", err)
		jobAPIClient = nil
	}
	cache, err := rediscache.New(log)
	if err != nil {
		log.Warn("Redis unavailable, daily content cache disabled", "error", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	attendanceRepo := repos.NewAttendanceRepo(thePG, log)
	jobCategoryRepo := repos.NewJobCategoryRepo(thePG, log)
	jobPositionRepo := repos.NewJobPositionRepo(thePG, log)
	jobPostingRepo := repos.NewJobPostingRepo(thePG, log)
	userInterestRepo := repos.NewUserInterestRepo(thePG, log)
	dailyKeywordRepo := repos.NewDailyKeywordRepo(thePG, log)
	dailyReportRepo := repos.NewDailyReportRepo(thePG, log)
	communityPostRepo := repos.NewCommunityPostRepo(thePG, log)
	communityCommentRepo := repos.NewCommunityCommentRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo,
		jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second,
		time.Duration(refreshTokenTTL)*time.Second,
	)
	contentGenerator := services.NewContentGenerator(log, solarClient)
	attendService := services.NewAttendService(thePG, log, attendanceRepo, userInterestRepo, contentGenerator)
	dailyService := services.NewDailyService(
		thePG, log, dailyKeywordRepo, dailyReportRepo, userInterestRepo,
		contentGenerator, cache, time.Duration(dailyCacheTTL)*time.Second,
	)
	jobService := services.NewJobService(
		thePG, log, jobCategoryRepo, jobPositionRepo, jobPostingRepo,
		userInterestRepo, jobAPIClient,
	)
	communityService := services.NewCommunityService(thePG, log, communityPostRepo, communityCommentRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	attendHandler := handlers.NewAttendHandler(attendService)
	dailyHandler := handlers.NewDailyHandler(dailyService)
	jobHandler := handlers.NewJobHandler(jobService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	healthcheckHandler := handlers.NewHealthcheckHandler()

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:              log,
		AllowedOrigins:   allowedOrigins,
		AuthMiddleware:   authMiddleware,
		AuthHandler:      authHandler,
		AttendHandler:    attendHandler,
		DailyHandler:     dailyHandler,
		JobHandler:       jobHandler,
		CommunityHandler: communityHandler,
		Healthcheck:      healthcheckHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
