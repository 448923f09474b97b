package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jobdam/jobdam-backend/internal/handlers"
	"github.com/jobdam/jobdam-backend/internal/logger"
	"github.com/jobdam/jobdam-backend/internal/middleware"
)

type RouterConfig struct {
	Log              *logger.Logger
	AllowedOrigins   []string
	AuthMiddleware   *middleware.AuthMiddleware
	AuthHandler      *handlers.AuthHandler
	AttendHandler    *handlers.AttendHandler
	DailyHandler     *handlers.DailyHandler
	JobHandler       *handlers.JobHandler
	CommunityHandler *handlers.CommunityHandler
	Healthcheck      *handlers.HealthcheckHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(cfg.Log))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.Healthcheck.Healthcheck)
	router.POST("/auth/register", cfg.AuthHandler.Register)
	router.POST("/auth/login", cfg.AuthHandler.Login)
	router.POST("/auth/reissue", cfg.AuthHandler.Reissue)
	router.GET("/job/categories", cfg.JobHandler.Categories)
	router.GET("/job/positions", cfg.JobHandler.Positions)
	// Recommendations work without a token; a valid one personalizes them.
	router.GET("/job/recommended", cfg.AuthMiddleware.OptionalAuth(), cfg.JobHandler.Recommended)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/auth/profile", cfg.AuthHandler.Profile)
	protected.PATCH("/auth/interests", cfg.AuthHandler.UpdateInterests)
	// Attendance
	protected.POST("/attend", cfg.AttendHandler.Attend)
	protected.GET("/attend/today", cfg.AttendHandler.CheckToday)
	protected.GET("/attend/month", cfg.AttendHandler.CheckMonth)
	protected.GET("/attend/routines", cfg.AttendHandler.Routines)
	// Daily content
	protected.GET("/daily/keyword", cfg.DailyHandler.Keyword)
	protected.GET("/daily/report", cfg.DailyHandler.Report)
	// Jobs
	protected.GET("/job/categories/interest", cfg.JobHandler.InterestedCategories)
	protected.POST("/job/categories/interest", cfg.JobHandler.AddInterestedCategories)
	protected.DELETE("/job/categories/interest", cfg.JobHandler.DeleteInterestedCategories)
	protected.GET("/job/positions/interest", cfg.JobHandler.InterestedPositions)
	protected.POST("/job/positions/interest", cfg.JobHandler.AddInterestedPositions)
	protected.DELETE("/job/positions/interest", cfg.JobHandler.DeleteInterestedPositions)
	protected.POST("/job/sync", cfg.JobHandler.Sync)
	// Community
	protected.GET("/community/posts", cfg.CommunityHandler.ListPosts)
	protected.POST("/community/posts", cfg.CommunityHandler.CreatePost)
	protected.GET("/community/posts/:postId", cfg.CommunityHandler.GetPost)
	protected.PUT("/community/posts/:postId", cfg.CommunityHandler.UpdatePost)
	protected.DELETE("/community/posts/:postId", cfg.CommunityHandler.DeletePost)
	protected.GET("/community/posts/:postId/comments", cfg.CommunityHandler.ListComments)
	protected.POST("/community/posts/:postId/comments", cfg.CommunityHandler.CreateComment)
	protected.PUT("/community/comments/:commentId", cfg.CommunityHandler.UpdateComment)
	protected.DELETE("/community/comments/:commentId", cfg.CommunityHandler.DeleteComment)

	return router
}

// SplitOrigins parses a comma separated origin list from the environment.
func SplitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
