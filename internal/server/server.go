package server

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/stepup-fit/stepup-server/internal/middleware"
	"github.com/stepup-fit/stepup-server/pkg/storage"

	attachmentHttp "github.com/stepup-fit/stepup-server/internal/modules/attachment/delivery/http"
	attachmentService "github.com/stepup-fit/stepup-server/internal/modules/attachment/service"

	boardHttp "github.com/stepup-fit/stepup-server/internal/modules/board/delivery/http"
	boardRepo "github.com/stepup-fit/stepup-server/internal/modules/board/repository"
	boardService "github.com/stepup-fit/stepup-server/internal/modules/board/service"

	leaderboardHttp "github.com/stepup-fit/stepup-server/internal/modules/leaderboard/delivery/http"
	leaderboardRepo "github.com/stepup-fit/stepup-server/internal/modules/leaderboard/repository"
	leaderboardService "github.com/stepup-fit/stepup-server/internal/modules/leaderboard/service"

	notiHttp "github.com/stepup-fit/stepup-server/internal/modules/notification/delivery/http"
	notifRepo "github.com/stepup-fit/stepup-server/internal/modules/notification/repository"
	notifService "github.com/stepup-fit/stepup-server/internal/modules/notification/service"

	paymentHttp "github.com/stepup-fit/stepup-server/internal/modules/payment/delivery/http"
	paymentGateway "github.com/stepup-fit/stepup-server/internal/modules/payment/gateway"
	paymentRepo "github.com/stepup-fit/stepup-server/internal/modules/payment/repository"
	paymentService "github.com/stepup-fit/stepup-server/internal/modules/payment/service"

	profileHttp "github.com/stepup-fit/stepup-server/internal/modules/profile/delivery/http"
	profileService "github.com/stepup-fit/stepup-server/internal/modules/profile/service"

	searchService "github.com/stepup-fit/stepup-server/internal/modules/search/service"

	stepsHttp "github.com/stepup-fit/stepup-server/internal/modules/steps/delivery/http"
	stepsRepo "github.com/stepup-fit/stepup-server/internal/modules/steps/repository"
	stepsService "github.com/stepup-fit/stepup-server/internal/modules/steps/service"

	userHttp "github.com/stepup-fit/stepup-server/internal/modules/user/delivery/http"
	userRepo "github.com/stepup-fit/stepup-server/internal/modules/user/repository"
	userService "github.com/stepup-fit/stepup-server/internal/modules/user/service"

	workoutHttp "github.com/stepup-fit/stepup-server/internal/modules/workout/delivery/http"
	workoutRepo "github.com/stepup-fit/stepup-server/internal/modules/workout/repository"
	workoutService "github.com/stepup-fit/stepup-server/internal/modules/workout/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	accountRepo := userRepo.NewUserRepository(db)
	mediaStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	// Initialize Meilisearch
	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := searchService.NewBoardSearchService(meiliClient)

	authSvc := userService.NewAuthService(accountRepo)
	authHandler := userHttp.NewAuthHandler(authSvc)

	profileSvc := profileService.NewProfileService(accountRepo)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc)

	lbRepo := leaderboardRepo.NewLeaderboardRepository(db)
	leaderboardSvc := leaderboardService.NewLeaderboardService(lbRepo, accountRepo, redisClient)
	leaderboardHandler := leaderboardHttp.NewLeaderboardHandler(leaderboardSvc)

	// Workout Module (the log store behind the pose tracker)
	wkRepo := workoutRepo.NewWorkoutRepository(db)
	workoutSvc := workoutService.NewWorkoutService(wkRepo, leaderboardSvc, notificationSvc)
	workoutHandler := workoutHttp.NewWorkoutHandler(workoutSvc)

	bdRepo := boardRepo.NewBoardRepository(db)
	boardSvc := boardService.NewBoardService(bdRepo, searchSvc)
	boardHandler := boardHttp.NewBoardHandler(boardSvc)

	stRepo := stepsRepo.NewStepsRepository(db)
	stepsSvc := stepsService.NewStepsService(stRepo, redisClient)
	stepsHandler := stepsHttp.NewStepsHandler(stepsSvc)

	attachmentSvc := attachmentService.NewAttachmentService(mediaStorage)
	attachmentHandler := attachmentHttp.NewAttachmentHandler(attachmentSvc)

	// Payment Module; skipped when the provider is not configured so local
	// development does not need payment credentials.
	var paymentHandler *paymentHttp.PaymentHandler
	if gw, err := paymentGateway.NewHTTPGateway(); err != nil {
		log.Printf("payment module disabled: %v", err)
	} else {
		pmRepo := paymentRepo.NewPaymentRepository(db)
		paymentSvc := paymentService.NewPaymentService(pmRepo, accountRepo, gw)
		paymentHandler = paymentHttp.NewPaymentHandler(paymentSvc)
	}

	// Abandoned sets keep their row open forever and would swallow the next
	// continuation payload. Close them periodically.
	staleAge := 24 * time.Hour
	if v := os.Getenv("STALE_LOG_MAX_AGE"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			staleAge = parsed
		}
	}
	go func() {
		ticker := time.NewTicker(6 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			closed, err := workoutSvc.CloseStaleOpenLogs(context.Background(), staleAge)
			if err != nil {
				log.Printf("stale workout log cleanup failed: %v", err)
			} else if closed > 0 {
				log.Printf("stale workout log cleanup closed %d rows", closed)
			}
		}
	}()

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/steps"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(accountRepo)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Workout log routes. The web client identifies itself by the userUid it
	// sends, matching how the tracker has always submitted sets.
	workouts := api.Group("/workouts")
	{
		workouts.POST("/log", workoutHandler.SubmitLog)
		workouts.GET("/logs", workoutHandler.ListLogs)
		workouts.GET("/logs/:id", workoutHandler.GetLog)
		workouts.POST("/delete", workoutHandler.DeleteLog)
		workouts.GET("/best", workoutHandler.Best)
	}

	// Board routes
	board := api.Group("/board")
	{
		board.GET("/list", boardHandler.ListPosts)
		board.GET("/search", boardHandler.Search)
		board.POST("/write", boardHandler.WritePost)
		board.GET("/:id", boardHandler.GetPost)
		board.DELETE("/:id", boardHandler.DeletePost)
		board.GET("/:id/comments", boardHandler.ListComments)
		board.POST("/:id/comment", boardHandler.WriteComment)
	}

	// Steps routes
	api.POST("/steps", stepsHandler.SubmitSteps)
	api.GET("/steps", stepsHandler.ListSteps)

	api.GET("/leaderboard", leaderboardHandler.Top)
	api.GET("/profile/:nickname", profileHandler.GetProfileByNickname)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Profile routes
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)
		protected.POST("/profile/survey", profileHandler.SubmitSurvey)

		// Notification routes
		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/stream", notificationHandler.Stream)

		// Payment routes
		if paymentHandler != nil {
			protected.POST("/pay/create-checkout-session", paymentHandler.CreateCheckoutSession)
			protected.POST("/pay/confirm", paymentHandler.Confirm)
		}

		// Other protected routes
		protected.POST("/upload", attachmentHandler.Upload)
		protected.DELETE("/upload", attachmentHandler.Delete)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
