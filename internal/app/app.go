package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHTTP "simple-social/internal/controller/http"
	"simple-social/internal/repo/persistent"
	"simple-social/internal/repo/tokenstore"
	"simple-social/internal/usecase"
	"simple-social/pkg/cache"
	"simple-social/pkg/config"
	"simple-social/pkg/database"
	"simple-social/pkg/jwt"
	"simple-social/pkg/logger"
	"simple-social/pkg/mailer"
	"simple-social/pkg/middleware"
	"simple-social/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis only backs rate limiting and the token store fallback.
		log.Warn("Redis unavailable, using in-memory token store: %v", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)
	tokens := tokenstore.New(a.redisClient)

	// Use cases
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		a.jwtService,
		tokens,
		mailer.New(a.cfg),
		a.log,
		a.cfg.BaseURL,
	)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, a.s3Client, a.log)

	// HTTP handlers
	authHandler := apiHTTP.NewAuthHandler(authUseCase)
	postHandler := apiHTTP.NewPostHandler(postUseCase)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := r.Group("/auth")
	if a.redisClient != nil {
		auth.Use(middleware.RateLimitMiddleware(a.redisClient, 20, time.Minute))
	}
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/jwt/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/request-verify-token", authHandler.RequestVerifyToken)
		auth.POST("/verify", authHandler.Verify)
	}

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService))
	{
		protected.POST("/upload", postHandler.Upload)
		protected.GET("/feed", postHandler.Feed)
		protected.DELETE("/posts/:post_id", postHandler.Delete)
		protected.GET("/users/me", authHandler.Me)
		protected.PATCH("/users/me", authHandler.UpdateMe)
	}

	// SPA hosting fallback: serve the static directory at the root path
	// when it exists at startup.
	if info, err := os.Stat(a.cfg.StaticDir); err == nil && info.IsDir() {
		fileServer := http.FileServer(http.Dir(a.cfg.StaticDir))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		})
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Server starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
