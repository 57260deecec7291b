package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/handler"
	"taskhub/internal/middleware"
	"taskhub/internal/repository"
	"taskhub/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("db", cfg.DBName))

	// Setup Gin
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, tokenRepo, []byte(cfg.JWTSecret), tokenTTL, log)
	membershipService := service.NewMembershipService(projectRepo, membershipRepo, log)
	projectService := service.NewProjectService(projectRepo, membershipRepo, taskRepo, log)
	taskService := service.NewTaskService(taskRepo, membershipRepo, projectRepo, userRepo, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(membershipService, projectService)
	memberHandler := handler.NewMemberHandler(membershipService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Public routes
	r.GET("/healthcheck", handler.HealthCheck)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.AuthMiddleware(cfg.JWTSecret, tokenRepo))
	{
		authorized.POST("/logout", authHandler.Logout)

		// Project routes
		authorized.GET("/projects", projectHandler.List)
		authorized.POST("/projects", projectHandler.Create)
		authorized.POST("/projects/join", projectHandler.Join)
		authorized.GET("/projects/:id", projectHandler.Get)
		authorized.PUT("/projects/:id", projectHandler.Update)
		authorized.DELETE("/projects/:id", projectHandler.Delete)

		// Member routes
		authorized.GET("/projects/:id/members", memberHandler.List)
		authorized.DELETE("/projects/:id/members/:user_id", memberHandler.Remove)
		authorized.PUT("/projects/:id/members/:user_id/role", memberHandler.UpdateRole)

		// Task routes
		authorized.POST("/projects/:id/tasks", taskHandler.Create)
		authorized.GET("/projects/:id/tasks", taskHandler.ListByProject)
		authorized.GET("/tasks/:id", taskHandler.Get)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.GET("/tasks/:id/subtasks", taskHandler.Subtasks)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Log:    log,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.Log.Info("server exited properly")
}
