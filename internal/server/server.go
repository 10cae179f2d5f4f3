package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/session"
	"taskboard/internal/state"
)

type Server struct {
	Engine  *gin.Engine
	DB      *gorm.DB
	Config  *config.Config
	Session *session.Session
	Logger  *log.Logger
}

func Init(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New()
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	if err := db.AutoMigrate(&repository.Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	logger.Info("connected to database")

	var store session.Store = repository.NewSnapshotRepository(db)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = repository.NewCache(store, client, cfg.CacheTTL)
		logger.WithField("addr", cfg.RedisAddr).Info("snapshot cache enabled")
	}

	sess := session.New(
		state.NewProcessor(nil, nil),
		store,
		session.LogNotifier{Logger: logger},
		logger,
	)
	sess.Bootstrap(context.Background())

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(tokens, cfg.AccessKeyHash)
	boardHandler := handler.NewBoardHandler(sess)
	columnHandler := handler.NewColumnHandler(sess)
	taskHandler := handler.NewTaskHandler(sess)
	subTaskHandler := handler.NewSubTaskHandler(sess)
	importHandler := handler.NewImportHandler(sess)
	labelHandler := handler.NewLabelHandler(sess)
	viewHandler := handler.NewViewHandler(sess)
	maintenanceHandler := handler.NewMaintenanceHandler(sess)

	r := gin.Default()

	// Public routes
	r.POST("/auth/token", authHandler.Token)

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.GET("/boards/current", boardHandler.GetCurrent)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/:id/select", boardHandler.SetCurrent)
		authorized.POST("/boards/clear-completed", boardHandler.ClearCompleted)

		// Import/export routes
		authorized.POST("/boards/import", importHandler.Import)
		authorized.GET("/boards/export", importHandler.Export)

		// Column routes
		authorized.POST("/columns", columnHandler.Create)
		authorized.PUT("/columns/:id", columnHandler.Update)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/move", taskHandler.Move)

		// Sub-task routes
		authorized.POST("/tasks/:id/subtasks", subTaskHandler.Add)
		authorized.POST("/tasks/:id/subtasks/:subtask_id/toggle", subTaskHandler.Toggle)
		authorized.DELETE("/tasks/:id/subtasks/:subtask_id", subTaskHandler.Delete)

		// Label and view routes
		authorized.GET("/boards/:id/labels", labelHandler.GetByBoardID)
		authorized.GET("/boards/:id/table", viewHandler.Table)
		authorized.GET("/boards/:id/calendar", viewHandler.Calendar)

		// Maintenance routes
		authorized.POST("/maintenance/sweep", maintenanceHandler.Sweep)
	}

	return &Server{
		Engine:  r,
		DB:      db,
		Config:  cfg,
		Session: sess,
		Logger:  logger,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go s.Session.RunSweeper(sweepCtx, s.Config.SweepInterval)

	go func() {
		s.Logger.WithField("port", s.Config.ServerPort).Info("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.WithError(err).Fatal("failed to listen")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("shutting down server")
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.WithError(err).Fatal("server forced to shutdown")
	}

	s.Logger.Info("server exited properly")
}
