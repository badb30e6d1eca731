package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"issuetracker/internal/config"
	"issuetracker/internal/database"
	"issuetracker/internal/handler"
	"issuetracker/internal/middleware"
	"issuetracker/internal/repository"
	"issuetracker/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	log.Println("✅ Connected to database")

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.GinMode)

	return &Server{
		Engine: NewRouter(cfg, db),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewRouter wires the issue API on top of an open database handle.
func NewRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		gin.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.AllowedOrigins),
	)
	r.NoRoute(middleware.NotFound)
	r.NoMethod(middleware.MethodNotAllowed)

	issueRepo := repository.NewIssueRepository(db)
	issueService := service.NewIssueService(issueRepo)
	issueHandler := handler.NewIssueHandler(issueService)

	r.GET("/", issueHandler.Root)
	r.GET("/test-db", issueHandler.TestDB)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// The bundled web client calls /api/issues; /issues is the bare resource.
	issueHandler.RegisterRoutes(r)
	issueHandler.RegisterRoutes(r.Group("/api"))

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %s", err)
	}

	if err := database.Close(s.DB); err != nil {
		log.Printf("❌ Failed to close database: %s", err)
	}

	log.Println("✅ Server exited properly")
}
