package server

import (
	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"

	"bijoux-catalog/internal/logger"
	"bijoux-catalog/internal/models"
	"bijoux-catalog/internal/storage"
	"bijoux-catalog/internal/upload"
)

type Server struct {
	cfg      *models.Config
	router   *gin.Engine
	store    storage.MenuStore
	uploads  *upload.Service
	producer *kafka.Writer
	log      *logger.Logger
}

func NewServer(cfg *models.Config, store storage.MenuStore, uploads *upload.Service, producer *kafka.Writer, log *logger.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	s := &Server{
		cfg:      cfg,
		router:   r,
		store:    store,
		uploads:  uploads,
		producer: producer,
		log:      log.WithContext("server"),
	}

	r.Static("/"+uploads.Prefix(), cfg.UploadPath)

	api := r.Group("/api")
	api.POST("/menu-items", s.handleCreateMenuItem)
	api.GET("/menu-items", s.handleListMenuItems)
	api.GET("/menu-items/:id", s.handleGetMenuItem)
	api.PUT("/menu-items/:id", s.handleUpdateMenuItem)
	api.DELETE("/menu-items/:id", s.handleDeleteMenuItem)
	api.POST("/menu-items/image", s.handleUploadImage)

	return s
}

func (s *Server) Start() error {
	return s.router.Run(s.cfg.ServerAddr)
}

func (s *Server) Stop() {
	// No shutdown needed for gin
}
