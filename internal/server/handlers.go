package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"bijoux-catalog/internal/models"
	"bijoux-catalog/internal/upload"
)

func (s *Server) handleCreateMenuItem(c *gin.Context) {
	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err.Error()))
		return
	}

	item := req.ToMenuItem()
	if err := s.store.CreateMenuItem(c.Request.Context(), item); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleListMenuItems(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	items, err := s.store.ListMenuItems(c.Request.Context(), activeOnly)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleGetMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, badRequest("invalid menu item id"))
		return
	}

	item, err := s.store.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleUpdateMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, badRequest("invalid menu item id"))
		return
	}

	var req models.MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest(err.Error()))
		return
	}

	item := req.ToMenuItem()
	item.ID = id
	if err := s.store.UpdateMenuItem(c.Request.Context(), item); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.respondError(c, badRequest("invalid menu item id"))
		return
	}

	item, err := s.store.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.store.DeleteMenuItem(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}

	// Best-effort: the record is gone either way.
	if item.Image != nil {
		s.uploads.Delete(*item.Image)
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		s.respondError(c, badRequest("image file is required"))
		return
	}

	src, err := header.Open()
	if err != nil {
		s.respondError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		s.respondError(c, err)
		return
	}

	path, err := s.uploads.Store(&upload.File{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		Filename: header.Filename,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	// Thumbnail generation is async and best-effort; a queue failure
	// must not fail the upload.
	if s.producer != nil {
		msg := kafka.Message{Value: []byte(path)}
		if err := s.producer.WriteMessages(c.Request.Context(), msg); err != nil {
			s.log.Error(fmt.Sprintf("failed to enqueue thumbnail job for %s", path), err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": path,
		"url":  s.uploads.URL(path),
	})
}
