package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bijoux-catalog/internal/storage"
	"bijoux-catalog/internal/upload"
)

// apiError carries an HTTP status alongside the message exposed to the
// client. Internal errors keep the original cause for logging but never
// leak it in the response body.
type apiError struct {
	status  int
	message string
	cause   error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *apiError) Unwrap() error { return e.cause }

func badRequest(msg string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: msg}
}

func notFound(msg string) *apiError {
	return &apiError{status: http.StatusNotFound, message: msg}
}

func internalError(err error) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: "internal server error", cause: err}
}

func (s *Server) respondError(c *gin.Context, err error) {
	var api *apiError
	var verr *upload.ValidationError
	switch {
	case errors.As(err, &api):
	case errors.As(err, &verr):
		api = badRequest(verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		api = notFound(storage.ErrNotFound.Error())
	default:
		api = internalError(err)
	}

	if api.status >= http.StatusInternalServerError {
		s.log.Error("request failed", err)
	} else {
		s.log.Warn(api.message)
	}
	c.JSON(api.status, gin.H{"error": api.message})
}
