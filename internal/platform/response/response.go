package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spotlog/service-planner/internal/platform/domain"
)

// UpstreamError is implemented by errors that carry the status code returned
// by a remote dependency.
type UpstreamError interface {
	error
	UpstreamStatus() int
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// BadRequest writes a 400 envelope with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

// Error maps a domain error to its HTTP status and writes the envelope.
func Error(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		stateErr      *domain.InvalidStateError
		upstreamErr   UpstreamError
	)

	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.As(err, &validationErr):
		status, msg = http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		status, msg = http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &stateErr):
		status, msg = http.StatusUnprocessableEntity, stateErr.Error()
	case errors.As(err, &upstreamErr):
		status, msg = http.StatusBadGateway, upstreamErr.Error()
	}

	c.JSON(status, gin.H{"success": false, "error": msg})
}
