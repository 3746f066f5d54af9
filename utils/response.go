package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reservation-server/services"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail sends an error response with an explicit status
func Fail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

// Error maps a domain failure onto its HTTP status. Unclassified errors
// are logged and hidden behind a generic 500.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrBadRequest):
		Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		Fail(c, http.StatusForbidden, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled error")
		Fail(c, http.StatusInternalServerError, "Internal server error")
	}
}
