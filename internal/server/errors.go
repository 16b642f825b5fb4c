package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/larderhq/larder/pkg/apperr"
)

// Every endpoint answers with the same envelope: success says whether the
// operation committed, data carries the payload, error_message is set only
// on failure.
type response struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, response{Success: true, Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, response{Success: true, Data: data})
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, response{Success: false, ErrorMessage: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return apperr.Validation("invalid request body")
}

func mapError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal server error"
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest, apperr.MessageOf(err)
	case apperr.KindNotFound:
		return http.StatusNotFound, apperr.MessageOf(err)
	case apperr.KindDuplicate, apperr.KindConflict:
		return http.StatusConflict, apperr.MessageOf(err)
	case apperr.KindTransaction:
		return http.StatusInternalServerError, apperr.MessageOf(err)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "not found"
	}
	return http.StatusInternalServerError, "internal server error"
}
