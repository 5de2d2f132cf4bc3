package http

import (
	"errors"
	"net/http"

	"simple-social/internal/entity"

	"github.com/gin-gonic/gin"
)

// writeError maps a tagged use case error to its status code. Unrecognized
// errors are reported as 500 without leaking internals.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, entity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = err.Error()
	case errors.Is(err, entity.ErrForbidden):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrIntegrity):
		status = http.StatusConflict
		msg = err.Error()
	case errors.Is(err, entity.ErrExternalService):
		status = http.StatusBadGateway
		msg = err.Error()
	}

	c.JSON(status, gin.H{"error": msg})
}
