package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

type operation int

const (
	opRead operation = iota
	opCreate
	opUpdate
	opDelete
)

// fail maps service errors onto status codes. Anything outside the taxonomy is
// logged and reported as a generic 500 so store details never reach clients.
func (h *UserHandler) fail(c *gin.Context, err error, op operation) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, application.ErrDuplicateUsername) && op == opCreate:
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	default:
		if h.Logger != nil {
			helpers.LogError(h.Logger, "request failed", err, logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			})
		}
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
