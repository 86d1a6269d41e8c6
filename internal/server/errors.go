package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/smallbiznis/storewatch/internal/period"
	settingsdomain "github.com/smallbiznis/storewatch/internal/settings/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	// ErrNoDataset: the session has not run a search yet.
	ErrNoDataset = errors.New("no_dataset")
	// ErrUpstream: the storefront API could not be reached at all.
	ErrUpstream = errors.New("storefront_unavailable")
)

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

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, period.ErrInvalidPeriod),
		errors.Is(err, settingsdomain.ErrInvalidKey),
		errors.Is(err, settingsdomain.ErrInvalidProduct),
		errors.Is(err, settingsdomain.ErrInvalidCost):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case errors.Is(err, ErrNoDataset):
		return http.StatusConflict, errorPayload{
			Type:    "no_dataset",
			Message: "run a search before querying reports",
		}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway, errorPayload{
			Type:    "storefront_unavailable",
			Message: "storefront api unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}
