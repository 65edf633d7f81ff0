package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rankchoice/vote/internal/apperr"
)

// statusOf maps an outcome kind to its HTTP status.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Validation, apperr.BadInput:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// abort ends the request with the status for err and no body.
func abort(c *gin.Context, err error) {
	c.AbortWithStatus(statusOf(err))
}

// abortWithMessage ends the request with the status for err and its message as a text body.
func abortWithMessage(c *gin.Context, err error) {
	c.String(statusOf(err), apperr.MessageOf(err))
	c.Abort()
}

func badPayload(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
