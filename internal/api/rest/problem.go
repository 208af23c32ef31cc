package rest

import (
	"errors"
	"net/http"

	"player_bonus_service/internal/bonus"
	"player_bonus_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorDetail = "Something went wrong."

// Problem is the error body returned by every endpoint.
type Problem struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Status   int    `json:"status"`
	Instance string `json:"instance"`
	TraceID  string `json:"traceId"`
}

func writeProblem(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, Problem{
		Title:    http.StatusText(status),
		Detail:   detail,
		Status:   status,
		Instance: c.Request.URL.Path,
		TraceID:  middleware.GetTraceID(c),
	})
}

// writeError maps service errors onto HTTP statuses. Anything without a
// known kind is logged and reported without detail.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, bonus.ErrBadRequest):
		writeProblem(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, bonus.ErrNotFound):
		writeProblem(c, http.StatusNotFound, err.Error())
	case errors.Is(err, bonus.ErrConflict):
		writeProblem(c, http.StatusConflict, err.Error())
	default:
		_ = c.Error(err)
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("trace_id", middleware.GetTraceID(c)),
			zap.Error(err),
		)
		writeProblem(c, http.StatusInternalServerError, internalErrorDetail)
	}
}
