package rest

import (
	"net/http"

	"player_bonus_service/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the public and the bearer-protected endpoints.
func RegisterRoutes(r *gin.Engine, bonuses *BonusHandler, authHandler *AuthHandler, issuer *auth.TokenIssuer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/api/auth/dev-token", authHandler.DevToken)

	api := r.Group("/api/bonus", auth.Middleware(issuer))
	api.GET("/all", bonuses.GetAll)
	api.POST("/create", bonuses.Create)
	api.GET("/:id", bonuses.GetByID)
	api.PUT("/update/:id", bonuses.Update)
	api.DELETE("/delete/:id", bonuses.Delete)
}
