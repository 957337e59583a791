package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers account and session routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)

	g.GET("/me", authMiddleware, h.Me)
}
