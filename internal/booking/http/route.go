package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. The group must run session
// resolution; the service itself rejects anonymous callers.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	g.POST("/book", h.Create)
	g.GET("/bookings", h.ListMine)
}
