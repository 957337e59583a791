package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers catalog routes. Reads are public; writes need an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, adminMiddleware gin.HandlerFunc) {
	cars := g.Group("/cars")

	cars.GET("", h.List)
	cars.GET("/:id", h.Get)

	cars.POST("", authMiddleware, adminMiddleware, h.Create)
	cars.POST("/:id/image", authMiddleware, adminMiddleware, h.UploadImage)
}
