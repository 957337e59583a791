package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes. Car photos are public.
func RegisterRoutes(r gin.IRouter, handler *Handler) {
	group := r.Group("/files")

	group.GET("/:id", handler.ServeFile)
	group.GET("/:id/thumbnail", handler.ServeThumbnail)
}
