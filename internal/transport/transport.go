package transport

import (
	"github.com/gin-gonic/gin"
)

func InitRoutes(handler *StickerHandler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := router.Group("/api/v1")
	{
		api.POST("/meme", handler.CreateMeme)
		api.POST("/quote", handler.CreateQuote)
		api.POST("/filter", handler.CreateFilter)
		api.POST("/sticker", handler.CreateSticker)

		api.GET("/jobs/:id", handler.GetJob)
		api.GET("/jobs/:id/result", handler.GetResult)
		api.DELETE("/jobs/:id", handler.DeleteJob)

		api.POST("/packs", handler.AddToPack)
		api.GET("/packs/:user", handler.GetPack)

		api.GET("/stats", handler.GetTotalStats)
		api.GET("/stats/:user", handler.GetUserStats)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "sticker-render-service",
		})
	})
	return router
}
