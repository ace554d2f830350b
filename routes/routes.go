package routes

import (
	"net/http"
	"time"

	"advisorly/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversation endpoints.
func RegisterAssistantRoutes(r *gin.Engine) {
	api := r.Group("/api/assistant")
	{
		api.POST("/chat", handlers.ChatHandler)
		api.POST("/voice", handlers.VoiceChatHandler)
	}
}

// RegisterBookingRoutes registers read-only booking endpoints used by the
// frontend outside the conversation.
func RegisterBookingRoutes(r *gin.Engine) {
	api := r.Group("/api/bookings")
	{
		api.GET("/:code", handlers.GetBookingHandler)
	}
	r.GET("/api/availability", handlers.GetAvailabilityHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Advisorly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r)
	RegisterBookingRoutes(r)
	RegisterHealthRoute(r)
}
