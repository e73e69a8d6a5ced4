package server

import (
	"time"

	"lingua-service/internal/auth"
	"lingua-service/internal/chat"
	"lingua-service/internal/friends"
	"lingua-service/internal/server/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all the routes for the application.
func SetupRoutes(
	router *gin.Engine,
	authHandler *auth.AuthHandler,
	friendHandler *friends.FriendHandler,
	chatHandler *chat.ChatHandler,
	guard gin.HandlerFunc,
	rateLimiter *middleware.RateLimitMiddleware,
) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", rateLimiter.RateLimitIP(10, time.Minute), authHandler.Signup)
			authGroup.POST("/login", rateLimiter.RateLimitIP(10, time.Minute), authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/onboarding", guard, authHandler.Onboard)
			authGroup.GET("/me", guard, authHandler.Me)
		}

		// Chat provider routes
		chatGroup := api.Group("/chat")
		chatGroup.Use(guard)
		{
			chatGroup.GET("/token", chatHandler.GetToken)
		}

		// User / friend routes
		userGroup := api.Group("/users")
		userGroup.Use(guard)
		{
			userGroup.GET("", friendHandler.GetRecommended)
			userGroup.GET("/friends", friendHandler.GetFriends)
			userGroup.POST("/avatar", authHandler.UploadAvatar)
			userGroup.POST("/friend-request/:id", rateLimiter.RateLimitUser(30, time.Minute), friendHandler.SendRequest)
			userGroup.PUT("/friend-request/:id/accept", friendHandler.AcceptRequest)
			userGroup.GET("/friend-requests", friendHandler.GetFriendRequests)
			userGroup.GET("/outgoing-friend-requests", friendHandler.GetOutgoingRequests)
		}
	}
}
