package main

import (
	"context"
	"net/http"
	"time"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes attached.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	r.GET("/health", healthCheck(c))

	auth := middleware.AuthMiddleware(c.JWT)
	admin := middleware.AdminMiddleware()

	v1 := r.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", c.UserHandler.Register)
			authGroup.POST("/login", c.UserHandler.Login)
			authGroup.POST("/refresh", c.UserHandler.Refresh)
			authGroup.POST("/logout", auth, c.UserHandler.Logout)
		}

		// Catalog
		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.List)
			books.GET("/:id", c.BookHandler.Get)
			books.POST("", auth, admin, c.BookHandler.Save)
			books.DELETE("/delete/:title", auth, admin, c.BookHandler.Delete)
			books.POST("/seed", auth, admin, c.BookHandler.Seed)
			books.POST("/:id/cover", auth, admin, c.BookHandler.UploadCover)

			// Lending
			books.POST("/borrow", auth, c.LendingHandler.Borrow)
			books.POST("/return", auth, c.LendingHandler.Return)
			books.GET("/:id/borrow-status", auth, c.LendingHandler.BorrowStatus)

			// Waiting queue
			books.POST("/:id/queue/join", auth, c.LendingHandler.JoinQueue)
			books.POST("/:id/queue/leave", auth, c.LendingHandler.LeaveQueue)
			books.GET("/:id/queue/status", auth, c.LendingHandler.QueueStatus)

			// Ratings
			books.POST("/:id/rate", auth, c.RatingHandler.Rate)
			books.GET("/:id/rating", auth, c.RatingHandler.GetMyRating)
			books.GET("/:id/ratings", auth, admin, c.RatingHandler.ListForBook)
			books.DELETE("/:id/rating", auth, c.RatingHandler.Remove)

			// Comments
			books.POST("/:id/comments", auth, c.CommentHandler.Create)
			books.GET("/:id/comments", c.CommentHandler.List)
		}

		comments := v1.Group("/comments", auth)
		{
			comments.POST("/:id/like", c.CommentHandler.Like)
			comments.DELETE("/:id", c.CommentHandler.Delete)
		}

		// Search
		v1.GET("/search/suggestions", c.BookHandler.Search)

		// Current user
		users := v1.Group("/users", auth)
		{
			users.GET("/profile", c.UserHandler.Profile)
			users.PUT("/profile", c.UserHandler.UpdateProfile)
			users.PUT("/password", c.UserHandler.ChangePassword)

			me := users.Group("/me")
			{
				me.GET("/borrows", c.LendingHandler.MyBorrows)
				me.GET("/queues", c.LendingHandler.MyQueues)

				me.POST("/wishlist", c.UserHandler.AddWishlist)
				me.GET("/wishlist", c.UserHandler.GetWishlist)
				me.DELETE("/wishlist/:title", c.UserHandler.RemoveWishlist)

				me.POST("/reading", c.UserHandler.AddReading)
				me.GET("/reading", c.UserHandler.GetReading)
				me.PUT("/reading/:title", c.UserHandler.UpdateReadingProgress)
				me.DELETE("/reading/:title", c.UserHandler.RemoveReading)
			}
		}
	}

	return r
}

func healthCheck(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		redisStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			redisStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" || redisStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":  map[bool]string{true: "healthy", false: "degraded"}[status == http.StatusOK],
			"version": c.Config.App.Version,
			"checks": gin.H{
				"postgres": dbStatus,
				"redis":    redisStatus,
			},
		})
	}
}
