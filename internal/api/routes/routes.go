package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/privacyweave/backend/internal/api/handlers"
	"github.com/privacyweave/backend/internal/api/middleware"
)

type Deps struct {
	JWTSecret string

	Auth        *handlers.AuthHandler
	Inquiry     *handlers.InquiryHandler
	Listing     *handlers.ListingHandler
	Application *handlers.ApplicationHandler
	Chat        *handlers.ChatHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	api.POST("/inquiries", d.Inquiry.Submit)

	api.GET("/job-listings", d.Listing.ListActive)
	api.GET("/job-listings/:id", d.Listing.Get)

	api.POST("/job-applications", d.Application.Submit)

	api.POST("/chat/messages", d.Chat.PostMessage)
	api.GET("/chat/:session_id", d.Chat.Transcript)

	// Admin surface (JWT + role gate)
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuth(d.JWTSecret), middleware.RequireAdmin())

	admin.GET("/inquiries", d.Inquiry.List)
	admin.GET("/job-applications", d.Application.List)
	admin.GET("/job-applications/:id/resume", d.Application.DownloadResume)
	admin.POST("/job-listings", d.Listing.Create)
}
