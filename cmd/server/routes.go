package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"motorhub.backend/internal/interfaces/http/handlers"
	"motorhub.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "motorhub-backend"
	serviceVersion = "0.1.0"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	listingHandler      *handlers.ListingHandler
	fulfillmentHandler  *handlers.FulfillmentHandler
	paymentHandler      *handlers.PaymentHandler
	kycHandler          *handlers.KYCHandler
	userHandler         *handlers.UserHandler
	notificationHandler *handlers.NotificationHandler
	inquiryHandler      *handlers.InquiryHandler
	adminHandler        *handlers.AdminHandler
	mediaHandler        *handlers.MediaHandler
	streamHandler       *handlers.StreamHandler
	authMiddleware      gin.HandlerFunc
	optionalAuth        gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Public inventory; the token is optional so owners and admins can
		// read listings that are not public yet.
		v1.GET("/listings", d.listingHandler.ListPublic)
		v1.GET("/listings/:id", d.optionalAuth, d.listingHandler.Get)
		v1.GET("/stream/:collection", d.optionalAuth, d.streamHandler.Stream)

		listings := v1.Group("/listings")
		listings.Use(d.authMiddleware)
		{
			listings.POST("", d.listingHandler.Create)
			listings.PATCH("/:id", d.listingHandler.Update)
			listings.DELETE("/:id", d.listingHandler.Delete)
			listings.POST("/:id/approve", d.listingHandler.Approve)
			listings.POST("/:id/reject", d.listingHandler.Reject)
			listings.POST("/:id/archive", d.listingHandler.Archive)
			listings.POST("/:id/restore", d.listingHandler.Restore)
			listings.PUT("/:id/suspended", d.listingHandler.SetSuspended)
			listings.PUT("/:id/featured", d.listingHandler.SetFeatured)
		}

		dealer := v1.Group("/dealer")
		dealer.Use(d.authMiddleware)
		{
			dealer.GET("/listings", d.listingHandler.ListOwn)
		}

		bookings := v1.Group("/bookings")
		bookings.Use(d.authMiddleware)
		{
			bookings.POST("", d.fulfillmentHandler.RequestBooking)
			bookings.GET("", d.fulfillmentHandler.ListBookings)
			bookings.GET("/:id", d.fulfillmentHandler.GetBooking)
			bookings.POST("/:id/transition", d.fulfillmentHandler.TransitionBooking)
			bookings.PUT("/:id/hidden", d.fulfillmentHandler.SetBookingHidden)
		}

		rentals := v1.Group("/rentals")
		rentals.Use(d.authMiddleware)
		{
			rentals.POST("", d.fulfillmentHandler.RequestRental)
			rentals.GET("", d.fulfillmentHandler.ListRentals)
			rentals.GET("/:id", d.fulfillmentHandler.GetRental)
			rentals.POST("/:id/transition", d.fulfillmentHandler.TransitionRental)
			rentals.PUT("/:id/hidden", d.fulfillmentHandler.SetRentalHidden)
		}

		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", middleware.IdempotencyMiddleware(), d.paymentHandler.Submit)
			payments.GET("", d.paymentHandler.List)
			payments.GET("/:id", d.paymentHandler.Get)
			payments.POST("/:id/verify", d.paymentHandler.Verify)
			payments.POST("/:id/reject", d.paymentHandler.Reject)
		}

		v1.POST("/kyc", d.authMiddleware, d.kycHandler.Submit)
		v1.POST("/inquiries", d.authMiddleware, d.inquiryHandler.Submit)
		v1.POST("/uploads", d.authMiddleware, d.mediaHandler.Upload)

		me := v1.Group("/me")
		me.Use(d.authMiddleware)
		{
			me.PUT("/profile", d.userHandler.UpdateProfile)
			me.PUT("/security", d.userHandler.UpdateSecuritySettings)
			me.GET("/favorites", d.userHandler.ListFavorites)
			me.POST("/favorites/:listingId", d.userHandler.ToggleFavorite)
		}

		notifications := v1.Group("/notifications")
		notifications.Use(d.authMiddleware)
		{
			notifications.GET("", d.notificationHandler.List)
			notifications.POST("/read-all", d.notificationHandler.MarkAllRead)
			notifications.POST("/delete", d.notificationHandler.Delete)
			notifications.POST("/:id/read", d.notificationHandler.MarkRead)
		}

		// Admin routes; the role check happens in each usecase so the
		// denial carries its reason.
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware)
		{
			admin.GET("/stats", d.adminHandler.GetStats)

			admin.GET("/listings", d.listingHandler.ListAll)
			admin.GET("/listings/pending", d.listingHandler.ModerationQueue)

			admin.GET("/kyc", d.kycHandler.Queue)
			admin.POST("/kyc/:userId/approve", d.kycHandler.Approve)
			admin.POST("/kyc/:userId/reject", d.kycHandler.Reject)

			admin.GET("/users", d.userHandler.ListUsers)
			admin.PUT("/users/:id/role", d.userHandler.SetRole)
			admin.PUT("/users/:id/verified", d.userHandler.SetVerification)
			admin.PUT("/users/:id/suspended", d.userHandler.SetSuspended)

			admin.GET("/inquiries", d.inquiryHandler.List)

			admin.GET("/broadcasts", d.notificationHandler.ListBroadcasts)
			admin.POST("/broadcasts", d.notificationHandler.Broadcast)
			admin.PUT("/broadcasts/:id", d.notificationHandler.EditBroadcast)
			admin.DELETE("/broadcasts/:id", d.notificationHandler.DeleteBroadcast)
		}
	}
}
