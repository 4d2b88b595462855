package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/openwave-social/openwave/internal/middleware"
	"github.com/openwave-social/openwave/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	authService         service.AuthService
	postService         service.PostService
	socialService       service.SocialService
	profileService      service.ProfileService
	notificationService service.NotificationService
	searchService       service.SearchService
	authMiddleware      *middleware.AuthMiddleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	authService service.AuthService,
	postService service.PostService,
	socialService service.SocialService,
	profileService service.ProfileService,
	notificationService service.NotificationService,
	searchService service.SearchService,
	authMiddleware *middleware.AuthMiddleware,
) *Handler {
	return &Handler{
		authService:         authService,
		postService:         postService,
		socialService:       socialService,
		profileService:      profileService,
		notificationService: notificationService,
		searchService:       searchService,
		authMiddleware:      authMiddleware,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		// Auth
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/token/refresh", h.RefreshToken)
		api.POST("/logout", h.authMiddleware.RequireAuth(), h.Logout)

		// Posts and likes
		posts := api.Group("/posts")
		{
			posts.GET("", h.ListPosts)
			posts.POST("", h.authMiddleware.RequireAuth(), h.CreatePost)
			posts.GET("/:id", h.GetPost)
			posts.PUT("/:id", h.authMiddleware.RequireAuth(), h.ReplacePost)
			posts.PATCH("/:id", h.authMiddleware.RequireAuth(), h.PatchPost)
			posts.DELETE("/:id", h.authMiddleware.RequireAuth(), h.DeletePost)
			posts.POST("/:id/like", h.authMiddleware.RequireAuth(), h.LikePost)
			posts.POST("/:id/unlike", h.authMiddleware.RequireAuth(), h.UnlikePost)

			posts.GET("/:id/comments", h.ListComments)
			posts.POST("/:id/comments", h.authMiddleware.RequireAuth(), h.CreateComment)
			posts.GET("/:id/comments/:cid", h.GetComment)
			posts.PUT("/:id/comments/:cid", h.authMiddleware.RequireAuth(), h.ReplaceComment)
			posts.DELETE("/:id/comments/:cid", h.authMiddleware.RequireAuth(), h.DeleteComment)
		}

		// Users and follow graph
		users := api.Group("/users")
		{
			users.GET("/:username", h.authMiddleware.OptionalAuth(), h.GetUserProfile)
			users.GET("/:username/posts", h.GetUserPosts)
			users.POST("/:username/follow", h.authMiddleware.RequireAuth(), h.Follow)
			users.POST("/:username/unfollow", h.authMiddleware.RequireAuth(), h.Unfollow)
			users.GET("/:username/followers", h.authMiddleware.OptionalAuth(), h.ListFollowers)
			users.GET("/:username/following", h.authMiddleware.OptionalAuth(), h.ListFollowing)
		}

		api.GET("/feed", h.authMiddleware.RequireAuth(), h.Feed)

		// Profile
		profile := api.Group("/profile")
		profile.Use(h.authMiddleware.RequireAuth())
		{
			profile.GET("", h.GetOwnProfile)
			profile.PUT("", h.UpdateProfile)
			profile.POST("/avatar", h.UploadAvatar)
		}

		// Notifications
		notifications := api.Group("/notifications")
		notifications.Use(h.authMiddleware.RequireAuth())
		{
			notifications.GET("", h.ListNotifications)
			notifications.PATCH("", h.MarkNotificationsRead)
		}

		api.GET("/search", h.authMiddleware.OptionalAuth(), h.Search)
	}
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
