package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/next-blog/internal/handler"
	"github.com/ashwinyue/next-blog/internal/middleware"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, validator middleware.TokenValidator, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RequestID())
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.RecoveryMiddleware(logger))
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", h.System.Health)

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth 认证
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.GET("/me", middleware.RequireAuth(validator), h.Auth.Me)
		}

		// Post 公开文章
		posts := v1.Group("/posts")
		{
			posts.GET("/:slug", h.Post.GetPublishedPost)
			posts.GET("/:slug/faqs", h.FAQ.ListPublishedFAQs)
			posts.GET("/:slug/faqs/jsonld", h.FAQ.GetFAQJSONLD)
		}

		// Admin 后台，需要认证
		admin := v1.Group("/admin", middleware.RequireAuth(validator))
		{
			adminPosts := admin.Group("/posts")
			{
				adminPosts.POST("", h.Post.CreatePost)
				adminPosts.GET("", h.Post.ListPosts)
				adminPosts.GET("/:id", h.Post.GetPost)
				adminPosts.PUT("/:id", h.Post.UpdatePost)
				adminPosts.DELETE("/:id", h.Post.DeletePost)
				adminPosts.POST("/:id/faqs/sync", h.FAQ.SyncFAQs)
			}

			admin.POST("/faqs/preview", h.FAQ.PreviewFAQs)
		}
	}

	return r
}
