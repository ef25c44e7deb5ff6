package router

import (
	"vidtube/internal/api/handler"
	"vidtube/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
	likeHandler *handler.LikeHandler,
	playlistHandler *handler.PlaylistHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	tweetHandler *handler.TweetHandler,
	dashboardHandler *handler.DashboardHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.GetMe)
		}
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		// 公开接口（不需要登录）
		videos.GET("", videoHandler.List)
		videos.GET("/search", videoHandler.Search)
		videos.GET("/:id", videoHandler.GetDetail)

		// 需要登录的接口
		videosAuth := videos.Group("", middleware.AuthRequired())
		{
			videosAuth.POST("", videoHandler.Publish)
			videosAuth.PATCH("/:id", videoHandler.Update)
			videosAuth.DELETE("/:id", videoHandler.Delete)
			videosAuth.PATCH("/:id/toggle-publish", videoHandler.TogglePublish)
		}
	}

	// --- 评论模块 ---
	comments := v1.Group("/comments")
	{
		comments.GET("/video/:video_id", commentHandler.ListByVideo)

		commentsAuth := comments.Group("", middleware.AuthRequired())
		{
			commentsAuth.POST("/video/:video_id", commentHandler.Create)
			commentsAuth.PATCH("/:id", commentHandler.Update)
			commentsAuth.DELETE("/:id", commentHandler.Delete)
		}
	}

	// --- 点赞模块 ---
	likes := v1.Group("/likes", middleware.AuthRequired())
	{
		likes.POST("/toggle/video/:id", likeHandler.ToggleVideo)
		likes.POST("/toggle/comment/:id", likeHandler.ToggleComment)
		likes.POST("/toggle/tweet/:id", likeHandler.ToggleTweet)
		likes.GET("/videos", likeHandler.GetLikedVideos)
	}

	// --- 播放列表模块 ---
	playlists := v1.Group("/playlists")
	{
		playlists.GET("/:id", playlistHandler.GetByID)
		playlists.GET("/user/:user_id", playlistHandler.ListByUser)

		playlistsAuth := playlists.Group("", middleware.AuthRequired())
		{
			playlistsAuth.POST("", playlistHandler.Create)
			playlistsAuth.PATCH("/:id", playlistHandler.Update)
			playlistsAuth.DELETE("/:id", playlistHandler.Delete)
			playlistsAuth.PATCH("/:id/videos/:video_id", playlistHandler.AddVideo)
			playlistsAuth.DELETE("/:id/videos/:video_id", playlistHandler.RemoveVideo)
		}
	}

	// --- 订阅模块 ---
	subscriptions := v1.Group("/subscriptions", middleware.AuthRequired())
	{
		subscriptions.POST("/channel/:channel_id", subscriptionHandler.Toggle)
		subscriptions.GET("/channel/:channel_id/subscribers", subscriptionHandler.GetSubscribers)
		subscriptions.GET("/user/:user_id/channels", subscriptionHandler.GetSubscribedChannels)
	}

	// --- 推文模块 ---
	tweets := v1.Group("/tweets")
	{
		tweets.GET("/user/:user_id", tweetHandler.ListByUser)

		tweetsAuth := tweets.Group("", middleware.AuthRequired())
		{
			tweetsAuth.POST("", tweetHandler.Create)
			tweetsAuth.PATCH("/:id", tweetHandler.Update)
			tweetsAuth.DELETE("/:id", tweetHandler.Delete)
		}
	}

	// --- 频道控制台模块 ---
	dashboard := v1.Group("/dashboard", middleware.AuthRequired())
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/videos", dashboardHandler.GetVideos)
	}
}
