package api

import (
	"Mingle/internal/api/middleware"
	"Mingle/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login/phone", group.UserHandler.LoginByPhone)
			userGroup.POST("/sms/send", group.UserHandler.SendSmsCode)
			userGroup.GET("/search", group.UserHandler.SearchUser)
			userGroup.GET("/:user_id", group.UserHandler.GetUserProfile)
			userGroup.GET("/:user_id/followers", group.UserFollowHandler.GetFollowers)
			userGroup.GET("/:user_id/following", group.UserFollowHandler.GetFollowing)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetMyProfile)
				authGroup.PUT("/info", group.UserHandler.UpdateProfile)
			}
		}

		userFollowGroup := apiGroup.Group("/user-relation")
		userFollowGroup.Use(middleware.AuthMiddleware())
		{
			userFollowGroup.POST("/follow/:following_id", group.UserFollowHandler.Follow)
			userFollowGroup.DELETE("/follow/:following_id", group.UserFollowHandler.Unfollow)
		}

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/feed", group.PostHandler.GetFeed)
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/list/:user_id", group.PostHandler.GetUserPosts)
				authOptGroup.GET("/:post_id/comments", group.CommentHandler.GetComments)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
			}
		}

		postActionGroup := apiGroup.Group("/post/action")
		postActionGroup.Use(middleware.AuthMiddleware())
		{
			postActionGroup.POST("/likes/:post_id", group.PostActionHandler.LikePost)
			postActionGroup.DELETE("/likes/:post_id", group.PostActionHandler.UnlikePost)
			postActionGroup.POST("/favorites/:post_id", group.PostActionHandler.FavoritePost)
			postActionGroup.DELETE("/favorites/:post_id", group.PostActionHandler.UnfavoritePost)
			postActionGroup.POST("/comments/:comment_id/like", group.PostActionHandler.LikeComment)
			postActionGroup.DELETE("/comments/:comment_id/like", group.PostActionHandler.UnlikeComment)
			postActionGroup.DELETE("/comments/:comment_id", group.CommentHandler.DeleteComment)
		}

		notificationGroup := apiGroup.Group("/notifications")
		notificationGroup.Use(middleware.AuthMiddleware())
		{
			notificationGroup.GET("/list", group.NotificationHandler.GetNotifications)
			notificationGroup.GET("/unread", group.NotificationHandler.GetUnreadCount)
			notificationGroup.POST("/read/all", group.NotificationHandler.MarkAllRead)
			notificationGroup.POST("/read/:notification_id", group.NotificationHandler.MarkRead)
		}

		apiGroup.GET("/tags", group.TagHandler.GetPopularTags)

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
